package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey normalizes s for case-insensitive uniqueness: whitespace runs are
// collapsed and the result is Unicode case-folded. "ACME  Corp" and
// "acme corp" share a key.
func FoldKey(s string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
