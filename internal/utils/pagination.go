// Package utils provides small, generic helpers shared by the HTTP and
// console front ends. Nothing here knows about the tracker's entities.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty or
// not an integer.
//
//	n := utils.AtoiDefault("42", 0) // 42
//	n = utils.AtoiDefault("", 10)   // 10
//	n = utils.AtoiDefault("x", 5)   // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseLimitOffset reads paging parameters. Empty values fall back to
// defLimit and 0; anything that is not an integer is an error naming the
// parameter. Range checks are left to the services so the rule lives in one
// place.
func ParseLimitOffset(limit, offset string, defLimit int) (int, int, error) {
	l, err := parseIntParam("limit", limit, defLimit)
	if err != nil {
		return 0, 0, err
	}
	o, err := parseIntParam("offset", offset, 0)
	if err != nil {
		return 0, 0, err
	}
	return l, o, nil
}

func parseIntParam(name, s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}
