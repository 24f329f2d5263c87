package console

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

// statusLabel renders "phone_screen" as "Phone Screen".
func statusLabel(s domain.Status) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// optStatus is statusLabel for nullable columns.
func optStatus(s *domain.Status) string {
	if s == nil {
		return "-"
	}
	return statusLabel(*s)
}

func day(t time.Time) string { return t.Local().Format("2006-01-02") }

func stamp(t time.Time) string { return t.Local().Format("2006-01-02 15:04:05") }

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func (a *App) printDetail(d *domain.ApplicationDetail) {
	tw := a.table()
	fmt.Fprintf(tw, "Application\t%s\n", d.ID)
	fmt.Fprintf(tw, "Applicant\t%s <%s>\n", d.UserName, d.UserEmail)
	fmt.Fprintf(tw, "Job\t%s at %s\n", d.JobTitle, d.CompanyName)
	fmt.Fprintf(tw, "Status\t%s\n", statusLabel(d.Status))
	fmt.Fprintf(tw, "Applied\t%s\n", day(d.AppliedAt))
	fmt.Fprintf(tw, "Source\t%s\n", orDash(d.Source))
	fmt.Fprintf(tw, "Notes\t%s\n", orDash(d.Notes))
	fmt.Fprintf(tw, "Last updated\t%s\n", stamp(d.LastUpdatedAt))
	_ = tw.Flush()
}

// printActivities writes one row per event; withApp adds the application id
// column for the global feed.
func (a *App) printActivities(items []domain.Activity, withApp bool) {
	tw := a.table()
	if withApp {
		fmt.Fprintln(tw, "TIME\tAPPLICATION\tEVENT\tFROM\tTO\tDETAILS")
	} else {
		fmt.Fprintln(tw, "TIME\tEVENT\tFROM\tTO\tDETAILS")
	}
	for _, e := range items {
		if withApp {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", stamp(e.EventTime), e.ApplicationID,
				e.EventType, optStatus(e.OldStatus), optStatus(e.NewStatus), e.Details)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", stamp(e.EventTime),
			e.EventType, optStatus(e.OldStatus), optStatus(e.NewStatus), e.Details)
	}
	_ = tw.Flush()
}
