package console

import (
	"context"
	"fmt"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/services"
	"github.com/tbourn/go-jobtracker/internal/utils"
)

const defaultRows = 10

func (a *App) counts(ctx context.Context) error {
	rc, err := a.svc.Stats.RowCounts(ctx)
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintf(tw, "users\t%d\n", rc.Users)
	fmt.Fprintf(tw, "companies\t%d\n", rc.Companies)
	fmt.Fprintf(tw, "jobs\t%d\n", rc.Jobs)
	fmt.Fprintf(tw, "applications\t%d\n", rc.Applications)
	fmt.Fprintf(tw, "activities\t%d\n", rc.Activities)
	return tw.Flush()
}

func (a *App) apps(ctx context.Context, args []string) error {
	items, err := a.svc.Applications.List(ctx, rows(args), 0, domain.ApplicationFilter{})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No applications yet.")
		return nil
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tAPPLIED\tSTATUS\tUSER\tJOB\tCOMPANY")
	for _, d := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, day(d.AppliedAt), statusLabel(d.Status), d.UserName, d.JobTitle, d.CompanyName)
	}
	return tw.Flush()
}

func (a *App) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("Usage: show <application-id>")
	}
	d, err := a.svc.Applications.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if d == nil {
		return domain.NotFound("application", args[0])
	}
	timeline, err := a.svc.Activities.ForApplication(ctx, d.ID)
	if err != nil {
		return err
	}
	a.printDetail(d)
	fmt.Fprintln(a.out, "Timeline:")
	a.printActivities(timeline, false)
	return nil
}

func (a *App) activity(ctx context.Context, args []string) error {
	items, err := a.svc.Activities.List(ctx, rows(args), 0, "")
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No activity yet.")
		return nil
	}
	a.printActivities(items, true)
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("Usage: status <application-id> <status>")
	}
	d, err := a.svc.Applications.UpdateStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s at %s is now %s.\n", d.JobTitle, d.CompanyName, statusLabel(d.Status))
	return nil
}

func (a *App) addUser(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	name, err := a.ask("Name")
	if err != nil {
		return err
	}
	pw, err := a.askPassword()
	if err != nil {
		return err
	}
	hash, err := services.HashPassword(pw)
	if err != nil {
		return err
	}
	id, err := a.svc.Users.Save(ctx, &domain.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created user %s\n", id)
	return nil
}

func (a *App) addCompany(ctx context.Context) error {
	var c domain.Company
	var err error
	if c.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if c.Industry, err = a.askOptional("Industry"); err != nil {
		return err
	}
	if c.LocationCity, err = a.askOptional("City"); err != nil {
		return err
	}
	if c.LocationState, err = a.askOptional("State"); err != nil {
		return err
	}
	if c.CompanyURL, err = a.askOptional("Website"); err != nil {
		return err
	}
	id, err := a.svc.Companies.Save(ctx, &c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created company %s\n", id)
	return nil
}

func (a *App) addJob(ctx context.Context) error {
	var j domain.Job
	var err error
	if j.CompanyID, err = a.ask("Company ID"); err != nil {
		return err
	}
	if j.Title, err = a.ask("Title"); err != nil {
		return err
	}
	emp, err := a.ask("Employment type [internship|full_time|contract|part_time] (blank: full_time)")
	if err != nil {
		return err
	}
	work, err := a.ask("Work type [remote|hybrid|on_site] (blank: remote)")
	if err != nil {
		return err
	}
	j.EmploymentType, j.WorkType = domain.EmploymentType(emp), domain.WorkType(work)
	if j.JobURL, err = a.askOptional("Posting URL"); err != nil {
		return err
	}
	if j.SalaryMin, err = a.askInt("Salary min"); err != nil {
		return err
	}
	if j.SalaryMax, err = a.askInt("Salary max"); err != nil {
		return err
	}
	id, err := a.svc.Jobs.Save(ctx, &j)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created job %s\n", id)
	return nil
}

func (a *App) apply(ctx context.Context) error {
	app := domain.Application{Status: domain.StatusApplied}
	var err error
	if app.UserID, err = a.ask("User ID"); err != nil {
		return err
	}
	if app.JobID, err = a.ask("Job ID"); err != nil {
		return err
	}
	if app.Source, err = a.askOptional("Source"); err != nil {
		return err
	}
	if app.Notes, err = a.askOptional("Notes"); err != nil {
		return err
	}
	id, err := a.svc.Applications.Save(ctx, &app)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created application %s\n", id)
	return nil
}

// rows reads the optional row-count argument; junk falls back to the default.
func rows(args []string) int {
	if len(args) == 0 {
		return defaultRows
	}
	if n := utils.AtoiDefault(args[0], defaultRows); n > 0 {
		return n
	}
	return defaultRows
}
