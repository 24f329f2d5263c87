// Package console is an interactive browser over the tracker. It reads
// commands line by line, calls the same services the REST API uses and
// prints plain-text tables.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// UserService is the subset of the user manager the console needs.
type UserService interface {
	Save(ctx context.Context, u *domain.User) (string, error)
}

// CompanyService is the subset of the company manager the console needs.
type CompanyService interface {
	Save(ctx context.Context, c *domain.Company) (string, error)
}

// JobService is the subset of the job manager the console needs.
type JobService interface {
	Save(ctx context.Context, j *domain.Job) (string, error)
}

// ApplicationService is the subset of the application manager the console needs.
type ApplicationService interface {
	Save(ctx context.Context, a *domain.Application) (string, error)
	Get(ctx context.Context, id string) (*domain.ApplicationDetail, error)
	List(ctx context.Context, limit, offset int, f domain.ApplicationFilter) ([]domain.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.ApplicationDetail, error)
}

// ActivityService is the subset of the activity manager the console needs.
type ActivityService interface {
	ForApplication(ctx context.Context, appID string) ([]domain.Activity, error)
	List(ctx context.Context, limit, offset int, appID string) ([]domain.Activity, error)
}

// StatsService reports table sizes.
type StatsService interface {
	RowCounts(ctx context.Context) (domain.RowCounts, error)
}

// Services bundles the managers behind the console.
type Services struct {
	Users        UserService
	Companies    CompanyService
	Jobs         JobService
	Applications ApplicationService
	Activities   ActivityService
	Stats        StatsService
}

// App is one console session.
type App struct {
	svc    Services
	reader *bufio.Reader
	out    io.Writer
	log    zerolog.Logger
}

// New builds a session reading commands from in and printing to out.
func New(svc Services, in io.Reader, out io.Writer, log zerolog.Logger) *App {
	return &App{svc: svc, reader: bufio.NewReader(in), out: out, log: log}
}

const prompt = "jobtracker> "

const helpText = `Commands:
  counts                       row counts per table
  apps [n]                     latest n applications (default 10)
  show <application-id>        application with its timeline
  activity [n]                 latest n activity events (default 10)
  status <application-id> <s>  change status (applied, phone_screen, interview, offer, rejected, withdrawn)
  adduser                      register a user
  addcompany                   add a company
  addjob                       add a job posting
  apply                        record an application
  help                         this text
  exit                         leave
`

// Run reads and executes commands until exit, end of input or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Job tracker console (type 'help' for commands)")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, prompt)
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		if fields := strings.Fields(line); len(fields) > 0 {
			if quit := a.dispatch(ctx, fields[0], fields[1:]); quit {
				return nil
			}
		}
		if eof {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}

// dispatch runs one command and reports whether the session should end.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error
	switch strings.ToLower(cmd) {
	case "help", "?":
		fmt.Fprint(a.out, helpText)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true
	case "counts":
		err = a.counts(ctx)
	case "apps":
		err = a.apps(ctx, args)
	case "show":
		err = a.show(ctx, args)
	case "activity":
		err = a.activity(ctx, args)
	case "status":
		err = a.status(ctx, args)
	case "adduser":
		err = a.addUser(ctx)
	case "addcompany":
		err = a.addCompany(ctx)
	case "addjob":
		err = a.addJob(ctx)
	case "apply":
		err = a.apply(ctx)
	default:
		fmt.Fprintf(a.out, "Unknown command %q; type 'help'\n", cmd)
	}
	if err != nil {
		a.report(err)
	}
	return false
}

// report prints err for the user. Persistence failures are logged with their
// cause and shown only as a generic message.
func (a *App) report(err error) {
	var usage usageError
	var de *domain.Error
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(a.out, "\ncancelled")
	case errors.As(err, &usage):
		fmt.Fprintln(a.out, usage.Error())
	case errors.As(err, &de):
		if de.Kind == domain.KindPersistence {
			a.log.Error().Err(err).Msg("console command failed")
		}
		fmt.Fprintf(a.out, "error: %s\n", domain.PublicMessage(err))
	default:
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}

// usageError is a malformed command line, printed verbatim.
type usageError string

func (e usageError) Error() string { return string(e) }
