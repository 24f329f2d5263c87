package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/repo"
	"github.com/tbourn/go-jobtracker/internal/services"
)

// ------------ helpers ------------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.OpenSQLite(fmt.Sprintf("file:console_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

func servicesFor(db *gorm.DB) Services {
	m := services.NewManagers(db, repo.Gateway{}, 0)
	return Services{
		Users:        m.Users,
		Companies:    m.Companies,
		Jobs:         m.Jobs,
		Applications: m.Applications,
		Activities:   m.Activities,
		Stats:        m.Stats,
	}
}

// session runs one console session over the given input lines and returns
// everything printed.
func session(t *testing.T, svc Services, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, zerolog.Nop())
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

var createdRE = regexp.MustCompile(`Created \w+ ([0-9a-f-]{36})`)

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := createdRE.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in output: %s", out)
	return m[1]
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	t.Cleanup(func() { readPassword = orig })
}

// ------------ tests ------------

func TestConsole_HelpUnknownExit(t *testing.T) {
	out := session(t, Services{}, "help", "frobnicate", "exit", "counts")
	require.Contains(t, out, "status <application-id> <s>")
	require.Contains(t, out, `Unknown command "frobnicate"`)
	require.Contains(t, out, "Bye!")
	require.NotContains(t, out, "users", "commands after exit must not run")
}

func TestConsole_EndOfInputEndsSession(t *testing.T) {
	var out bytes.Buffer
	app := New(Services{}, strings.NewReader("help"), &out, zerolog.Nop())
	require.NoError(t, app.Run(context.Background()))
	require.Contains(t, out.String(), "Commands:")
}

func TestConsole_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app := New(Services{}, strings.NewReader("help\n"), &bytes.Buffer{}, zerolog.Nop())
	require.ErrorIs(t, app.Run(ctx), context.Canceled)
}

func TestConsole_FullScenario(t *testing.T) {
	db := newTestDB(t)
	svc := servicesFor(db)
	stubPassword(t, "s3cret", nil)

	userID := createdID(t, session(t, svc, "adduser", "ann@example.com", "Ann Lee"))
	companyID := createdID(t, session(t, svc, "addcompany", "Acme", "Software", "Austin", "TX", ""))
	jobID := createdID(t, session(t, svc, "addjob", companyID, "Backend Engineer", "", "hybrid", "", "120000", ""))
	appID := createdID(t, session(t, svc, "apply", userID, jobID, "LinkedIn", ""))

	u, err := repo.GetUser(context.Background(), db, userID)
	require.NoError(t, err)
	require.True(t, services.CheckPassword(u.PasswordHash, "s3cret"))

	j, err := repo.GetJob(context.Background(), db, jobID)
	require.NoError(t, err)
	require.Equal(t, domain.EmploymentFullTime, j.EmploymentType)
	require.Equal(t, domain.WorkHybrid, j.WorkType)
	require.NotNil(t, j.SalaryMin)
	require.Equal(t, 120000, *j.SalaryMin)
	require.Nil(t, j.SalaryMax)

	out := session(t, svc, "status "+appID+" PHONE_SCREEN")
	require.Contains(t, out, "Backend Engineer at Acme is now Phone Screen.")

	out = session(t, svc, "show "+appID)
	require.Contains(t, out, "Ann Lee <ann@example.com>")
	require.Contains(t, out, "LinkedIn")
	require.Contains(t, out, "created")
	require.Contains(t, out, "status_change")
	require.Contains(t, out, domain.DetailsStatusChanged)

	out = session(t, svc, "counts")
	require.Regexp(t, `applications\s+1`, out)
	require.Regexp(t, `activities\s+2`, out)

	out = session(t, svc, "apps", "activity 1")
	require.Contains(t, out, appID)
	require.Contains(t, out, "Phone Screen")
	require.Equal(t, 1, strings.Count(out, "status_change"), "activity 1 shows only the newest event")
}

func TestConsole_ErrorsAreReported(t *testing.T) {
	db := newTestDB(t)
	svc := servicesFor(db)

	out := session(t, svc, "status")
	require.Contains(t, out, "Usage: status <application-id> <status>")

	out = session(t, svc, "show missing-id")
	require.Contains(t, out, "error: application not found")

	out = session(t, svc, "addcompany", "", "", "", "", "")
	require.Contains(t, out, "error: name: is required")

	out = session(t, svc, "addjob", "nope", "Title", "", "", "", "lots")
	require.Contains(t, out, "error: salary min must be a whole number")

	out = session(t, svc, "apps")
	require.Contains(t, out, "No applications yet.")
}

func TestConsole_PasswordReadFailure(t *testing.T) {
	stubPassword(t, "", errors.New("not a terminal"))
	out := session(t, servicesFor(newTestDB(t)), "adduser", "a@b.c", "A")
	require.Contains(t, out, "error: not a terminal")
}

func TestConsole_InputEndsMidCommand(t *testing.T) {
	out := session(t, servicesFor(newTestDB(t)), "addcompany", "Acme")
	require.Contains(t, out, "cancelled")
}

func TestConsole_PersistenceFailureIsLoggedNotShown(t *testing.T) {
	db := newTestDB(t)
	svc := servicesFor(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var out, logs bytes.Buffer
	app := New(svc, strings.NewReader("counts\n"), &out, zerolog.New(&logs))
	require.NoError(t, app.Run(context.Background()))
	require.Contains(t, out.String(), "error: internal server error")
	require.Contains(t, logs.String(), "console command failed")
}

func TestStatusLabel(t *testing.T) {
	require.Equal(t, "Phone Screen", statusLabel(domain.StatusPhoneScreen))
	require.Equal(t, "Offer", statusLabel(domain.StatusOffer))
	require.Equal(t, "-", optStatus(nil))
	require.Equal(t, "Interview", optStatus(domain.StatusInterview.Ptr()))
}

func TestRows(t *testing.T) {
	require.Equal(t, defaultRows, rows(nil))
	require.Equal(t, 3, rows([]string{"3"}))
	require.Equal(t, defaultRows, rows([]string{"x"}))
	require.Equal(t, defaultRows, rows([]string{"-2"}))
}
