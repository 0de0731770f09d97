package flows

import (
	"context"
	"net/http/cookiejar"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/authtest"
	"github.com/securelogx/console/internal/client/session"
	"github.com/securelogx/console/internal/client/ui"
	"github.com/securelogx/console/internal/logging"
)

func TestSessionLifecycle_AgainstMockOrigin(t *testing.T) {
	ctx := context.Background()
	srv := authtest.New(t)
	srv.AddUser("jdoe", "pw")

	db, err := session.InitDatabase(ctx, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	jar, err := session.NewJar(ctx, db, []byte("0123456789abcdef0123456789abcdef"), logging.Discard())
	require.NoError(t, err)

	client := api.NewHTTPClient(srv.URL, jar, logging.Discard())
	router := ui.NewRouter(ui.PageDashboard, nil)

	// Opening the console without a session bounces to login.
	dash := NewDashboard(client, router, dashboardDoc(), logging.Discard())
	assert.Equal(t, Redirected, dash.Load(ctx))
	assert.Equal(t, []ui.Page{ui.PageLogin}, router.History())

	loginDoc := ui.NewDocument(ui.PageLogin, nil)
	login := NewLogin(client, router, loginDoc, logging.Discard())

	err = login.Submit(ctx, "jdoe", "wrong")
	require.Error(t, err)
	msg, _ := loginDoc.Status.Snapshot()
	assert.Equal(t, "Invalid credentials.", msg)
	assert.Equal(t, ui.PageLogin, router.Current())

	require.NoError(t, login.Submit(ctx, "jdoe", "pw"))
	assert.Equal(t, ui.PageDashboard, router.Current())

	doc := dashboardDoc()
	dash = NewDashboard(client, router, doc, logging.Discard())
	require.Equal(t, Verified, dash.Load(ctx))
	assert.Equal(t, "Analyst: jdoe", doc.Element(ElementAnalystInfo).Text())

	require.NoError(t, dash.Logout(ctx))
	assert.Equal(t, ui.PageLogin, router.Current())
	assert.NotContains(t, router.History(), ui.PageDashboard, "replaced dashboard must not be reachable by Back")

	dash = NewDashboard(client, router, dashboardDoc(), logging.Discard())
	assert.Equal(t, Redirected, dash.Load(ctx), "cookie cleared by logout")
	assert.Zero(t, srv.Sessions())
}

func TestSignupThenGuard_AgainstMockOrigin(t *testing.T) {
	ctx := context.Background()
	srv := authtest.New(t)
	srv.AddUser("taken", "pw")

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := api.NewHTTPClient(srv.URL, jar, logging.Discard())
	router := ui.NewRouter(ui.PageSignup, nil)

	doc := ui.NewDocument(ui.PageSignup, nil)
	signup := NewSignup(client, router, doc, logging.Discard())

	require.Error(t, signup.Submit(ctx, "taken", "pw"))
	msg, _ := doc.Status.Snapshot()
	assert.Equal(t, "Account already exists.", msg)

	require.NoError(t, signup.Submit(ctx, "new-analyst", "pw"))
	assert.Equal(t, []ui.Page{ui.PageSignup, ui.PageDashboard}, router.History())

	dashDoc := dashboardDoc()
	dash := NewDashboard(client, router, dashDoc, logging.Discard())
	require.Equal(t, Verified, dash.Load(ctx), "signup left a live session")
	assert.Equal(t, "Analyst: new-analyst", dashDoc.Element(ElementAnalystInfo).Text())

	assert.Equal(t, []string{
		"POST /auth/signup", "POST /auth/signup", "GET /auth/me",
	}, srv.Hits(), "no extra identity check after signup")
}

func TestIncidentBoard_AgainstMockOrigin(t *testing.T) {
	ctx := context.Background()
	srv := authtest.New(t)
	srv.AddUser("jdoe", "pw")
	srv.AddIncident("INC-1", "10.0.0.7", "HIGH", 80, 12)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := api.NewHTTPClient(srv.URL, jar, logging.Discard())
	router := ui.NewRouter(ui.PageLogin, nil)
	require.NoError(t, NewLogin(client, router, ui.NewDocument(ui.PageLogin, nil), logging.Discard()).Submit(ctx, "jdoe", "pw"))

	doc := dashboardDoc()
	dash := NewDashboard(client, router, doc, logging.Discard())
	require.Equal(t, Verified, dash.Load(ctx))

	list, err := dash.Incidents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, api.StatusOpen, list[0].Status)

	details, err := dash.OpenIncident(ctx, "INC-1")
	require.NoError(t, err)
	assert.Equal(t, []api.IncidentStatus{api.StatusInvestigating}, details.AllowedNextStatuses)
	assert.True(t, doc.Element(ElementIncidentModal).Visible())

	_, err = dash.AdvanceIncident(ctx, "INC-1", "closed")
	require.Error(t, err)
	msg, _ := doc.Status.Snapshot()
	assert.Equal(t, "Invalid status transition: OPEN → CLOSED", msg)

	details, err = dash.AdvanceIncident(ctx, "INC-1", "investigating")
	require.NoError(t, err)
	assert.Equal(t, api.StatusInvestigating, details.Incident.Status)
	require.Len(t, details.Incident.Timeline, 2)
	assert.Equal(t, "jdoe", details.Incident.Timeline[1].Actor)

	// The session ends on the server side; the next incident call bounces to login.
	jar2, err := cookiejar.New(nil)
	require.NoError(t, err)
	stale := NewDashboard(api.NewHTTPClient(srv.URL, jar2, logging.Discard()), router, dashboardDoc(), logging.Discard())
	stale.setState(Verified)
	_, err = stale.Incidents(ctx)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, ui.PageLogin, router.Current())
}
