package flows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/ui"
	"github.com/securelogx/console/internal/logging"
)

// dashboardDoc declares the full dashboard page.
func dashboardDoc() *ui.Document {
	doc := ui.NewDocument(ui.PageDashboard, nil)
	doc.AddElement(ElementAnalystInfo)
	doc.AddControl(ControlLogout)
	doc.AddControl(ControlAnalyze)
	doc.AddControl(ControlCloseIncident)
	doc.AddElement(ElementIncidentModal)
	return doc
}

func newDashboard(client *fakeClient, doc *ui.Document) (*Dashboard, *fakeNav) {
	nav := &fakeNav{}
	return NewDashboard(client, nav, doc, logging.Discard()), nav
}

func verified(t *testing.T, client *fakeClient, doc *ui.Document) (*Dashboard, *fakeNav) {
	t.Helper()
	client.meID = "jdoe"
	d, nav := newDashboard(client, doc)
	require.Equal(t, Verified, d.Load(context.Background()))
	client.calls = nil
	return d, nav
}

func TestLoad_Verified(t *testing.T) {
	client := &fakeClient{meID: "jdoe"}
	doc := dashboardDoc()
	d, nav := newDashboard(client, doc)

	assert.False(t, doc.Body.Visible(), "hidden before load")

	var visibleDuring bool
	client.during = func() { visibleDuring = doc.Body.Visible() }

	assert.Equal(t, Verified, d.Load(context.Background()))
	assert.False(t, visibleDuring, "content visible before identity check resolved")
	assert.True(t, doc.Body.Visible())
	assert.Equal(t, "Analyst: jdoe", doc.Element(ElementAnalystInfo).Text())
	assert.Empty(t, nav.calls)
	assert.Equal(t, Verified, d.State())
}

func TestLoad_Failures(t *testing.T) {
	errs := map[string]error{
		"unauthorized": &api.RejectedError{StatusCode: 401},
		"server error": &api.RejectedError{StatusCode: 500, Message: "boom"},
		"transport":    api.ErrUnavailable,
		"decode":       api.ErrDecode,
	}

	for name, e := range errs {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{meErr: e}
			doc := dashboardDoc()
			d, nav := newDashboard(client, doc)

			var visibleDuring bool
			client.during = func() { visibleDuring = doc.Body.Visible() }

			assert.Equal(t, Redirected, d.Load(context.Background()))
			assert.False(t, visibleDuring)
			assert.False(t, doc.Body.Visible(), "content never revealed")
			assert.Equal(t, []navCall{{true, ui.PageLogin}}, nav.calls)
			assert.Empty(t, doc.Element(ElementAnalystInfo).Text())
			msg, _ := doc.Status.Snapshot()
			assert.Empty(t, msg, "no error detail on an abandoned page")
		})
	}
}

func TestLoad_WithoutIdentityElement(t *testing.T) {
	client := &fakeClient{meID: "jdoe"}
	doc := ui.NewDocument(ui.PageDashboard, nil)
	d, _ := newDashboard(client, doc)

	assert.Equal(t, Verified, d.Load(context.Background()))
	assert.True(t, doc.Body.Visible())
}

func TestLoad_Abandoned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{meErr: context.Canceled}
	client.during = cancel
	doc := dashboardDoc()
	d, nav := newDashboard(client, doc)

	assert.Equal(t, Unverified, d.Load(ctx))
	assert.False(t, doc.Body.Visible())
	assert.Empty(t, nav.calls)
}

func TestLoad_ReloadHidesAgain(t *testing.T) {
	client := &fakeClient{}
	doc := dashboardDoc()
	d, _ := verified(t, client, doc)
	require.True(t, doc.Body.Visible())

	var visibleDuring bool
	client.during = func() { visibleDuring = doc.Body.Visible() }
	client.meErr = &api.RejectedError{StatusCode: 401}

	assert.Equal(t, Redirected, d.Load(context.Background()))
	assert.False(t, visibleDuring)
	assert.False(t, doc.Body.Visible())
}

func TestLogout_AlwaysRedirects(t *testing.T) {
	for name, e := range map[string]error{
		"ok":        nil,
		"rejected":  &api.RejectedError{StatusCode: 500},
		"transport": api.ErrUnavailable,
	} {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{logoutErr: e}
			doc := dashboardDoc()
			d, nav := verified(t, client, doc)
			btn := doc.Control(ControlLogout)

			var disabledDuring bool
			client.during = func() { disabledDuring = btn.Disabled() }

			err := d.Logout(context.Background())
			if e == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}

			assert.Equal(t, []string{"logout"}, client.calls)
			assert.Equal(t, []navCall{{true, ui.PageLogin}}, nav.calls)
			assert.True(t, disabledDuring)
			assert.False(t, btn.Disabled())
			assert.False(t, doc.Body.Visible())
			assert.Equal(t, Redirected, d.State())
		})
	}
}

func TestLogout_RequiresControlAndSession(t *testing.T) {
	client := &fakeClient{meID: "jdoe"}
	bare := ui.NewDocument(ui.PageDashboard, nil)
	d, _ := newDashboard(client, bare)
	require.Equal(t, Verified, d.Load(context.Background()))
	assert.ErrorIs(t, d.Logout(context.Background()), ErrNoControl)

	d2, nav := newDashboard(&fakeClient{}, dashboardDoc())
	assert.ErrorIs(t, d2.Logout(context.Background()), ErrNotVerified)
	assert.Empty(t, nav.calls)
}

func TestAnalyzeAndCloseIncident(t *testing.T) {
	client := &fakeClient{}
	doc := dashboardDoc()
	d, nav := verified(t, client, doc)

	require.NoError(t, d.Analyze())
	msg, class := doc.Status.Snapshot()
	assert.Equal(t, AnalyzeNotice, msg)
	assert.Equal(t, ui.StatusNormal, class)

	modal := doc.Element(ElementIncidentModal)
	modal.Show()
	require.NoError(t, d.CloseIncident())
	assert.False(t, modal.Visible())

	assert.Empty(t, client.calls, "placeholders never hit the network")
	assert.Empty(t, nav.calls)

	bare, _ := verified(t, &fakeClient{}, ui.NewDocument(ui.PageDashboard, nil))
	assert.ErrorIs(t, bare.Analyze(), ErrNoControl)
	assert.ErrorIs(t, bare.CloseIncident(), ErrNoControl)
}

func TestIncidents(t *testing.T) {
	client := &fakeClient{incidents: []api.Incident{{ID: "INC-1", Status: api.StatusOpen}}}
	doc := dashboardDoc()
	d, _ := verified(t, client, doc)

	list, err := d.Incidents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.incidents, list)
	assert.Equal(t, []string{"incidents"}, client.calls)
}

func TestOpenIncident_ShowsModal(t *testing.T) {
	client := &fakeClient{details: &api.IncidentDetails{
		Incident:            api.Incident{ID: "INC-7", Status: api.StatusOpen},
		AllowedNextStatuses: []api.IncidentStatus{api.StatusInvestigating},
	}}
	doc := dashboardDoc()
	d, _ := verified(t, client, doc)
	modal := doc.Element(ElementIncidentModal)
	require.False(t, modal.Visible())

	got, err := d.OpenIncident(context.Background(), "INC-7")
	require.NoError(t, err)
	assert.Same(t, client.details, got)
	assert.True(t, modal.Visible())
	assert.Equal(t, "INC-7", modal.Text())
}

func TestAdvanceIncident(t *testing.T) {
	client := &fakeClient{details: &api.IncidentDetails{
		Incident: api.Incident{ID: "INC-7", Status: api.StatusInvestigating},
	}}
	doc := dashboardDoc()
	d, _ := verified(t, client, doc)

	_, err := d.AdvanceIncident(context.Background(), "INC-7", "investigating")
	require.NoError(t, err)
	assert.Equal(t, api.StatusInvestigating, client.gotStatus)
	msg, _ := doc.Status.Snapshot()
	assert.Equal(t, "Incident INC-7 is now INVESTIGATING.", msg)

	client.calls = nil
	_, err = d.AdvanceIncident(context.Background(), "INC-7", "resolved")
	require.Error(t, err)
	assert.Empty(t, client.calls)
	_, class := doc.Status.Snapshot()
	assert.Equal(t, ui.StatusError, class)
}

func TestIncidentFailures(t *testing.T) {
	t.Run("unauthorized redirects", func(t *testing.T) {
		client := &fakeClient{incidentErr: &api.RejectedError{StatusCode: 403}}
		doc := dashboardDoc()
		d, nav := verified(t, client, doc)

		_, err := d.Incidents(context.Background())
		assert.ErrorIs(t, err, api.ErrUnauthorized)
		assert.Equal(t, []navCall{{true, ui.PageLogin}}, nav.calls)
		assert.False(t, doc.Body.Visible())

		_, err = d.Incidents(context.Background())
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("rejection message shown", func(t *testing.T) {
		client := &fakeClient{incidentErr: &api.RejectedError{StatusCode: 404, Message: "Incident not found"}}
		doc := dashboardDoc()
		d, nav := verified(t, client, doc)

		_, err := d.OpenIncident(context.Background(), "nope")
		require.Error(t, err)
		msg, class := doc.Status.Snapshot()
		assert.Equal(t, "Incident not found", msg)
		assert.Equal(t, ui.StatusError, class)
		assert.Empty(t, nav.calls)
		assert.True(t, doc.Body.Visible())
	})

	t.Run("fallback", func(t *testing.T) {
		client := &fakeClient{incidentErr: errors.New("dial tcp: refused")}
		doc := dashboardDoc()
		d, _ := verified(t, client, doc)

		_, err := d.Incidents(context.Background())
		require.Error(t, err)
		msg, _ := doc.Status.Snapshot()
		assert.Equal(t, IncidentFailedMessage, msg)
	})
}

func TestGuardState_String(t *testing.T) {
	assert.Equal(t, "unverified", Unverified.String())
	assert.Equal(t, "verified", Verified.String())
	assert.Equal(t, "redirected", Redirected.String())
}
