package flows

import (
	"context"
	"errors"
	"sync"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/ui"
	"github.com/securelogx/console/internal/logging"
)

// Texts the dashboard writes into its document.
const (
	// AnalystPrefix precedes the identity in the analyst info element.
	AnalystPrefix = "Analyst: "
	// AnalyzeNotice is the status shown by the analyze placeholder.
	AnalyzeNotice = "Log analysis hook ready (backend integration next)."
	// IncidentFailedMessage is shown when an incident request fails and the
	// service gave no message.
	IncidentFailedMessage = "Incident request failed."
)

// GuardState is where the dashboard is in its check-then-render lifecycle.
type GuardState int

const (
	// Unverified is a page whose identity check has not succeeded yet, or
	// was abandoned.
	Unverified GuardState = iota
	// Verified is a page whose content is shown.
	Verified
	// Redirected is a page that was replaced by login.
	Redirected
)

func (s GuardState) String() string {
	switch s {
	case Verified:
		return "verified"
	case Redirected:
		return "redirected"
	default:
		return "unverified"
	}
}

// Dashboard guards the protected page and runs its commands.
//
// Body stays hidden until Load confirms the session. Every command needs a
// verified page and a 401/403 from the service sends the user back to login
// with Replace, so Back cannot reopen the dashboard.
type Dashboard struct {
	client api.Client
	nav    Navigator
	doc    *ui.Document
	log    logging.Logger

	mu    sync.Mutex
	state GuardState
}

// NewDashboard binds the dashboard to doc and hides its body and incident
// modal. Call Load to run the guard.
func NewDashboard(c api.Client, nav Navigator, doc *ui.Document, log logging.Logger) *Dashboard {
	doc.Body.Hide()
	if modal := doc.Element(ElementIncidentModal); modal != nil {
		modal.Hide()
	}
	return &Dashboard{client: c, nav: nav, doc: doc, log: log.With("flow", "dashboard")}
}

// State reports the guard state of the current page load.
func (d *Dashboard) State() GuardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) setState(s GuardState) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// Load runs the guard for one page load. The body is hidden before the
// identity request starts and is shown only when it succeeds. If ctx is
// cancelled mid-request the page is being abandoned: nothing is shown and
// no redirect is issued.
func (d *Dashboard) Load(ctx context.Context) GuardState {
	d.doc.Body.Hide()
	d.setState(Unverified)

	id, err := d.client.Me(ctx)
	if err != nil {
		if ctx.Err() != nil {
			d.log.Debug(ctx, "session check abandoned", "error", err)
			return Unverified
		}
		d.log.Info(ctx, "session check failed", "error", err)
		d.redirect()
		return Redirected
	}

	if el := d.doc.Element(ElementAnalystInfo); el != nil {
		el.SetText(AnalystPrefix + string(id))
	}
	d.doc.Body.Show()
	d.setState(Verified)
	d.log.Debug(ctx, "session verified", "analyst", string(id))
	return Verified
}

func (d *Dashboard) redirect() {
	d.doc.Body.Hide()
	d.setState(Redirected)
	d.nav.Replace(ui.PageLogin)
}

func (d *Dashboard) ready() error {
	if d.State() != Verified {
		return ErrNotVerified
	}
	return nil
}

// Logout ends the session and returns to login whatever the service says.
func (d *Dashboard) Logout(ctx context.Context) error {
	btn := d.doc.Control(ControlLogout)
	if btn == nil {
		return ErrNoControl
	}
	if err := d.ready(); err != nil {
		return err
	}
	if !btn.Disable() {
		return ErrBusy
	}
	defer btn.Enable()
	defer d.redirect()

	if err := d.client.Logout(ctx); err != nil {
		d.log.Warn(ctx, "logout request failed", "error", err)
		return err
	}
	return nil
}

// Analyze is a placeholder for the log analysis trigger.
func (d *Dashboard) Analyze() error {
	if d.doc.Control(ControlAnalyze) == nil {
		return ErrNoControl
	}
	if err := d.ready(); err != nil {
		return err
	}
	d.doc.Status.Info(AnalyzeNotice)
	return nil
}

// CloseIncident dismisses the incident modal.
func (d *Dashboard) CloseIncident() error {
	modal := d.doc.Element(ElementIncidentModal)
	if d.doc.Control(ControlCloseIncident) == nil || modal == nil {
		return ErrNoControl
	}
	if err := d.ready(); err != nil {
		return err
	}
	modal.Hide()
	return nil
}

// Incidents lists the incident board. A rejected session sends the user to
// login; other failures are shown on the status line.
func (d *Dashboard) Incidents(ctx context.Context) ([]api.Incident, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	list, err := d.client.Incidents(ctx)
	if err != nil {
		return nil, d.serviceFailure(ctx, err, IncidentFailedMessage)
	}
	d.doc.Status.Reset()
	return list, nil
}

// OpenIncident loads one incident and opens the modal when the page has one.
func (d *Dashboard) OpenIncident(ctx context.Context, id string) (*api.IncidentDetails, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	details, err := d.client.Incident(ctx, id)
	if err != nil {
		return nil, d.serviceFailure(ctx, err, IncidentFailedMessage)
	}
	d.doc.Status.Reset()
	d.showModal(details)
	return details, nil
}

// AdvanceIncident asks the service to move an incident to status. Which
// transitions are legal is the service's decision.
func (d *Dashboard) AdvanceIncident(ctx context.Context, id, status string) (*api.IncidentDetails, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	st, err := api.ParseIncidentStatus(status)
	if err != nil {
		d.doc.Status.Error(err.Error())
		return nil, err
	}

	details, err := d.client.UpdateIncidentStatus(ctx, id, st)
	if err != nil {
		return nil, d.serviceFailure(ctx, err, IncidentFailedMessage)
	}
	d.doc.Status.Info("Incident " + details.Incident.ID + " is now " + string(details.Incident.Status) + ".")
	d.showModal(details)
	return details, nil
}

func (d *Dashboard) showModal(details *api.IncidentDetails) {
	if modal := d.doc.Element(ElementIncidentModal); modal != nil {
		modal.SetText(details.Incident.ID)
		modal.Show()
	}
}

// serviceFailure applies the session rule to a failed dashboard request:
// 401/403 replaces the page with login, anything else becomes an error
// status carrying the service message or fallback.
func (d *Dashboard) serviceFailure(ctx context.Context, err error, fallback string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		d.log.Info(ctx, "session rejected by service", "error", err)
		d.redirect()
		return err
	}

	d.log.Warn(ctx, "dashboard request failed", "error", err)
	msg, ok := api.RejectionMessage(err)
	if !ok {
		msg = fallback
	}
	d.doc.Status.Error(msg)
	return err
}
