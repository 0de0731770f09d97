package flows

import (
	"context"
	"errors"
	"strings"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/ui"
	"github.com/securelogx/console/internal/logging"
)

// RequiredMessage is shown when either credential is blank after trimming.
const RequiredMessage = "Username and password are required."

// Messages are the per-form texts of a credentials flow.
type Messages struct {
	Progress string // shown while the request is in flight
	Rejected string // fallback for a non-2xx answer without a message
	Failed   string // fallback for a transport failure without a message
}

var (
	// LoginMessages are the texts of the login form.
	LoginMessages = Messages{
		Progress: "Authenticating…",
		Rejected: "Invalid credentials",
		Failed:   "Login failed.",
	}
	// SignupMessages are the texts of the signup form.
	SignupMessages = Messages{
		Progress: "Creating account…",
		Rejected: "Signup failed",
		Failed:   "Unable to create account.",
	}
)

// CredentialsFlow is a username/password form that posts to the auth
// service and moves to the dashboard on success.
type CredentialsFlow struct {
	name   string
	submit func(ctx context.Context, c api.Credentials) error
	nav    Navigator
	status *ui.Status
	button *ui.Control
	msgs   Messages
	log    logging.Logger
}

// NewLogin builds the login form on doc, registering its submit control.
func NewLogin(c api.Client, nav Navigator, doc *ui.Document, log logging.Logger) *CredentialsFlow {
	return newCredentialsFlow("login", c.Login, nav, doc, LoginMessages, log)
}

// NewSignup builds the signup form. The service signs the new account in,
// so success goes straight to the dashboard, whose guard checks the session.
func NewSignup(c api.Client, nav Navigator, doc *ui.Document, log logging.Logger) *CredentialsFlow {
	return newCredentialsFlow("signup", c.Signup, nav, doc, SignupMessages, log)
}

func newCredentialsFlow(name string, submit func(context.Context, api.Credentials) error,
	nav Navigator, doc *ui.Document, msgs Messages, log logging.Logger) *CredentialsFlow {
	return &CredentialsFlow{
		name:   name,
		submit: submit,
		nav:    nav,
		status: doc.Status,
		button: doc.AddControl(ControlSubmit),
		msgs:   msgs,
		log:    log.With("flow", name),
	}
}

// Submit runs one form submission. It returns nil after navigating to the
// dashboard, ErrBusy when a submission is already in flight, ErrValidation
// for missing input, or the client error that was shown to the user.
func (f *CredentialsFlow) Submit(ctx context.Context, username, password string) error {
	if !f.button.Disable() {
		return ErrBusy
	}
	defer f.button.Enable()

	f.status.Reset()

	creds := api.Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if creds.Username == "" || creds.Password == "" {
		f.status.Error(RequiredMessage)
		return ErrValidation
	}

	f.status.Info(f.msgs.Progress)

	err := f.submit(ctx, creds)
	if err == nil {
		f.log.Info(ctx, "accepted", "username", creds.Username)
		f.nav.Navigate(ui.PageDashboard)
		return nil
	}

	f.log.Info(ctx, "failed", "username", creds.Username, "error", err)
	f.status.Error(f.failureText(err))
	return err
}

func (f *CredentialsFlow) failureText(err error) string {
	var rej *api.RejectedError
	if errors.As(err, &rej) {
		if rej.Message != "" {
			return rej.Message
		}
		return f.msgs.Rejected
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return f.msgs.Failed
}
