package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/flows"
	"github.com/securelogx/console/internal/client/ui"
	"github.com/securelogx/console/internal/logging"
)

// App is the console "tab": one navigation history and the page currently
// open in it.
type App struct {
	client api.Client
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	router *ui.Router
	dirty  bool

	doc  *ui.Document
	form *flows.CredentialsFlow
	dash *flows.Dashboard
}

// NewApp builds a console reading commands from in and writing pages to out.
// The history starts on the dashboard, so the first thing the console does
// is check for an existing session.
func NewApp(client api.Client, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		client: client,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.router = ui.NewRouter(ui.PageDashboard, a.navigated)
	return a
}

// Run opens the start page and serves commands until exit, EOF or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "SecureLogX analyst console (type 'help' for commands)")

	a.dirty = true
	a.settle(ctx)

	return runREPL(ctx, a, a.prompt, a.reader, a.out)
}

func (a *App) navigated(ui.Page) { a.dirty = true }

func (a *App) page() ui.Page { return a.router.Current() }

// settle opens the current page, again and again while opening it navigates
// somewhere else (a failed guard replaces the dashboard with login).
func (a *App) settle(ctx context.Context) {
	for a.dirty && ctx.Err() == nil {
		a.dirty = false
		a.open(ctx, a.router.Current())
	}
}

func (a *App) open(ctx context.Context, p ui.Page) {
	a.doc = ui.NewDocument(p, ui.NewStatus(a.renderStatus))
	a.form, a.dash = nil, nil
	a.log.Debug(ctx, "page opened", "page", string(p))

	switch p {
	case ui.PageLogin:
		a.form = flows.NewLogin(a.client, a.router, a.doc, a.log)
		a.renderForm("Sign in")
	case ui.PageSignup:
		a.form = flows.NewSignup(a.client, a.router, a.doc, a.log)
		a.renderForm("Create account")
	case ui.PageDashboard:
		a.doc.AddElement(flows.ElementAnalystInfo)
		a.doc.AddElement(flows.ElementIncidentModal)
		a.doc.AddControl(flows.ControlLogout)
		a.doc.AddControl(flows.ControlAnalyze)
		a.doc.AddControl(flows.ControlCloseIncident)
		a.dash = flows.NewDashboard(a.client, a.router, a.doc, a.log)
		a.dash.Load(ctx)
		a.renderDashboard()
	}
}

func (a *App) prompt() string {
	p := a.router.Current()
	if p == ui.PageDashboard && a.doc != nil && a.doc.Body.Visible() {
		if el := a.doc.Element(flows.ElementAnalystInfo); el != nil {
			return fmt.Sprintf("securelogx %s (%s)> ", p, el.Text())
		}
	}
	return fmt.Sprintf("securelogx %s> ", p)
}

// Link follows a link on the current page.
func (a *App) Link(p ui.Page) { a.router.Navigate(p) }

// Back returns to the previous history entry.
func (a *App) Back() {
	if _, ok := a.router.Back(); !ok {
		fmt.Fprintln(a.out, "No previous page.")
	}
}
