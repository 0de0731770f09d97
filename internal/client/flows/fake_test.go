package flows

import (
	"context"
	"encoding/json"
	"io"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/ui"
)

type fakeClient struct {
	calls []string

	loginErr  error
	signupErr error
	meID      api.Identity
	meErr     error
	logoutErr error

	incidents   []api.Incident
	details     *api.IncidentDetails
	incidentErr error
	gotCreds    api.Credentials
	gotStatus   api.IncidentStatus

	analyzed    []api.Incident
	analyzeErr  error
	gotLogPath  string
	gotUpload   string
	report      json.RawMessage
	decryptErr  error
	gotPassword string

	// during runs inside every call, while the request is "in flight".
	during func()
}

func (f *fakeClient) hit(name string) {
	f.calls = append(f.calls, name)
	if f.during != nil {
		f.during()
	}
}

func (f *fakeClient) Login(_ context.Context, c api.Credentials) error {
	f.gotCreds = c
	f.hit("login")
	return f.loginErr
}

func (f *fakeClient) Signup(_ context.Context, c api.Credentials) error {
	f.gotCreds = c
	f.hit("signup")
	return f.signupErr
}

func (f *fakeClient) Me(context.Context) (api.Identity, error) {
	f.hit("me")
	return f.meID, f.meErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.hit("logout")
	return f.logoutErr
}

func (f *fakeClient) Incidents(context.Context) ([]api.Incident, error) {
	f.hit("incidents")
	return f.incidents, f.incidentErr
}

func (f *fakeClient) Incident(_ context.Context, id string) (*api.IncidentDetails, error) {
	f.hit("incident " + id)
	return f.details, f.incidentErr
}

func (f *fakeClient) UpdateIncidentStatus(_ context.Context, id string, st api.IncidentStatus) (*api.IncidentDetails, error) {
	f.gotStatus = st
	f.hit("status " + id)
	return f.details, f.incidentErr
}

func (f *fakeClient) AnalyzeLog(_ context.Context, logPath string) ([]api.Incident, error) {
	f.gotLogPath = logPath
	f.hit("analyze")
	return f.analyzed, f.analyzeErr
}

func (f *fakeClient) AnalyzeUpload(_ context.Context, name string, content io.Reader) ([]api.Incident, error) {
	b, _ := io.ReadAll(content)
	f.gotUpload = name + ":" + string(b)
	f.hit("upload")
	return f.analyzed, f.analyzeErr
}

func (f *fakeClient) DecryptReport(_ context.Context, path, password string) (json.RawMessage, error) {
	f.gotLogPath, f.gotPassword = path, password
	f.hit("decrypt")
	return f.report, f.decryptErr
}

var _ api.Client = (*fakeClient)(nil)

type navCall struct {
	replace bool
	page    ui.Page
}

type fakeNav struct {
	calls []navCall
}

func (n *fakeNav) Navigate(p ui.Page) { n.calls = append(n.calls, navCall{false, p}) }
func (n *fakeNav) Replace(p ui.Page)  { n.calls = append(n.calls, navCall{true, p}) }
