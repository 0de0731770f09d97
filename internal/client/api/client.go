package api

import (
	"context"
	"encoding/json"
	"io"
)

// Client is the console's view of the SecureLogX service.
type Client interface {
	Login(ctx context.Context, c Credentials) error
	Signup(ctx context.Context, c Credentials) error
	Me(ctx context.Context) (Identity, error)
	Logout(ctx context.Context) error

	Incidents(ctx context.Context) ([]Incident, error)
	Incident(ctx context.Context, id string) (*IncidentDetails, error)
	UpdateIncidentStatus(ctx context.Context, id string, status IncidentStatus) (*IncidentDetails, error)

	AnalyzeLog(ctx context.Context, logPath string) ([]Incident, error)
	AnalyzeUpload(ctx context.Context, filename string, content io.Reader) ([]Incident, error)
	DecryptReport(ctx context.Context, encryptedPath, password string) (json.RawMessage, error)
}
