package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/securelogx/console/internal/common"
	"github.com/securelogx/console/internal/logging"
)

const (
	pathLogin     = "/auth/login"
	pathSignup    = "/auth/signup"
	pathMe        = "/auth/me"
	pathLogout    = "/auth/logout"
	pathIncidents = "/securelogx/incidents"
	pathAnalyze   = "/securelogx/analyze"
	pathUpload    = "/securelogx/analyze/upload"
	pathDecrypt   = "/securelogx/decrypt"

	// uploadField is the multipart field the service reads the log from.
	uploadField = "file"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// HTTPClient implements Client over HTTP/JSON against a fixed origin.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       logging.Logger
	requestID func() string
}

// NewHTTPClient returns a client for the service at baseURL. jar is the
// console's cookie mechanism; it is attached to every request so the session
// cookie travels automatically. A nil jar means no session can ever be held.
func NewHTTPClient(baseURL string, jar http.CookieJar, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Jar: jar},
		log:       log,
		requestID: func() string { return uuid.NewString() },
	}
}

// response is a fully read HTTP answer.
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// reject converts a non-2xx answer into a *RejectedError, salvaging the
// "message" field when the body is a JSON envelope.
func (r *response) reject() error {
	rej := &RejectedError{StatusCode: r.status}
	var env Envelope
	if err := json.Unmarshal(r.body, &env); err == nil {
		rej.Message = strings.TrimSpace(env.Message)
	}
	return rej
}

// data decodes the envelope's "data" field into v.
func (r *response) data(path string, v any) error {
	var env Envelope
	if err := json.Unmarshal(r.body, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: %s: no data", ErrDecode, path)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return nil
}

// do sends payload as a JSON body (none when nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (*response, error) {
	if payload == nil {
		return c.send(ctx, method, path, "", nil)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s %s: encode: %w", method, path, err)
	}
	return c.send(ctx, method, path, "application/json", bytes.NewReader(b))
}

func (c *HTTPClient) send(ctx context.Context, method, path, contentType string, body io.Reader) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	log := c.log.With("method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%w: %s %s: read body: %v", ErrUnavailable, method, path, err)
	}

	log.Debug(ctx, "response", "status", resp.StatusCode, "bytes", len(raw))
	return &response{status: resp.StatusCode, body: raw}, nil
}

// submitCredentials posts c to path. Any 2xx is success; the body of a
// successful answer is not needed.
func (c *HTTPClient) submitCredentials(ctx context.Context, path string, cr Credentials) error {
	resp, err := c.do(ctx, http.MethodPost, path, cr)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return resp.reject()
	}
	return nil
}

// Login calls POST /auth/login. On success the service sets the session cookie.
func (c *HTTPClient) Login(ctx context.Context, cr Credentials) error {
	return c.submitCredentials(ctx, pathLogin, cr)
}

// Signup calls POST /auth/signup. On success the service creates the account
// and sets the session cookie in the same answer.
func (c *HTTPClient) Signup(ctx context.Context, cr Credentials) error {
	return c.submitCredentials(ctx, pathSignup, cr)
}

// Me calls GET /auth/me and returns the identity of the current session.
// A string "data" is used as-is; any other JSON value is shown in its
// compact JSON form. A missing or null "data" is a decode error.
func (c *HTTPClient) Me(ctx context.Context) (Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, pathMe, nil)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", resp.reject()
	}

	var raw json.RawMessage
	if err := resp.data(pathMe, &raw); err != nil {
		return "", err
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Identity(s), nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, pathMe, err)
	}
	return Identity(compact.String()), nil
}

// Logout calls POST /auth/logout. The service clears the session cookie.
func (c *HTTPClient) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, pathLogout, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return resp.reject()
	}
	return nil
}

// Incidents calls GET /securelogx/incidents.
func (c *HTTPClient) Incidents(ctx context.Context) ([]Incident, error) {
	resp, err := c.do(ctx, http.MethodGet, pathIncidents, nil)
	if err != nil {
		return nil, err
	}
	return incidentList(resp, pathIncidents)
}

// Incident calls GET /securelogx/incidents/{id}.
func (c *HTTPClient) Incident(ctx context.Context, id string) (*IncidentDetails, error) {
	path := pathIncidents + "/" + url.PathEscape(id)

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.reject()
	}

	var out IncidentDetails
	if err := resp.data(path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIncidentStatus calls POST /securelogx/incidents/{id}/status.
func (c *HTTPClient) UpdateIncidentStatus(ctx context.Context, id string, status IncidentStatus) (*IncidentDetails, error) {
	path := pathIncidents + "/" + url.PathEscape(id) + "/status"

	resp, err := c.do(ctx, http.MethodPost, path, map[string]string{"status": string(status)})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.reject()
	}

	var out IncidentDetails
	if err := resp.data(path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeLog calls POST /securelogx/analyze with a log path on the
// service host and returns the incidents the analysis detected.
func (c *HTTPClient) AnalyzeLog(ctx context.Context, logPath string) ([]Incident, error) {
	resp, err := c.do(ctx, http.MethodPost, pathAnalyze, map[string]string{"logPath": logPath})
	if err != nil {
		return nil, err
	}
	return incidentList(resp, pathAnalyze)
}

// AnalyzeUpload calls POST /securelogx/analyze/upload, streaming content as
// the multipart "file" field named filename.
func (c *HTTPClient) AnalyzeUpload(ctx context.Context, filename string, content io.Reader) ([]Incident, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(uploadField, filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	resp, err := c.send(ctx, http.MethodPost, pathUpload, mw.FormDataContentType(), pr)
	// Unblocks the writer when the request ended before reading the body.
	_ = pr.Close()
	if err != nil {
		return nil, err
	}
	return incidentList(resp, pathUpload)
}

// DecryptReport calls POST /securelogx/decrypt and returns the decrypted
// forensic report as the raw JSON the service sent.
func (c *HTTPClient) DecryptReport(ctx context.Context, encryptedPath, password string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPost, pathDecrypt, decryptRequest{EncryptedPath: encryptedPath, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.reject()
	}

	var report json.RawMessage
	if err := resp.data(pathDecrypt, &report); err != nil {
		return nil, err
	}
	return report, nil
}

type decryptRequest struct {
	EncryptedPath string `json:"encryptedPath"`
	Password      string `json:"password"`
}

func incidentList(resp *response, path string) ([]Incident, error) {
	if !resp.ok() {
		return nil, resp.reject()
	}
	var out []Incident
	if err := resp.data(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
