// Package authtest runs an in-process stand-in for the SecureLogX service
// for tests: cookie sessions on /auth, and the incident board, log analysis
// and report decryption under /securelogx, answering with the service's
// {success, message, data} envelope.
package authtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie the stand-in keeps its session id in.
const SessionCookie = "JSESSIONID"

var nextStatus = map[string]string{
	"OPEN":          "INVESTIGATING",
	"INVESTIGATING": "MITIGATED",
	"MITIGATED":     "CLOSED",
}

const (
	// failedLogin marks a log line that counts as one failed attempt.
	failedLogin = "Failed password"
	// highSeverityAttempts is where an attacker's incident becomes HIGH.
	highSeverityAttempts = 3
)

type event struct {
	Action    string `json:"action"`
	Actor     string `json:"actor,omitempty"`
	Note      string `json:"note"`
	Timestamp string `json:"timestamp"`
}

type incident struct {
	ID             string  `json:"incidentId"`
	IPAddress      string  `json:"ipAddress"`
	FailedAttempts int     `json:"failedAttempts"`
	Severity       string  `json:"severity"`
	RiskScore      int     `json:"riskScore"`
	Status         string  `json:"status"`
	Timeline       []event `json:"timeline"`
}

// Service is the stand-in. Its zero value is not usable; call New.
type Service struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]string
	sessions  map[string]string
	incidents []*incident
	hits      []string
	failNext  map[string]int
	logs      map[string]string
	reports   map[string]report
}

type report struct {
	password string
	data     any
}

// New starts the service and stops it when t finishes.
func New(t testing.TB) *Service {
	t.Helper()

	s := &Service{
		users:    make(map[string]string),
		sessions: make(map[string]string),
		failNext: make(map[string]int),
		logs:     make(map[string]string),
		reports:  make(map[string]report),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/signup", s.signup)
		r.Get("/me", s.me)
		r.Post("/logout", s.logout)
	})
	r.Route("/securelogx", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/incidents", s.listIncidents)
		r.Get("/incidents/{id}", s.getIncident)
		r.Post("/incidents/{id}/status", s.updateStatus)
		r.Post("/analyze", s.analyze)
		r.Post("/analyze/upload", s.analyzeUpload)
		r.Post("/decrypt", s.decrypt)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddUser registers an account.
func (s *Service) AddUser(username, password string) {
	s.mu.Lock()
	s.users[username] = password
	s.mu.Unlock()
}

// AddIncident registers an OPEN incident.
func (s *Service) AddIncident(id, ip, severity string, risk, attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = append(s.incidents, &incident{
		ID: id, IPAddress: ip, Severity: severity, RiskScore: risk, FailedAttempts: attempts,
		Status: "OPEN",
		Timeline: []event{{
			Action:    "CREATED",
			Actor:     "SYSTEM",
			Note:      "Initial status set to OPEN",
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05"),
		}},
	})
}

// AddLog places a log file at path on the service host for /analyze.
func (s *Service) AddLog(path, content string) {
	s.mu.Lock()
	s.logs[path] = content
	s.mu.Unlock()
}

// AddReport places an encrypted report at path that decrypts to data with
// password.
func (s *Service) AddReport(path, password string, data any) {
	s.mu.Lock()
	s.reports[path] = report{password: password, data: data}
	s.mu.Unlock()
}

// FailNext makes the next request to path answer 500 with message.
func (s *Service) FailNext(path string) {
	s.mu.Lock()
	s.failNext[path]++
	s.mu.Unlock()
}

// Hits returns "METHOD /path" for every request served so far.
func (s *Service) Hits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.hits...)
}

// Sessions reports how many sessions are live.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// DropSessions ends every session on the service side, as an expiry would.
func (s *Service) DropSessions() {
	s.mu.Lock()
	clear(s.sessions)
	s.mu.Unlock()
}

func (s *Service) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits = append(s.hits, r.Method+" "+r.URL.Path)
		fail := s.failNext[r.URL.Path] > 0
		if fail {
			s.failNext[r.URL.Path]--
		}
		s.mu.Unlock()

		if fail {
			reply(w, http.StatusInternalServerError, false, "Internal error", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reply(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "message": message, "data": data})
}

func (s *Service) user(r *http.Request) string {
	ck, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[ck.Value]
}

func (s *Service) startSession(w http.ResponseWriter, username string) {
	sid := uuid.NewString()
	s.sessions[sid] = username
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: sid, Path: "/", HttpOnly: true})
}

type credentials struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func readCredentials(r *http.Request) (string, string, bool) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Username == nil || c.Password == nil {
		return "", "", false
	}
	return *c.Username, *c.Password, true
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := readCredentials(r)
	if !ok {
		reply(w, http.StatusBadRequest, false, "Username and password required.", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, exists := s.users[username]
	switch {
	case !exists:
		reply(w, http.StatusNotFound, false, "Account does not exist.", nil)
	case stored != password:
		reply(w, http.StatusUnauthorized, false, "Invalid credentials.", nil)
	default:
		s.startSession(w, username)
		reply(w, http.StatusOK, true, "Login successful.", nil)
	}
}

func (s *Service) signup(w http.ResponseWriter, r *http.Request) {
	username, password, ok := readCredentials(r)
	if !ok {
		reply(w, http.StatusBadRequest, false, "Username and password required.", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		reply(w, http.StatusConflict, false, "Account already exists.", nil)
		return
	}
	s.users[username] = password
	s.startSession(w, username)
	reply(w, http.StatusOK, true, "Account created and logged in.", nil)
}

func (s *Service) me(w http.ResponseWriter, r *http.Request) {
	u := s.user(r)
	if u == "" {
		reply(w, http.StatusUnauthorized, false, "Not authenticated", nil)
		return
	}
	reply(w, http.StatusOK, true, "Authenticated", u)
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, ck.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	reply(w, http.StatusOK, true, "Logged out", nil)
}

func (s *Service) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.user(r) == "" {
			reply(w, http.StatusUnauthorized, false, "Authentication required.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) find(id string) *incident {
	for _, in := range s.incidents {
		if in.ID == id {
			return in
		}
	}
	return nil
}

func details(in *incident) map[string]any {
	allowed := []string{}
	if n, ok := nextStatus[in.Status]; ok {
		allowed = append(allowed, n)
	}
	return map[string]any{"incident": in, "allowedNextStatuses": allowed}
}

func (s *Service) listIncidents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.incidents
	if list == nil {
		list = []*incident{}
	}
	reply(w, http.StatusOK, true, "Incidents loaded", list)
}

func (s *Service) getIncident(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.find(chi.URLParam(r, "id"))
	if in == nil {
		reply(w, http.StatusNotFound, false, "Incident not found", nil)
		return
	}
	reply(w, http.StatusOK, true, "Incident loaded", details(in))
}

func (s *Service) updateStatus(w http.ResponseWriter, r *http.Request) {
	analyst := s.user(r)

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		reply(w, http.StatusBadRequest, false, "Invalid status value", nil)
		return
	}
	to := strings.ToUpper(body.Status)

	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.find(chi.URLParam(r, "id"))
	if in == nil {
		reply(w, http.StatusNotFound, false, "Incident not found", nil)
		return
	}
	if nextStatus[in.Status] != to {
		reply(w, http.StatusConflict, false, "Invalid status transition: "+in.Status+" → "+to, nil)
		return
	}

	from := in.Status
	in.Status = to
	in.Timeline = append(in.Timeline, event{
		Action:    "STATUS_CHANGED",
		Actor:     analyst,
		Note:      "Status changed from " + from + " to " + to,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05"),
	})
	reply(w, http.StatusOK, true, "Status updated", details(in))
}

// detect counts failed logins per source address, like the service's log
// analyzer, and files one OPEN incident per address. Callers hold s.mu.
func (s *Service) detect(content, analyst string) []*incident {
	attempts := make(map[string]int)
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, failedLogin) {
			continue
		}
		ip := "UNKNOWN"
		if i := strings.LastIndex(line, "from "); i >= 0 {
			ip = strings.TrimSpace(line[i+len("from "):])
		}
		attempts[ip]++
	}

	ips := make([]string, 0, len(attempts))
	for ip := range attempts {
		ips = append(ips, ip)
	}
	sort.Strings(ips)

	found := []*incident{}
	now := time.Now().UTC().Format("2006-01-02T15:04:05")
	for _, ip := range ips {
		n := attempts[ip]
		severity := "LOW"
		if n >= highSeverityAttempts {
			severity = "HIGH"
		}
		in := &incident{
			ID:             "INC-" + uuid.NewString()[:8],
			IPAddress:      ip,
			FailedAttempts: n,
			Severity:       severity,
			RiskScore:      min(100, n*20),
			Status:         "OPEN",
			Timeline: []event{{
				Action:    "CREATED",
				Actor:     analyst,
				Note:      "Initial status set to OPEN",
				Timestamp: now,
			}},
		}
		s.incidents = append(s.incidents, in)
		found = append(found, in)
	}
	return found
}

func (s *Service) analyze(w http.ResponseWriter, r *http.Request) {
	analyst := s.user(r)

	var body struct {
		LogPath string `json:"logPath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.logs[body.LogPath]
	if !ok {
		reply(w, http.StatusBadRequest, false, "Failed to read log file", nil)
		return
	}
	reply(w, http.StatusOK, true, "Analysis completed. Incidents detected.", s.detect(content, analyst))
}

func (s *Service) analyzeUpload(w http.ResponseWriter, r *http.Request) {
	analyst := s.user(r)

	f, hdr, err := r.FormFile("file")
	if err != nil {
		reply(w, http.StatusBadRequest, false, "Uploaded file is empty.", nil)
		return
	}
	defer f.Close()

	var content strings.Builder
	if _, err := io.Copy(&content, f); err != nil || hdr.Size == 0 || content.Len() == 0 {
		reply(w, http.StatusBadRequest, false, "Uploaded file is empty.", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	reply(w, http.StatusOK, true, "Uploaded log analyzed successfully.", s.detect(content.String(), analyst))
}

func (s *Service) decrypt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EncryptedPath *string `json:"encryptedPath"`
		Password      string  `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.EncryptedPath == nil {
		reply(w, http.StatusBadRequest, false, "Encrypted file not found", nil)
		return
	}
	path := strings.ReplaceAll(strings.TrimSpace(*body.EncryptedPath), `\`, "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[path]
	switch {
	case !ok:
		reply(w, http.StatusBadRequest, false, "Encrypted file not found", nil)
	case rep.password != body.Password:
		reply(w, http.StatusForbidden, false, "Access denied.", nil)
	default:
		reply(w, http.StatusOK, true, "Decryption successful", rep.data)
	}
}
