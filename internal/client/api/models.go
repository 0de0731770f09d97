package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Credentials are the username/password pair posted to /auth/login and
// /auth/signup. They exist for the duration of one submit only.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identity is the display value the service returns for a valid session.
type Identity string

// Envelope is the service's uniform response body.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// IncidentStatus is the lifecycle stage of an incident.
type IncidentStatus string

const (
	StatusOpen          IncidentStatus = "OPEN"
	StatusInvestigating IncidentStatus = "INVESTIGATING"
	StatusMitigated     IncidentStatus = "MITIGATED"
	StatusClosed        IncidentStatus = "CLOSED"
)

// ParseIncidentStatus accepts any letter case.
func ParseIncidentStatus(s string) (IncidentStatus, error) {
	st := IncidentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusOpen, StatusInvestigating, StatusMitigated, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown incident status %q", s)
}

// Incident is a detected security incident as reported by the service.
type Incident struct {
	ID             string          `json:"incidentId"`
	IPAddress      string          `json:"ipAddress"`
	FailedAttempts int             `json:"failedAttempts"`
	Severity       string          `json:"severity"`
	RiskScore      int             `json:"riskScore"`
	Status         IncidentStatus  `json:"status"`
	ArtifactPath   string          `json:"artifactPath,omitempty"`
	Timeline       []TimelineEvent `json:"timeline,omitempty"`
}

// TimelineEvent is one entry of an incident's audit trail.
type TimelineEvent struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Note      string    `json:"note"`
	Timestamp Timestamp `json:"timestamp"`
}

// IncidentDetails is what the single-incident endpoints return.
type IncidentDetails struct {
	Incident            Incident         `json:"incident"`
	AllowedNextStatuses []IncidentStatus `json:"allowedNextStatuses"`
}

// Timestamp decodes the service's local date-times, which arrive either as
// an ISO string without zone ("2025-03-01T10:15:30.5") or as a numeric
// array ([2025,3,1,10,15,30,500000000]). Both are read as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
			if v, err := time.Parse(layout, s); err == nil {
				t.Time = v
				return nil
			}
		}
		return fmt.Errorf("timestamp %q: unsupported format", s)
	}

	var parts []int
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("timestamp: need at least 3 fields, got %d", len(parts))
	}
	for len(parts) < 7 {
		parts = append(parts, 0)
	}
	t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.UTC)
	return nil
}

// MarshalJSON writes the ISO form without zone, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05.999999999"))
}
