package flows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/securelogx/console/internal/client/api"
)

const (
	// LogPathRequiredMessage is shown when scan or upload gets no path.
	LogPathRequiredMessage = "Log path is required."
	// AnalysisFailedMessage is shown when a log analysis fails and the
	// service gave no message.
	AnalysisFailedMessage = "Log analysis failed."
	// DecryptRequiredMessage is shown when decrypt is missing its path or
	// password.
	DecryptRequiredMessage = "Encrypted path and password are required."
	// DecryptFailedMessage is shown when decryption fails and the service
	// gave no message.
	DecryptFailedMessage = "Failed to decrypt incident report."
	// DecryptedNotice is shown after a report was decrypted.
	DecryptedNotice = "Report decrypted."
)

// AnalysisNotice is the status after an analysis detected n incidents.
func AnalysisNotice(n int) string {
	if n == 1 {
		return "Analysis complete: 1 incident detected."
	}
	return fmt.Sprintf("Analysis complete: %d incidents detected.", n)
}

// ScanLog asks the service to analyze the log at logPath on the service
// host. Detected incidents join the incident board.
func (d *Dashboard) ScanLog(ctx context.Context, logPath string) ([]api.Incident, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	logPath = strings.TrimSpace(logPath)
	if logPath == "" {
		d.doc.Status.Error(LogPathRequiredMessage)
		return nil, ErrValidation
	}

	list, err := d.client.AnalyzeLog(ctx, logPath)
	if err != nil {
		return nil, d.serviceFailure(ctx, err, AnalysisFailedMessage)
	}
	d.doc.Status.Info(AnalysisNotice(len(list)))
	return list, nil
}

// UploadLog sends a local log to the service for analysis. name is the
// file name reported to the service.
func (d *Dashboard) UploadLog(ctx context.Context, name string, content io.Reader) ([]api.Incident, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || content == nil {
		d.doc.Status.Error(LogPathRequiredMessage)
		return nil, ErrValidation
	}

	list, err := d.client.AnalyzeUpload(ctx, name, content)
	if err != nil {
		return nil, d.serviceFailure(ctx, err, AnalysisFailedMessage)
	}
	d.doc.Status.Info(AnalysisNotice(len(list)))
	return list, nil
}

// DecryptReport asks the service to decrypt an encrypted forensic report.
// A 403 here means the report password was refused, not the session, so it
// is shown as an error and the page stays.
func (d *Dashboard) DecryptReport(ctx context.Context, encryptedPath, password string) (json.RawMessage, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	encryptedPath = strings.TrimSpace(encryptedPath)
	if encryptedPath == "" || password == "" {
		d.doc.Status.Error(DecryptRequiredMessage)
		return nil, ErrValidation
	}

	report, err := d.client.DecryptReport(ctx, encryptedPath, password)
	if err != nil {
		var rej *api.RejectedError
		if errors.As(err, &rej) && rej.StatusCode == http.StatusForbidden {
			d.log.Info(ctx, "report password refused", "path", encryptedPath)
			msg := rej.Message
			if msg == "" {
				msg = DecryptFailedMessage
			}
			d.doc.Status.Error(msg)
			return nil, err
		}
		return nil, d.serviceFailure(ctx, err, DecryptFailedMessage)
	}
	d.doc.Status.Info(DecryptedNotice)
	return report, nil
}
