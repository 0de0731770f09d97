package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/securelogx/console/internal/common"
)

// ScanLog has the service analyze a log on its own host and prints what it
// detected.
func (a *App) ScanLog(ctx context.Context, logPath string) error {
	if a.dash == nil {
		return errNoDashboard
	}
	list, err := a.dash.ScanLog(ctx, logPath)
	if err != nil {
		return err
	}
	a.renderIncidents(list)
	return nil
}

// UploadLog sends a local log file for analysis.
func (a *App) UploadLog(ctx context.Context, path string) error {
	if a.dash == nil {
		return errNoDashboard
	}

	f, err := os.Open(path)
	if err != nil {
		a.doc.Status.Error(fmt.Sprintf("Cannot read %s.", path))
		return err
	}
	defer f.Close()

	list, err := a.dash.UploadLog(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	a.renderIncidents(list)
	return nil
}

// DecryptReport prompts for the report password and prints the decrypted
// forensic report.
func (a *App) DecryptReport(ctx context.Context, encryptedPath string) error {
	if a.dash == nil {
		return errNoDashboard
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	report, err := a.dash.DecryptReport(ctx, encryptedPath, string(password))
	if err != nil {
		return err
	}
	a.renderReport(report)
	return nil
}

func (a *App) renderReport(report json.RawMessage) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, report, "", "  "); err != nil {
		a.println(string(report))
		return
	}
	a.println(pretty.String())
}
