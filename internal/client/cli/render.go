package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/securelogx/console/internal/client/api"
	"github.com/securelogx/console/internal/client/flows"
	"github.com/securelogx/console/internal/client/ui"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) renderStatus(msg string, class ui.StatusClass) {
	if msg == "" {
		return
	}
	if class == ui.StatusError {
		a.println("[error] " + msg)
		return
	}
	a.println(msg)
}

func (a *App) renderForm(title string) {
	a.println()
	a.println("== " + title + " ==")
	a.println(help[a.doc.Page])
}

// renderDashboard prints nothing while the body is hidden.
func (a *App) renderDashboard() {
	if !a.doc.Body.Visible() {
		return
	}
	a.println()
	a.println("== SecureLogX dashboard ==")
	if el := a.doc.Element(flows.ElementAnalystInfo); el != nil {
		a.println(el.Text())
	}
	a.println(help[ui.PageDashboard])
}

func (a *App) renderIncidents(list []api.Incident) {
	if len(list) == 0 {
		a.println("No incidents.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSEVERITY\tRISK\tIP\tFAILED")
	for _, in := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%d\n",
			in.ID, in.Status, in.Severity, in.RiskScore, in.IPAddress, in.FailedAttempts)
	}
	_ = tw.Flush()
}

// renderIncident prints the incident modal when it is open.
func (a *App) renderIncident(d *api.IncidentDetails) {
	if modal := a.doc.Element(flows.ElementIncidentModal); modal != nil && !modal.Visible() {
		return
	}

	in := d.Incident
	a.println()
	a.println("-- Incident " + in.ID + " --")
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status\t%s\n", in.Status)
	fmt.Fprintf(tw, "Severity\t%s (risk %d)\n", in.Severity, in.RiskScore)
	fmt.Fprintf(tw, "Source IP\t%s\n", in.IPAddress)
	fmt.Fprintf(tw, "Failed attempts\t%s\n", humanize.Comma(int64(in.FailedAttempts)))
	if in.ArtifactPath != "" {
		fmt.Fprintf(tw, "Artifact\t%s\n", in.ArtifactPath)
	}
	_ = tw.Flush()

	if len(in.Timeline) > 0 {
		a.println("Timeline:")
		for _, ev := range in.Timeline {
			line := fmt.Sprintf("  %s  %s", ev.Timestamp.Format("2006-01-02 15:04:05"), ev.Action)
			if ev.Actor != "" {
				line += " by " + ev.Actor
			}
			if ev.Note != "" {
				line += ": " + ev.Note
			}
			a.println(line + " (" + humanize.Time(ev.Timestamp.Time) + ")")
		}
	}

	if len(d.AllowedNextStatuses) > 0 {
		next := make([]string, len(d.AllowedNextStatuses))
		for i, s := range d.AllowedNextStatuses {
			next[i] = string(s)
		}
		a.println("Next: " + strings.Join(next, ", "))
	}
	a.println("Type 'close' to dismiss.")
}
