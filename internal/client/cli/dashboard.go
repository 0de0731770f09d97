package cli

import (
	"context"
	"errors"
)

var errNoDashboard = errors.New("dashboard is not open")

// Reload runs the dashboard guard again, like refreshing the page.
func (a *App) Reload(ctx context.Context) {
	a.dirty = true
	a.settle(ctx)
}

// Logout ends the session; the dashboard returns to login on every path.
func (a *App) Logout(ctx context.Context) error {
	if a.dash == nil {
		return errNoDashboard
	}
	return a.dash.Logout(ctx)
}

func (a *App) Analyze() error {
	if a.dash == nil {
		return errNoDashboard
	}
	return a.dash.Analyze()
}

func (a *App) CloseIncident() error {
	if a.dash == nil {
		return errNoDashboard
	}
	if err := a.dash.CloseIncident(); err != nil {
		return err
	}
	a.println("Incident closed.")
	return nil
}

// Incidents prints the incident board.
func (a *App) Incidents(ctx context.Context) error {
	if a.dash == nil {
		return errNoDashboard
	}
	list, err := a.dash.Incidents(ctx)
	if err != nil {
		return err
	}
	a.renderIncidents(list)
	return nil
}

// ShowIncident opens one incident and prints its details.
func (a *App) ShowIncident(ctx context.Context, id string) error {
	if a.dash == nil {
		return errNoDashboard
	}
	details, err := a.dash.OpenIncident(ctx, id)
	if err != nil {
		return err
	}
	a.renderIncident(details)
	return nil
}

// AdvanceIncident moves an incident to status and prints the result.
func (a *App) AdvanceIncident(ctx context.Context, id, status string) error {
	if a.dash == nil {
		return errNoDashboard
	}
	details, err := a.dash.AdvanceIncident(ctx, id, status)
	if err != nil {
		return err
	}
	a.renderIncident(details)
	return nil
}

var _ execIface = (*App)(nil)

