package flows

import "github.com/securelogx/console/internal/client/ui"

// Element and control ids the flows look up in a ui.Document.
const (
	ControlSubmit        = "submit"
	ElementAnalystInfo   = "analystInfo"
	ControlLogout        = "logoutBtn"
	ControlAnalyze       = "analyzeBtn"
	ControlCloseIncident = "closeIncidentBtn"
	ElementIncidentModal = "incidentModal"
)

// Navigator moves the console between pages. ui.Router implements it.
type Navigator interface {
	Navigate(p ui.Page)
	Replace(p ui.Page)
}

var _ Navigator = (*ui.Router)(nil)
