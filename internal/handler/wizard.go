package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/DukeRupert/skipwizard/internal/wizard"
)

// StepPath returns the URL of a wizard step.
func StepPath(id string) string {
	if id == wizard.StepSelectSkip {
		return SkipPagePath
	}
	return "/booking/" + id
}

// WizardHandler answers the wizard steps this service does not own. They
// only log the navigation so the flow can be followed end to end.
type WizardHandler struct {
	steps  []domain.Step
	logger *slog.Logger
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(steps []domain.Step, logger *slog.Logger) *WizardHandler {
	return &WizardHandler{
		steps:  steps,
		logger: logger,
	}
}

// RegisterRoutes registers the wizard routes on the provided ServeMux.
//
// Routes registered:
// - GET /                -> redirect to the skip step
// - GET /booking/{step}  -> Step
func (h *WizardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, SkipPagePath, http.StatusSeeOther)
	})
	mux.HandleFunc("GET /booking/{step}", h.Step)
}

// Step handles navigation to a step other than skip selection.
func (h *WizardHandler) Step(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("step")

	if wizard.IndexOf(h.steps, id) < 0 {
		NotFoundResponse(w, r, h.logger, "step", id)
		return
	}
	if id == wizard.StepSelectSkip {
		http.Redirect(w, r, SkipPagePath, http.StatusSeeOther)
		return
	}

	h.logger.Info("wizard navigation", "step", id, "referer", r.Referer())
	ErrorResponse(w, r, h.logger, domain.NotImplemented("WizardHandler.Step", "This step is not available yet."))
}
