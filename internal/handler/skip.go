// Package handler contains HTTP handlers for the booking wizard.
//
// This file implements the skip size selection step.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/DukeRupert/skipwizard/internal/csrf"
	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/DukeRupert/skipwizard/internal/metrics"
	"github.com/DukeRupert/skipwizard/internal/skipapi"
	"github.com/DukeRupert/skipwizard/internal/templ/pages/skips"
	"github.com/DukeRupert/skipwizard/internal/wizard"
)

// Routes served by SkipHandler
const (
	SkipPagePath    = "/booking/skip"
	SkipOptionsPath = "/booking/skip/options"
)

const skipPageTitle = "Choose Your Skip Size"

// SkipHandler serves the skip selection page, its options fragment and the
// Continue action.
type SkipHandler struct {
	lister skipapi.Lister
	steps  []domain.Step
	csrf   *csrf.Protector
	logger *slog.Logger
}

// NewSkipHandler creates a new SkipHandler. steps is the wizard step list
// shown in the progress sidebar; it must contain wizard.StepSelectSkip.
func NewSkipHandler(lister skipapi.Lister, steps []domain.Step, protector *csrf.Protector, logger *slog.Logger) *SkipHandler {
	return &SkipHandler{
		lister: lister,
		steps:  steps,
		csrf:   protector,
		logger: logger,
	}
}

// RegisterRoutes registers the skip step routes on the provided ServeMux.
//
// Routes registered:
// - GET  /booking/skip         -> Show
// - GET  /booking/skip/options -> Options
// - POST /booking/skip         -> Continue
func (h *SkipHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+SkipPagePath, h.Show)
	mux.HandleFunc("GET "+SkipOptionsPath, h.Options)
	mux.HandleFunc("POST "+SkipPagePath, h.Continue)
}

// Show renders the page shell. The options region starts in its loading
// state and fetches the fragment as soon as the page loads.
func (h *SkipHandler) Show(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	token, err := h.csrf.Token(w, r)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	_, fragment := skipURLs(sel)
	data := skips.PageData{
		Title:       skipPageTitle,
		Options:     h.baseOptions(token),
		Steps:       h.steps,
		CurrentStep: wizard.IndexOf(h.steps, wizard.StepSelectSkip),
	}
	data.Options.State = skips.OptionsLoading
	data.Options.FragmentURL = fragment

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := skips.Page(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render skip page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Options fetches the skip listing and renders the cards and footer for the
// requested selection. A failed listing renders the error banner with status
// 200 so htmx swaps it in.
func (h *SkipHandler) Options(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	token, err := h.csrf.Token(w, r)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("HX-Trigger"), skips.CardIDPrefix) {
		metrics.SelectionToggled(!sel.Empty())
	}

	data := h.baseOptions(token)

	list, err := h.lister.ListSkips(r.Context())
	if err != nil {
		h.logger.Error("failed to list skips", "error", err)
		reportError(r.Context(), err)
		data.State = skips.OptionsFailed
	} else {
		if !sel.Empty() && sel.Find(list) == nil {
			id, _ := sel.ID()
			h.logger.Debug("selected skip not in listing", "skip_id", id)
			sel = domain.Selection{}
		}
		data.State = skips.OptionsReady
		data.Cards = skips.ToCards(list, sel, skipURLs)
		data.Summary = skips.ToSummary(list, sel)
		if id, ok := sel.ID(); ok {
			data.SelectedID = id
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := skips.Options(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render skip options", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Continue accepts the selected skip and moves to the next wizard step.
// The next step is served elsewhere; this handler only logs and redirects.
func (h *SkipHandler) Continue(w http.ResponseWriter, r *http.Request) {
	if !h.csrf.Valid(r) {
		h.logger.Warn("csrf validation failed", "path", r.URL.Path)
		ForbiddenResponse(w, r, h.logger)
		return
	}

	raw := strings.TrimSpace(r.FormValue("skip_id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil {
		ValidationErrorResponse(w, r, h.logger,
			domain.NewValidationError("SkipHandler.Continue", "skip_id", "Select a skip to continue"))
		return
	}

	_, next := wizard.Neighbours(h.steps, wizard.StepSelectSkip)
	h.logger.Info("wizard continue",
		"step", wizard.StepSelectSkip,
		"next", next,
		"skip_id", id,
	)
	metrics.ContinuesTotal.WithLabelValues(wizard.StepSelectSkip).Inc()

	target := SkipPagePath
	if next != "" {
		target = StepPath(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// baseOptions fills the footer fields shared by every state.
func (h *SkipHandler) baseOptions(token string) skips.OptionsData {
	prev, _ := wizard.Neighbours(h.steps, wizard.StepSelectSkip)
	data := skips.OptionsData{
		ContinueURL: SkipPagePath,
		CSRFToken:   token,
	}
	if prev != "" {
		data.BackURL = StepPath(prev)
	}
	return data
}

// parseSelection reads the optional ?selected= skip ID. Any int64 is accepted;
// IDs that are not in the listing render as nothing selected.
func parseSelection(r *http.Request) (domain.Selection, error) {
	raw := r.URL.Query().Get("selected")
	if raw == "" {
		return domain.Selection{}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.Selection{}, domain.Invalid("SkipHandler.parseSelection", "Invalid skip selection")
	}
	return domain.Select(id), nil
}

// skipURLs returns the page and fragment URLs that carry sel.
func skipURLs(sel domain.Selection) (page, fragment string) {
	id, ok := sel.ID()
	if !ok {
		return SkipPagePath, SkipOptionsPath
	}
	q := "?selected=" + strconv.FormatInt(id, 10)
	return SkipPagePath + q, SkipOptionsPath + q
}
