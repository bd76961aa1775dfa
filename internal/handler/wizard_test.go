package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/DukeRupert/skipwizard/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestWizardHandler_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewWizardHandler(wizard.DefaultSteps(), logger).RegisterRoutes(mux)

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{name: "root redirects to skip step", target: "/", wantStatus: http.StatusSeeOther, wantLocation: SkipPagePath},
		{name: "skip step id redirects", target: "/booking/select-skip", wantStatus: http.StatusSeeOther, wantLocation: SkipPagePath},
		{name: "previous step is a stub", target: "/booking/waste-type", wantStatus: http.StatusNotImplemented},
		{name: "next step is a stub", target: "/booking/permit-check", wantStatus: http.StatusNotImplemented},
		{name: "unknown step", target: "/booking/teleport", wantStatus: http.StatusNotFound},
		{name: "unknown path", target: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(mux, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestStepPath(t *testing.T) {
	assert.Equal(t, SkipPagePath, StepPath(wizard.StepSelectSkip))
	assert.Equal(t, "/booking/permit-check", StepPath(wizard.StepPermitCheck))
}

func TestWizardHandler_UnknownStepNamesTheStep(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewWizardHandler(wizard.DefaultSteps(), logger).RegisterRoutes(mux)

	rec := get(mux, "/booking/teleport")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `No step named "teleport".`)
	assert.NotContains(t, rec.Body.String(), "GET /booking")
}
