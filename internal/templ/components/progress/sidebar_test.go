package progress

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSteps() []domain.Step {
	return []domain.Step{
		{ID: "postcode", Title: "Postcode", Icon: "map-pin", Completed: true},
		{ID: "waste-type", Title: "Waste Type", Icon: "trash", Completed: true},
		{ID: "select-skip", Title: "Select Skip", Icon: "truck"},
		{ID: "permit-check", Title: "Permit Check", Icon: "shield"},
	}
}

func TestItems(t *testing.T) {
	items := Items(testSteps(), 2)

	require.Len(t, items, 4)
	assert.Equal(t, domain.StepCompleted, items[0].State)
	assert.Equal(t, domain.StepCompleted, items[1].State)
	assert.Equal(t, domain.StepActive, items[2].State)
	assert.Equal(t, domain.StepPending, items[3].State)

	assert.False(t, items[2].Last)
	assert.True(t, items[3].Last)
}

func TestItems_Done(t *testing.T) {
	steps := testSteps()
	steps[2].Completed = true
	items := Items(steps, 2)

	assert.True(t, items[0].Done)
	assert.True(t, items[1].Done)
	assert.Equal(t, domain.StepActive, items[2].State)
	assert.True(t, items[2].Done)
	assert.False(t, items[3].Done)
}

func TestSteps_ActiveCompletedStepDrawsGreenConnector(t *testing.T) {
	steps := testSteps()[2:]
	steps[0].Completed = true

	var buf bytes.Buffer
	require.NoError(t, Steps(steps, 0).Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, `data-step="select-skip" data-state="active" aria-current="step"`)
	assert.Equal(t, 1, strings.Count(out, "min-h-10"))
	assert.Equal(t, 1, strings.Count(out, "bg-green-600"))
	assert.NotContains(t, out, "bg-gray-300")
}

func TestItems_CurrentIsAnInput(t *testing.T) {
	items := Items(testSteps(), 3)

	assert.Equal(t, domain.StepCompleted, items[2].State)
	assert.Equal(t, domain.StepActive, items[3].State)
}

func TestSteps_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Steps(testSteps(), 2).Render(context.Background(), &buf))
	out := buf.String()

	assert.Equal(t, 4, strings.Count(out, "<li "))
	assert.Equal(t, 1, strings.Count(out, "Current Step"))
	assert.Equal(t, 2, strings.Count(out, ">Completed<"))
	assert.Equal(t, 1, strings.Count(out, ">Pending<"))
	assert.Contains(t, out, `data-step="select-skip" data-state="active" aria-current="step"`)
	assert.Contains(t, out, `data-lucide="truck"`)

	// Three connectors for four steps; the active step's is grey
	assert.Equal(t, 3, strings.Count(out, "min-h-10"))
	assert.Equal(t, 1, strings.Count(out, "bg-gray-300"))

	// Two completed bubbles plus two green connectors
	assert.Equal(t, 4, strings.Count(out, "bg-green-600"))
}

func TestSidebar_RendersPanelAndDrawer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Sidebar(testSteps(), 2).Render(context.Background(), &buf))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "<ol "))
	assert.Contains(t, out, `id="`+DrawerToggleID+`"`)
	assert.Contains(t, out, "md:hidden")
	assert.Contains(t, out, "hidden md:block")
}

func TestMenuButton(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MenuButton().Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `for="`+DrawerToggleID+`"`)
}
