package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		current   int
		completed bool
		want      StepState
	}{
		{name: "current step is active", index: 2, current: 2, want: StepActive},
		{name: "active wins over completed flag", index: 2, current: 2, completed: true, want: StepActive},
		{name: "earlier step is completed", index: 1, current: 2, want: StepCompleted},
		{name: "later step with flag is completed", index: 4, current: 2, completed: true, want: StepCompleted},
		{name: "later step is pending", index: 3, current: 2, want: StepPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.index, tt.current, tt.completed))
		})
	}
}

func TestStepState_Label(t *testing.T) {
	assert.Equal(t, "Current Step", StepActive.Label())
	assert.Equal(t, "Completed", StepCompleted.Label())
	assert.Equal(t, "Pending", StepPending.Label())
}
