package domain

// Step describes one stage of the booking wizard.
type Step struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Icon      string `yaml:"icon"`      // lucide icon name, e.g. "map-pin"
	Completed bool   `yaml:"completed"` // marks the step done regardless of position
}

// StepState is how a step is shown in the progress sidebar.
type StepState string

const (
	StepActive    StepState = "active"
	StepCompleted StepState = "completed"
	StepPending   StepState = "pending"
)

// String returns the string representation of the state.
func (s StepState) String() string {
	return string(s)
}

// Label returns the caption shown under the step title.
func (s StepState) Label() string {
	switch s {
	case StepActive:
		return "Current Step"
	case StepCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// StateOf returns the state of the step at index when current is the active
// step. The active step wins over a completed flag.
func StateOf(index, current int, completed bool) StepState {
	switch {
	case index == current:
		return StepActive
	case index < current || completed:
		return StepCompleted
	default:
		return StepPending
	}
}
