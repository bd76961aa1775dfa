// Package progress renders the wizard progress sidebar.
package progress

import "github.com/DukeRupert/skipwizard/internal/domain"

// DrawerToggleID is the checkbox that opens the drawer on narrow viewports.
const DrawerToggleID = "progress-drawer"

// Item is one step row of the sidebar.
type Item struct {
	ID    string
	Title string
	Icon  string
	State domain.StepState
	// Done is set for steps before the current one and for steps flagged
	// completed, including an active one. It colours the connector below.
	Done bool
	Last bool // last row draws no connector line
}

// Items derives the rows for steps with current as the active index.
func Items(steps []domain.Step, current int) []Item {
	items := make([]Item, len(steps))
	for i, s := range steps {
		items[i] = Item{
			ID:    s.ID,
			Title: s.Title,
			Icon:  s.Icon,
			State: domain.StateOf(i, current, s.Completed),
			Done:  i < current || s.Completed,
			Last:  i == len(steps)-1,
		}
	}
	return items
}

const (
	bubbleBase    = "w-10 h-10 rounded-full flex items-center justify-center transition-all duration-300 z-10"
	connectorBase = "w-1 flex-1 my-1 min-h-10"
)

var bubbleClasses = map[domain.StepState]string{
	domain.StepActive:    "bg-blue-600 text-white shadow-lg",
	domain.StepCompleted: "bg-green-600 text-white",
	domain.StepPending:   "bg-gray-200 text-gray-400",
}

var titleClasses = map[domain.StepState]string{
	domain.StepActive:    "text-blue-600",
	domain.StepCompleted: "text-green-600",
	domain.StepPending:   "text-gray-400",
}

func connectorClass(done bool) string {
	if done {
		return "bg-green-600"
	}
	return "bg-gray-300"
}
