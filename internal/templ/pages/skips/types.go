// Package skips renders the skip size selection step of the booking wizard.
package skips

import (
	"strconv"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/DukeRupert/skipwizard/internal/templ/shared"
)

// OptionsState is the state of the options region.
type OptionsState int

const (
	// OptionsLoading renders skeleton cards and asks for the fragment on load.
	OptionsLoading OptionsState = iota
	// OptionsReady renders one card per skip.
	OptionsReady
	// OptionsFailed renders the error banner without cards.
	OptionsFailed
)

// SkeletonCount is the number of placeholder cards shown while loading.
const SkeletonCount = 6

// ErrorBanner is shown when the skip listing could not be fetched.
const ErrorBanner = "🚫 Nothing to display. Please try again later."

// RegionID is the element swapped by htmx when options are (re)loaded.
const RegionID = "skip-options"

// CardIDPrefix prefixes each card's element ID. htmx sends the ID of the
// clicked card in the HX-Trigger header.
const CardIDPrefix = "skip-card-"

// CardData contains display data for one skip card.
type CardData struct {
	ID               int64
	Size             int
	HirePeriodDays   int
	Price            string // VAT-inclusive, formatted, e.g. "£240"
	AllowedOnRoad    bool
	AllowsHeavyWaste bool
	Selected         bool
	ToggleURL        string // page URL with the selection after a click
	ToggleFragment   string // fragment URL with the selection after a click
}

// ElementID is the card's DOM id, sent back by htmx in HX-Trigger.
func (c CardData) ElementID() string {
	return CardIDPrefix + strconv.FormatInt(c.ID, 10)
}

// SummaryData describes the selected skip in the footer bar.
type SummaryData struct {
	Size  int
	Price string
}

// OptionsData contains data for the options region: cards plus footer.
type OptionsData struct {
	State       OptionsState
	Cards       []CardData
	Summary     *SummaryData // nil when nothing is selected
	SelectedID  int64        // meaningful only when Summary is set
	FragmentURL string       // fragment URL fetched on load in OptionsLoading
	BackURL     string
	ContinueURL string
	CSRFToken   string
}

// CanContinue reports whether the Continue button is enabled.
func (d OptionsData) CanContinue() bool {
	return d.Summary != nil
}

// PageData contains data for the full skip selection page.
type PageData struct {
	Title       string
	Options     OptionsData
	Steps       []domain.Step
	CurrentStep int
}

// ToCards converts skip records into cards. urls builds the page and fragment
// URLs for a given selection.
func ToCards(list []domain.Skip, sel domain.Selection, urls func(domain.Selection) (page, fragment string)) []CardData {
	cards := make([]CardData, len(list))
	for i, s := range list {
		page, fragment := urls(sel.Toggle(s.ID))
		cards[i] = CardData{
			ID:               s.ID,
			Size:             s.Size,
			HirePeriodDays:   s.HirePeriodDays,
			Price:            shared.FormatPounds(s.FinalPrice()),
			AllowedOnRoad:    s.AllowedOnRoad,
			AllowsHeavyWaste: s.AllowsHeavyWaste,
			Selected:         sel.IsSelected(s.ID),
			ToggleURL:        page,
			ToggleFragment:   fragment,
		}
	}
	return cards
}

// ToSummary returns the footer summary for the selected skip, or nil.
func ToSummary(list []domain.Skip, sel domain.Selection) *SummaryData {
	s := sel.Find(list)
	if s == nil {
		return nil
	}
	return &SummaryData{
		Size:  s.Size,
		Price: shared.FormatPounds(s.FinalPrice()),
	}
}
