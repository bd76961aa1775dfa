package skips

import "github.com/DukeRupert/skipwizard/internal/templ/shared"

// SkipImageURL is the photo shown on every card.
const SkipImageURL = "/static/img/skip.svg"

const (
	cardClass     = "block cursor-pointer overflow-hidden rounded-lg bg-white shadow transition-all duration-300 hover:shadow-xl hover:-translate-y-1"
	selectedClass = "ring-2 ring-blue-600 scale-105"
	badgeClass    = "px-2 py-1 flex items-center gap-1 text-xs rounded-lg text-white"
	selectClass   = "block w-full rounded-md border border-gray-300 px-4 py-2 text-center text-sm font-medium uppercase text-blue-600 transition duration-300 ease-in-out hover:scale-105 hover:shadow-lg hover:bg-blue-600 hover:text-white hover:border-blue-600"
	selectedBtn   = "border-blue-600 bg-blue-600 text-white"

	gridClass    = "grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"
	buttonClass  = "inline-flex items-center gap-2 rounded-md px-4 py-2 text-sm font-medium uppercase transition"
	outlineClass = "border border-blue-600 text-blue-600 hover:bg-blue-50"
	primaryClass = "bg-blue-600 text-white shadow hover:bg-blue-700 disabled:cursor-not-allowed disabled:bg-gray-300 disabled:text-gray-500 disabled:shadow-none"
	mutedClass   = "border border-gray-300 text-gray-400"
)

func cardClasses(selected bool) string {
	if selected {
		return shared.Classes(cardClass, selectedClass)
	}
	return cardClass
}

func selectButtonClasses(selected bool) string {
	if selected {
		return shared.Classes(selectClass, selectedBtn)
	}
	return selectClass
}
