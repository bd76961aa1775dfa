// Package shared holds building blocks used by every templ page.
package shared

import twmerge "github.com/Oudwins/tailwind-merge-go"

// Script sources loaded by every page. The security headers middleware allows
// the third-party hosts in its Content-Security-Policy.
const (
	TailwindSrc = "https://cdn.tailwindcss.com"
	HtmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	LucideSrc   = "https://unpkg.com/lucide@0.468.0/dist/umd/lucide.min.js"
	IconsSrc    = "/static/js/icons.js"
)

// Classes merges Tailwind class lists so later utilities override
// conflicting earlier ones.
func Classes(classes ...string) string {
	return twmerge.Merge(classes...)
}
