// Package wizard holds the step configuration of the skip hire booking flow.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Step IDs referenced by handlers.
const (
	StepPostcode    = "postcode"
	StepWasteType   = "waste-type"
	StepSelectSkip  = "select-skip"
	StepPermitCheck = "permit-check"
	StepChooseDate  = "choose-date"
	StepPayment     = "payment"
)

// DefaultSteps returns the six steps of the booking flow. Postcode and waste
// type are collected before the skip page, so they start out completed.
func DefaultSteps() []domain.Step {
	return []domain.Step{
		{ID: StepPostcode, Title: "Postcode", Icon: "map-pin", Completed: true},
		{ID: StepWasteType, Title: "Waste Type", Icon: "trash", Completed: true},
		{ID: StepSelectSkip, Title: "Select Skip", Icon: "truck"},
		{ID: StepPermitCheck, Title: "Permit Check", Icon: "shield"},
		{ID: StepChooseDate, Title: "Choose Date", Icon: "calendar"},
		{ID: StepPayment, Title: "Payment", Icon: "credit-card"},
	}
}

// validID matches step IDs. They become a path segment of /booking/{step}.
var validID = regexp.MustCompile(`^[a-z0-9-]+$`)

type stepsFile struct {
	Steps []domain.Step `yaml:"steps"`
}

// LoadSteps reads the step list from a YAML file. An empty path returns
// DefaultSteps.
//
// File format:
//
//	steps:
//	  - id: postcode
//	    title: Postcode
//	    icon: map-pin
//	    completed: true
func LoadSteps(path string) ([]domain.Step, error) {
	if path == "" {
		return DefaultSteps(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read steps file: %w", err)
	}
	return ParseSteps(data)
}

// ParseSteps decodes and validates a YAML step list.
func ParseSteps(data []byte) ([]domain.Step, error) {
	var f stepsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse steps file: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("steps file defines no steps")
	}

	seen := make(map[string]bool, len(f.Steps))
	for i := range f.Steps {
		s := &f.Steps[i]
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("step %d: id is required", i+1)
		}
		if !validID.MatchString(s.ID) {
			return nil, fmt.Errorf("step %d: id %q must contain only a-z, 0-9 and '-'", i+1, s.ID)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("step %d: duplicate id %q", i+1, s.ID)
		}
		seen[s.ID] = true

		if s.Title == "" {
			s.Title = titleFromID(s.ID)
		}
		if s.Icon == "" {
			s.Icon = "circle"
		}
	}

	return f.Steps, nil
}

// IndexOf returns the position of the step with the given ID, or -1.
func IndexOf(steps []domain.Step, id string) int {
	for i, s := range steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Neighbours returns the IDs of the steps before and after id. Either is empty
// at the ends of the flow or when id is unknown.
func Neighbours(steps []domain.Step, id string) (prev, next string) {
	i := IndexOf(steps, id)
	if i < 0 {
		return "", ""
	}
	if i > 0 {
		prev = steps[i-1].ID
	}
	if i < len(steps)-1 {
		next = steps[i+1].ID
	}
	return prev, next
}

// titleFromID turns "permit-check" into "Permit Check".
func titleFromID(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}
