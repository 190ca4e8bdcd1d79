// Package view defines the value types that describe where the user currently is
// in the portal: the active section and the per-axis selections.
package view

import (
	"errors"
	"fmt"
	"strings"
)

// Section identifies one of the mutually exclusive top-level views.
type Section string

const (
	SectionHome           Section = "home"
	SectionResearch       Section = "research"
	SectionSolutions      Section = "solutions"
	SectionAppCenter      Section = "app-center"
	SectionCases          Section = "cases"
	SectionReviews        Section = "reviews"
	SectionResources      Section = "resources"
	SectionBattleMap      Section = "battle-map"
	SectionAIHub          Section = "ai-hub"
	SectionDashboard      Section = "dashboard"
	SectionProfile        Section = "profile"
	SectionUploadSolution Section = "upload-solution"
	SectionUploadApp      Section = "upload-app"
	SectionUploadCase     Section = "upload-case"
	SectionUploadReview   Section = "upload-review"
	SectionUploadArticle  Section = "upload-article"
	SectionUploadAgent    Section = "upload-agent"
)

// ErrUnknownSection is returned for section values outside the closed set.
var ErrUnknownSection = errors.New("view: unknown section")

// AllSections returns the supported sections in menu order.
func AllSections() []Section {
	return []Section{
		SectionHome,
		SectionResearch,
		SectionSolutions,
		SectionAppCenter,
		SectionCases,
		SectionReviews,
		SectionResources,
		SectionBattleMap,
		SectionAIHub,
		SectionDashboard,
		SectionProfile,
		SectionUploadSolution,
		SectionUploadApp,
		SectionUploadCase,
		SectionUploadReview,
		SectionUploadArticle,
		SectionUploadAgent,
	}
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	for _, candidate := range AllSections() {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsUpload reports whether s is one of the upload form sections.
func (s Section) IsUpload() bool {
	return strings.HasPrefix(string(s), "upload-")
}

// ParseSection converts raw input into a Section. Unlike collection types there
// is no fallback: an unknown value is always an error.
func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownSection, raw)
	}
	return s, nil
}

// ownedAxes lists, per section, the axes that section renders as a detail view.
var ownedAxes = map[Section][]Axis{
	SectionSolutions: {AxisSolution, AxisTab},
	SectionAppCenter: {AxisApp, AxisTab},
	SectionCases:     {AxisCase, AxisTab},
	SectionReviews:   {AxisReview},
	SectionResearch:  {AxisArticle},
	SectionProfile:   {AxisProfile},
	SectionAIHub:     {AxisAgent},
	SectionBattleMap: {AxisClient},
}

// OwnedAxes returns the axes whose selection turns the section's list view
// into a detail view. Sections without a detail view return nil.
func OwnedAxes(s Section) []Axis {
	axes := ownedAxes[s]
	if len(axes) == 0 {
		return nil
	}
	out := make([]Axis, len(axes))
	copy(out, axes)
	return out
}
