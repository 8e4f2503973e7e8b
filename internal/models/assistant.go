// Package models defines domain types for the assistant
package models

import "time"

// Section identifies one of the independent assistant feature areas.
// Each section owns its own InteractionState; actions on one section
// never touch another's state.
type Section string

const (
	SectionSummary   Section = "summary"
	SectionQuestion  Section = "question"
	SectionPortfolio Section = "portfolio"
	SectionNews      Section = "news"
)

// Sections lists all known sections in display order.
func Sections() []Section {
	return []Section{SectionSummary, SectionQuestion, SectionPortfolio, SectionNews}
}

// InteractionState is the visible state of one assistant section.
// After a request settles, at most one of Result / ErrorMessage is
// current: beginning a new request clears both.
type InteractionState struct {
	Section      Section   `json:"section"`
	Input        string    `json:"input_value,omitempty"`
	Result       string    `json:"result_text,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Loading      bool      `json:"is_loading"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// HasError reports whether the section currently shows an error.
func (s InteractionState) HasError() bool {
	return s.ErrorMessage != ""
}

// HasResult reports whether the section currently shows a result.
func (s InteractionState) HasResult() bool {
	return s.Result != ""
}

// Idle reports whether no request is in flight for the section.
func (s InteractionState) Idle() bool {
	return !s.Loading
}
