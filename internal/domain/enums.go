package domain

import (
	"fmt"
	"strings"
)

// StatusCategory is the closed set of workflow categories a task status maps onto.
type StatusCategory int

const (
	CategoryUnknown StatusCategory = iota
	CategoryTodo
	CategoryInProgress
	CategoryDone
)

var categoryNames = map[StatusCategory]string{
	CategoryUnknown:    "Unknown",
	CategoryTodo:       "To Do",
	CategoryInProgress: "In Progress",
	CategoryDone:       "Done",
}

func (c StatusCategory) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return categoryNames[CategoryUnknown]
}

// ParseStatusCategory maps a persisted category string onto a StatusCategory.
// Matching ignores case, spaces, dashes and underscores, so "To Do", "todo" and
// "TO_DO" are equivalent. Anything unrecognized becomes CategoryUnknown.
func ParseStatusCategory(s string) StatusCategory {
	switch normalizeEnum(s) {
	case "todo":
		return CategoryTodo
	case "inprogress":
		return CategoryInProgress
	case "done":
		return CategoryDone
	default:
		return CategoryUnknown
	}
}

type SprintStatus string

const (
	SprintNotStarted SprintStatus = "not_started"
	SprintStarted    SprintStatus = "started"
	SprintCompleted  SprintStatus = "completed"
)

// ValidSprintStatuses is the canonical set of accepted sprint status strings.
var ValidSprintStatuses = map[SprintStatus]bool{
	SprintNotStarted: true, SprintStarted: true, SprintCompleted: true,
}

// ParseSprintStatus accepts the canonical values plus the camel/kebab spellings
// seen in exported payloads ("notStarted", "not-started").
func ParseSprintStatus(s string) (SprintStatus, error) {
	switch normalizeEnum(s) {
	case "", "notstarted":
		return SprintNotStarted, nil
	case "started", "active":
		return SprintStarted, nil
	case "completed", "closed":
		return SprintCompleted, nil
	}
	return "", fmt.Errorf("unknown sprint status %q", s)
}

type Granularity string

const (
	GranularityWeeks  Granularity = "weeks"
	GranularityMonths Granularity = "months"
	GranularityYears  Granularity = "years"
)

// Granularities lists the supported granularities in cycling order.
var Granularities = []Granularity{GranularityWeeks, GranularityMonths, GranularityYears}

// ParseGranularity accepts singular and plural spellings ("week", "weeks").
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weeks", "w":
		return GranularityWeeks, nil
	case "month", "months", "m":
		return GranularityMonths, nil
	case "year", "years", "y":
		return GranularityYears, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want weeks, months or years)", s)
}

// Next returns the granularity after g in cycling order.
func (g Granularity) Next() Granularity {
	for i, v := range Granularities {
		if v == g {
			return Granularities[(i+1)%len(Granularities)]
		}
	}
	return GranularityMonths
}

func normalizeEnum(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
