package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Pathway is a generated study plan.
type Pathway struct {
	// ID is the server identifier. Absent on some responses.
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string   `json:"title" yaml:"title"`
	Schedule Schedule `json:"schedule" yaml:"schedule"`
	Sections Sections `json:"sections" yaml:"sections"`
}

// Schedule holds the day-by-day plan.
type Schedule struct {
	Daily []DayPlan `json:"daily" yaml:"daily"`
}

// Sections groups the trackable resources that count toward progress.
type Sections struct {
	CodingProblems    []SectionItem `json:"codingProblems" yaml:"codingProblems"`
	YoutubeReferences []SectionItem `json:"youtubeReferences" yaml:"youtubeReferences"`
	TheoryContent     []SectionItem `json:"theoryContent" yaml:"theoryContent"`
}

// DayPlan is one day of the schedule. Details and Resources are optional.
type DayPlan struct {
	Day       int           `json:"day" yaml:"day"`
	Focus     string        `json:"focus" yaml:"focus"`
	Time      StudyTime     `json:"time" yaml:"time"`
	Topics    []string      `json:"topics" yaml:"topics"`
	Details   *string       `json:"details,omitempty" yaml:"details,omitempty"`
	Resources *DayResources `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// StudyTime is the daily time budget. The service reports it either as a
// number of hours or as a range label such as "1-2"; both decode to text.
type StudyTime string

// UnmarshalJSON accepts a JSON number or string.
func (t *StudyTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = StudyTime(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: time %s", ErrInvalidInput, data)
	}
	*t = StudyTime(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// MarshalJSON writes numeric values back as JSON numbers and labels as
// strings. The empty value is null.
func (t StudyTime) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	if t.isNumber() {
		return []byte(t), nil
	}
	return json.Marshal(string(t))
}

// MarshalYAML writes numeric values as YAML numbers.
func (t StudyTime) MarshalYAML() (any, error) {
	if hours, ok := t.Hours(); ok && t.isNumber() {
		return hours, nil
	}
	return string(t), nil
}

// isNumber reports whether t is a JSON number literal.
func (t StudyTime) isNumber() bool {
	if t == "" || (t[0] != '-' && (t[0] < '0' || t[0] > '9')) {
		return false
	}
	return json.Valid([]byte(t))
}

// Hours returns the numeric hours when the value is a plain number.
func (t StudyTime) Hours() (float64, bool) {
	n, err := strconv.ParseFloat(string(t), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DayResources are links attached to a single day.
type DayResources struct {
	Practice []SectionItem `json:"practice,omitempty" yaml:"practice,omitempty"`
	Youtube  []SectionItem `json:"youtube,omitempty" yaml:"youtube,omitempty"`
	Theory   []SectionItem `json:"theory,omitempty" yaml:"theory,omitempty"`
}

// SectionItem is a single addressable resource.
// An absent completed flag decodes as false.
type SectionItem struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	URL       *string `json:"url,omitempty" yaml:"url,omitempty"`
	Completed bool    `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// Link returns the item URL or an empty string.
func (i SectionItem) Link() string {
	if i.URL == nil {
		return ""
	}
	return *i.URL
}

// SectionKind names one of the three tracked collections.
type SectionKind string

// Tracked collections.
const (
	SectionCodingProblems    SectionKind = "codingProblems"
	SectionYoutubeReferences SectionKind = "youtubeReferences"
	SectionTheoryContent     SectionKind = "theoryContent"
)

// Description returns the collection's display name.
func (k SectionKind) Description() string {
	switch k {
	case SectionCodingProblems:
		return "Coding Problems"
	case SectionYoutubeReferences:
		return "YouTube References"
	case SectionTheoryContent:
		return "Theory Content"
	default:
		return unknownDescription
	}
}

// AllSectionKinds returns the tracked collections in display order.
func AllSectionKinds() []SectionKind {
	return []SectionKind{SectionCodingProblems, SectionYoutubeReferences, SectionTheoryContent}
}

// Items returns the items in the given collection.
func (s Sections) Items(kind SectionKind) []SectionItem {
	switch kind {
	case SectionCodingProblems:
		return s.CodingProblems
	case SectionYoutubeReferences:
		return s.YoutubeReferences
	case SectionTheoryContent:
		return s.TheoryContent
	default:
		return nil
	}
}

// SortedDays returns the schedule ordered by day number.
func (p *Pathway) SortedDays() []DayPlan {
	days := make([]DayPlan, len(p.Schedule.Daily))
	copy(days, p.Schedule.Daily)
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

// FindItem locates an item by id across the tracked collections.
// The first match in display order wins.
func (p *Pathway) FindItem(id string) (SectionKind, SectionItem, bool) {
	for _, kind := range AllSectionKinds() {
		for _, item := range p.Sections.Items(kind) {
			if item.ID == id {
				return kind, item, true
			}
		}
	}
	return "", SectionItem{}, false
}

// Validate checks structural invariants: unique day numbers and unique item
// ids inside each collection. Collisions across collections are allowed.
func (p *Pathway) Validate() error {
	seenDays := make(map[int]struct{}, len(p.Schedule.Daily))
	for _, d := range p.Schedule.Daily {
		if _, dup := seenDays[d.Day]; dup {
			return fmt.Errorf("%w: duplicate day %d", ErrInvalidInput, d.Day)
		}
		seenDays[d.Day] = struct{}{}
	}
	for _, kind := range AllSectionKinds() {
		seen := make(map[string]struct{})
		for _, item := range p.Sections.Items(kind) {
			if _, dup := seen[item.ID]; dup {
				return fmt.Errorf("%w: duplicate item %q in %s", ErrInvalidInput, item.ID, kind)
			}
			seen[item.ID] = struct{}{}
		}
	}
	return nil
}

// PathwaySummary is one entry of the pathway history list.
type PathwaySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Days  int    `json:"days"`
	// CreatedAt is nil when the server did not report a timestamp.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Dashboard aggregates the data shown on the landing dashboard.
type Dashboard struct {
	// Current is nil when no pathway has been generated.
	Current  *Pathway
	Progress Progress
	Tips     []string
	History  []PathwaySummary
}
