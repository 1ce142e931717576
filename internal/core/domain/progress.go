package domain

import (
	"math"
	"time"
)

// Progress is the completion summary of a pathway's tracked items.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// ComputeProgress counts items across codingProblems, youtubeReferences and
// theoryContent. Day resources are not tracked. A nil pathway has no progress.
func ComputeProgress(p *Pathway) Progress {
	if p == nil {
		return Progress{}
	}

	var total, completed int
	for _, kind := range AllSectionKinds() {
		for _, item := range p.Sections.Items(kind) {
			total++
			if item.Completed {
				completed++
			}
		}
	}

	return Progress{
		Total:      total,
		Completed:  completed,
		Percentage: Percentage(completed, total),
	}
}

// Percentage returns round(completed*100/total) clamped to [0, 100],
// or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) * 100 / float64(total)))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// ProgressSnapshot is the result of the last successful reload.
type ProgressSnapshot struct {
	// Pathway is nil when the user has no current pathway.
	Pathway  *Pathway
	Progress Progress
	// Sequence increases by one with every applied reload.
	Sequence uint64
	// LoadedAt is when the reload that produced this snapshot completed.
	LoadedAt time.Time
}

// Loaded returns true once at least one reload has been applied.
func (s ProgressSnapshot) Loaded() bool {
	return s.Sequence > 0
}
