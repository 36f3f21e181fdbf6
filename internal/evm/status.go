package evm

import "github.com/buildtrack/evm-engine/pkg/mathutil"

// severityRank orders statuses from best (0) to worst (4).
var severityRank = map[Status]int{
	StatusExcellent: 0,
	StatusGood:      1,
	StatusFair:      2,
	StatusPoor:      3,
	StatusCritical:  4,
}

// ClassifyIndex maps a performance index onto a status band. Boundaries are
// inclusive on the lower end, so an index exactly at a boundary resolves to
// the better band. An undefined index classifies as critical: a ratio that
// cannot be computed gives no evidence of acceptable performance.
func ClassifyIndex(index float64, bands Bands) Status {
	if !mathutil.IsDefined(index) {
		return StatusCritical
	}
	switch {
	case index >= bands.Excellent:
		return StatusExcellent
	case index >= bands.Good:
		return StatusGood
	case index >= bands.Fair:
		return StatusFair
	case index >= bands.Poor:
		return StatusPoor
	default:
		return StatusCritical
	}
}

// CombineStatus returns the worse of the cost and schedule statuses. The
// combination is a pure maximum over severity with no weighting between the
// two dimensions.
func CombineStatus(cost, schedule Status) Status {
	if severityRank[schedule] > severityRank[cost] {
		return schedule
	}
	return cost
}

// Severity exposes the rank of a status on the total order excellent (0)
// through critical (4). Unknown statuses rank as critical.
func (s Status) Severity() int {
	rank, ok := severityRank[s]
	if !ok {
		return severityRank[StatusCritical]
	}
	return rank
}
