package evm

import (
	"time"

	"github.com/buildtrack/evm-engine/pkg/constants"
	"github.com/buildtrack/evm-engine/pkg/datetime"
	"github.com/buildtrack/evm-engine/pkg/mathutil"
	"github.com/buildtrack/evm-engine/pkg/validation"
)

// Compute derives the full earned value metrics record from a snapshot of
// budget facts as of statusDate. Data currency is judged against the wall
// clock with the default freshness window.
func Compute(facts BudgetFacts, thresholds Thresholds, statusDate time.Time) (Metrics, error) {
	return ComputeAt(facts, thresholds, statusDate, time.Now(), constants.DefaultFreshnessWindowDays)
}

// ComputeAt is Compute with an injectable clock and freshness window so
// callers and tests get deterministic data-currency classification.
//
// The only error path is input validation; division by zero anywhere in the
// formula set resolves to NaN and flows through dependent quantities.
// Intermediate values are never rounded and percentages are not clamped.
func ComputeAt(facts BudgetFacts, thresholds Thresholds, statusDate, now time.Time, freshnessWindowDays int) (Metrics, error) {
	err := validation.ValidateFacts(
		facts.BudgetAtCompletion,
		facts.PlannedValue,
		facts.EarnedValue,
		facts.ActualCost,
		facts.PlannedDurationDays,
		facts.ActualDurationDays,
	)
	if err != nil {
		return Metrics{}, err
	}

	bac := facts.BudgetAtCompletion
	pv := facts.PlannedValue
	ev := facts.EarnedValue
	ac := facts.ActualCost

	m := Metrics{
		BudgetFacts: facts,
		StatusDate:  statusDate,
	}

	m.CostVariance = ev - ac
	m.ScheduleVariance = ev - pv
	m.CostVariancePercent = mathutil.Percent(m.CostVariance, ev)
	m.ScheduleVarPercent = mathutil.Percent(m.ScheduleVariance, pv)

	m.CPI = mathutil.SafeRatio(ev, ac)
	m.SPI = mathutil.SafeRatio(ev, pv)
	m.CSI = m.CPI * m.SPI

	// SPI-adjusted estimate at completion; the forecast package reuses this
	// value rather than recomputing it.
	m.EAC = ac + mathutil.SafeRatio(bac-ev, m.CPI*m.SPI)
	m.ETC = m.EAC - ac
	m.VAC = bac - m.EAC
	m.VACPercent = mathutil.Percent(m.VAC, bac)

	m.TCPIBudget = mathutil.SafeRatio(bac-ev, bac-ac)
	m.TCPIEstimate = mathutil.SafeRatio(bac-ev, m.EAC-ac)

	m.EstimatedDurationDays = mathutil.SafeRatio(facts.PlannedDurationDays, m.SPI)
	m.PercentCompletePlan = mathutil.Percent(pv, bac)
	m.PercentCompleteActual = mathutil.Percent(ev, bac)
	m.PercentSpent = mathutil.Percent(ac, bac)

	m.CostStatus = ClassifyIndex(m.CPI, thresholds.CPI)
	m.ScheduleStatus = ClassifyIndex(m.SPI, thresholds.SPI)
	m.OverallStatus = CombineStatus(m.CostStatus, m.ScheduleStatus)

	if datetime.WithinWindow(statusDate, now, freshnessWindowDays) {
		m.DataCurrency = DataCurrent
	} else {
		m.DataCurrency = DataStale
	}

	return m, nil
}
