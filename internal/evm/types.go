// Package evm implements the earned value management calculation core:
// the metric calculator and the performance status classifier.
//
// Every guarded ratio resolves a zero denominator to NaN (see pkg/mathutil);
// NaN propagates through dependent formulas, so if CPI is undefined then EAC,
// ETC, VAC, and TCPI_EAC are undefined too without any special casing. The
// Metrics JSON encoding renders NaN fields as null so serialized output stays
// plain numbers, strings, and nulls.
package evm

import (
	"encoding/json"
	"time"

	"github.com/buildtrack/evm-engine/pkg/constants"
	"github.com/buildtrack/evm-engine/pkg/mathutil"
)

// BudgetFacts holds the externally supplied inputs for one calculation. All
// monetary quantities must be expressed in the same currency.
type BudgetFacts struct {
	BudgetAtCompletion  float64 `json:"budget_at_completion"`
	PlannedValue        float64 `json:"planned_value"`
	EarnedValue         float64 `json:"earned_value"`
	ActualCost          float64 `json:"actual_cost"`
	PlannedDurationDays float64 `json:"planned_duration_days"`
	ActualDurationDays  float64 `json:"actual_duration_days"`
}

// Bands holds the inclusive lower boundaries of the four named classification
// bands for a performance index. An index below Poor is critical.
type Bands struct {
	Excellent float64 `json:"excellent" yaml:"excellent"`
	Good      float64 `json:"good" yaml:"good"`
	Fair      float64 `json:"fair" yaml:"fair"`
	Poor      float64 `json:"poor" yaml:"poor"`
}

// Thresholds holds the classification bands for CPI and SPI plus the alert
// trigger values.
type Thresholds struct {
	CPI                  Bands   `json:"cpi" yaml:"cpi"`
	SPI                  Bands   `json:"spi" yaml:"spi"`
	AlertVariancePercent float64 `json:"alert_variance_percent" yaml:"alertVariancePercent"`
	AlertIndexThreshold  float64 `json:"alert_index_threshold" yaml:"alertIndexThreshold"`
}

// DefaultThresholds returns the documented default threshold configuration.
func DefaultThresholds() Thresholds {
	bands := Bands{
		Excellent: constants.DefaultExcellentThreshold,
		Good:      constants.DefaultGoodThreshold,
		Fair:      constants.DefaultFairThreshold,
		Poor:      constants.DefaultPoorThreshold,
	}
	return Thresholds{
		CPI:                  bands,
		SPI:                  bands,
		AlertVariancePercent: constants.DefaultAlertVariancePercent,
		AlertIndexThreshold:  constants.DefaultAlertIndexThreshold,
	}
}

// Status is a performance classification, totally ordered by severity from
// StatusExcellent (best) to StatusCritical (worst).
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
	StatusPoor      Status = "poor"
	StatusCritical  Status = "critical"
)

// Data currency classifications for the status date.
const (
	DataCurrent = "current"
	DataStale   = "stale"
)

// Metrics is the flat record produced by one calculation: the raw inputs plus
// every derived quantity. It is constructed fresh on every call and never
// mutated.
type Metrics struct {
	BudgetFacts

	StatusDate time.Time `json:"status_date"`

	CostVariance          float64 `json:"cost_variance"`
	ScheduleVariance      float64 `json:"schedule_variance"`
	CostVariancePercent   float64 `json:"cost_variance_percent"`
	ScheduleVarPercent    float64 `json:"schedule_variance_percent"`
	CPI                   float64 `json:"cpi"`
	SPI                   float64 `json:"spi"`
	CSI                   float64 `json:"csi"`
	EAC                   float64 `json:"eac"`
	ETC                   float64 `json:"etc"`
	VAC                   float64 `json:"vac"`
	VACPercent            float64 `json:"vac_percent"`
	TCPIBudget            float64 `json:"tcpi_bac"`
	TCPIEstimate          float64 `json:"tcpi_eac"`
	EstimatedDurationDays float64 `json:"estimated_duration_days"`
	PercentCompletePlan   float64 `json:"percent_complete_planned"`
	PercentCompleteActual float64 `json:"percent_complete_actual"`
	PercentSpent          float64 `json:"percent_spent"`

	CostStatus     Status `json:"cost_status"`
	ScheduleStatus Status `json:"schedule_status"`
	OverallStatus  Status `json:"overall_status"`
	DataCurrency   string `json:"data_currency"`
}

// metricsJSON mirrors Metrics with pointer numerics so undefined (NaN) values
// serialize as null.
type metricsJSON struct {
	BudgetAtCompletion  float64 `json:"budget_at_completion"`
	PlannedValue        float64 `json:"planned_value"`
	EarnedValue         float64 `json:"earned_value"`
	ActualCost          float64 `json:"actual_cost"`
	PlannedDurationDays float64 `json:"planned_duration_days"`
	ActualDurationDays  float64 `json:"actual_duration_days"`

	StatusDate string `json:"status_date"`

	CostVariance          *float64 `json:"cost_variance"`
	ScheduleVariance      *float64 `json:"schedule_variance"`
	CostVariancePercent   *float64 `json:"cost_variance_percent"`
	ScheduleVarPercent    *float64 `json:"schedule_variance_percent"`
	CPI                   *float64 `json:"cpi"`
	SPI                   *float64 `json:"spi"`
	CSI                   *float64 `json:"csi"`
	EAC                   *float64 `json:"eac"`
	ETC                   *float64 `json:"etc"`
	VAC                   *float64 `json:"vac"`
	VACPercent            *float64 `json:"vac_percent"`
	TCPIBudget            *float64 `json:"tcpi_bac"`
	TCPIEstimate          *float64 `json:"tcpi_eac"`
	EstimatedDurationDays *float64 `json:"estimated_duration_days"`
	PercentCompletePlan   *float64 `json:"percent_complete_planned"`
	PercentCompleteActual *float64 `json:"percent_complete_actual"`
	PercentSpent          *float64 `json:"percent_spent"`

	CostStatus     Status `json:"cost_status"`
	ScheduleStatus Status `json:"schedule_status"`
	OverallStatus  Status `json:"overall_status"`
	DataCurrency   string `json:"data_currency"`
}

// nullable converts a value to a pointer, mapping NaN and infinities to nil.
func nullable(val float64) *float64 {
	if !mathutil.IsDefined(val) {
		return nil
	}
	return &val
}

// MarshalJSON encodes the metrics with undefined values as JSON null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricsJSON{
		BudgetAtCompletion:  m.BudgetAtCompletion,
		PlannedValue:        m.PlannedValue,
		EarnedValue:         m.EarnedValue,
		ActualCost:          m.ActualCost,
		PlannedDurationDays: m.PlannedDurationDays,
		ActualDurationDays:  m.ActualDurationDays,

		StatusDate: m.StatusDate.Format(constants.DateLayout),

		CostVariance:          nullable(m.CostVariance),
		ScheduleVariance:      nullable(m.ScheduleVariance),
		CostVariancePercent:   nullable(m.CostVariancePercent),
		ScheduleVarPercent:    nullable(m.ScheduleVarPercent),
		CPI:                   nullable(m.CPI),
		SPI:                   nullable(m.SPI),
		CSI:                   nullable(m.CSI),
		EAC:                   nullable(m.EAC),
		ETC:                   nullable(m.ETC),
		VAC:                   nullable(m.VAC),
		VACPercent:            nullable(m.VACPercent),
		TCPIBudget:            nullable(m.TCPIBudget),
		TCPIEstimate:          nullable(m.TCPIEstimate),
		EstimatedDurationDays: nullable(m.EstimatedDurationDays),
		PercentCompletePlan:   nullable(m.PercentCompletePlan),
		PercentCompleteActual: nullable(m.PercentCompleteActual),
		PercentSpent:          nullable(m.PercentSpent),

		CostStatus:     m.CostStatus,
		ScheduleStatus: m.ScheduleStatus,
		OverallStatus:  m.OverallStatus,
		DataCurrency:   m.DataCurrency,
	})
}
