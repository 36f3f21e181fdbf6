// Package alerts evaluates a computed metrics record against alert
// thresholds and produces threshold-breach alerts.
//
// Evaluation is pure and stateless: a fresh list is produced on every call,
// nothing is deduplicated across calls, and nothing is persisted. Alerts
// appear in rule evaluation order.
package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/pkg/mathutil"
)

// Alert types.
const (
	TypeCostOverrun        = "cost_overrun"
	TypeScheduleSlip       = "schedule_slip"
	TypePerformanceDecline = "performance_decline"
	TypeBudgetExhaustion   = "budget_exhaustion"
)

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is a structured warning that a variance or index crossed a configured
// threshold.
type Alert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	Metric       string    `json:"metric"`
	Threshold    float64   `json:"threshold"`
	CurrentValue float64   `json:"current_value"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// Evaluate runs the fixed rule set against a metrics record. Variance rules
// fire only when the absolute variance percentage strictly exceeds the
// configured trigger; a breach of more than twice the trigger escalates to
// critical severity.
func Evaluate(m evm.Metrics, thresholds evm.Thresholds, now time.Time) []Alert {
	var result []Alert

	if a := varianceAlert(TypeCostOverrun, "cv_percent", "Cost overrun",
		"cost variance", m.CostVariancePercent, thresholds.AlertVariancePercent, now); a != nil {
		result = append(result, *a)
	}

	if a := varianceAlert(TypeScheduleSlip, "sv_percent", "Schedule slip",
		"schedule variance", m.ScheduleVarPercent, thresholds.AlertVariancePercent, now); a != nil {
		result = append(result, *a)
	}

	if mathutil.IsDefined(m.CPI) && m.CPI < thresholds.AlertIndexThreshold {
		result = append(result, indexAlert("cpi", "Cost performance declining", m.CPI, thresholds.AlertIndexThreshold, now))
	}
	if mathutil.IsDefined(m.SPI) && m.SPI < thresholds.AlertIndexThreshold {
		result = append(result, indexAlert("spi", "Schedule performance declining", m.SPI, thresholds.AlertIndexThreshold, now))
	}

	if mathutil.IsDefined(m.PercentSpent) && mathutil.IsDefined(m.PercentCompleteActual) &&
		m.PercentSpent >= 100 && m.PercentCompleteActual < 100 {
		result = append(result, Alert{
			ID:           uuid.NewString(),
			Type:         TypeBudgetExhaustion,
			Severity:     SeverityCritical,
			Metric:       "percent_spent",
			Threshold:    100,
			CurrentValue: m.PercentSpent,
			Title:        "Budget exhausted before completion",
			Message: fmt.Sprintf("%.1f%% of budget spent with only %.1f%% of work complete",
				m.PercentSpent, m.PercentCompleteActual),
			CreatedAt: now,
		})
	}

	return result
}

// varianceAlert fires when a negative variance percentage strictly exceeds
// the trigger in magnitude. A variance of exactly the trigger does not fire.
func varianceAlert(alertType, metric, title, label string, variancePercent, trigger float64, now time.Time) *Alert {
	if !mathutil.IsDefined(variancePercent) || variancePercent >= 0 {
		return nil
	}
	magnitude := math.Abs(variancePercent)
	if magnitude <= trigger {
		return nil
	}

	severity := SeverityWarning
	if magnitude > trigger*2 {
		severity = SeverityCritical
	}

	return &Alert{
		ID:           uuid.NewString(),
		Type:         alertType,
		Severity:     severity,
		Metric:       metric,
		Threshold:    trigger,
		CurrentValue: variancePercent,
		Title:        title,
		Message: fmt.Sprintf("%s of %.2f%% exceeds the %.2f%% alert threshold",
			label, variancePercent, trigger),
		CreatedAt: now,
	}
}

func indexAlert(metric, title string, index, threshold float64, now time.Time) Alert {
	return Alert{
		ID:           uuid.NewString(),
		Type:         TypePerformanceDecline,
		Severity:     SeverityWarning,
		Metric:       metric,
		Threshold:    threshold,
		CurrentValue: index,
		Title:        title,
		Message: fmt.Sprintf("%s of %.3f is below the %.2f alert threshold",
			metric, index, threshold),
		CreatedAt: now,
	}
}
