package alerts

import (
	"math"
	"testing"
	"time"

	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/pkg/datetime"
)

// healthyMetrics returns a record that trips no alert rule; tests override
// individual fields from there.
func healthyMetrics() evm.Metrics {
	return evm.Metrics{
		CostVariancePercent:   0,
		ScheduleVarPercent:    0,
		CPI:                   1.0,
		SPI:                   1.0,
		PercentSpent:          50,
		PercentCompleteActual: 50,
	}
}

func evaluate(m evm.Metrics) []Alert {
	return Evaluate(m, evm.DefaultThresholds(), datetime.MustParseDate("2026-08-01"))
}

func findAlert(alerts []Alert, alertType string) *Alert {
	for i := range alerts {
		if alerts[i].Type == alertType {
			return &alerts[i]
		}
	}
	return nil
}

func TestEvaluateHealthyProject(t *testing.T) {
	if alerts := evaluate(healthyMetrics()); len(alerts) != 0 {
		t.Errorf("Evaluate() = %d alerts for healthy metrics, expected none", len(alerts))
	}
}

func TestEvaluateCostOverrunStrictness(t *testing.T) {
	tests := []struct {
		name         string
		cvPercent    float64
		wantFire     bool
		wantSeverity string
	}{
		{
			name:      "Exactly at threshold does not fire",
			cvPercent: -10,
			wantFire:  false,
		},
		{
			name:         "Just past threshold fires warning",
			cvPercent:    -10.01,
			wantFire:     true,
			wantSeverity: SeverityWarning,
		},
		{
			name:         "Exactly double threshold stays warning",
			cvPercent:    -20,
			wantFire:     true,
			wantSeverity: SeverityWarning,
		},
		{
			name:         "Past double threshold escalates to critical",
			cvPercent:    -20.5,
			wantFire:     true,
			wantSeverity: SeverityCritical,
		},
		{
			name:      "Positive variance never fires",
			cvPercent: 25,
			wantFire:  false,
		},
		{
			name:      "Undefined variance never fires",
			cvPercent: math.NaN(),
			wantFire:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthyMetrics()
			m.CostVariancePercent = tt.cvPercent
			alert := findAlert(evaluate(m), TypeCostOverrun)
			if !tt.wantFire {
				if alert != nil {
					t.Fatalf("cost_overrun fired for CV%%=%v, expected no alert", tt.cvPercent)
				}
				return
			}
			if alert == nil {
				t.Fatalf("cost_overrun did not fire for CV%%=%v", tt.cvPercent)
			}
			if alert.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, expected %s", alert.Severity, tt.wantSeverity)
			}
			if alert.CurrentValue != tt.cvPercent {
				t.Errorf("current_value = %v, expected %v", alert.CurrentValue, tt.cvPercent)
			}
			if alert.Threshold != 10 {
				t.Errorf("threshold = %v, expected 10", alert.Threshold)
			}
		})
	}
}

func TestEvaluateScheduleSlip(t *testing.T) {
	m := healthyMetrics()
	m.ScheduleVarPercent = -31

	alert := findAlert(evaluate(m), TypeScheduleSlip)
	if alert == nil {
		t.Fatal("schedule_slip did not fire for SV%=-31")
	}
	if alert.Severity != SeverityCritical {
		t.Errorf("severity = %s, expected %s", alert.Severity, SeverityCritical)
	}
	if alert.Metric != "sv_percent" {
		t.Errorf("metric = %s, expected sv_percent", alert.Metric)
	}
}

func TestEvaluatePerformanceDecline(t *testing.T) {
	m := healthyMetrics()
	m.CPI = 0.85
	m.SPI = 0.80

	alerts := evaluate(m)
	var declines []Alert
	for _, a := range alerts {
		if a.Type == TypePerformanceDecline {
			declines = append(declines, a)
		}
	}
	if len(declines) != 2 {
		t.Fatalf("expected performance_decline for both indices, got %d alerts", len(declines))
	}
	// Rule evaluation order: CPI before SPI.
	if declines[0].Metric != "cpi" || declines[1].Metric != "spi" {
		t.Errorf("decline order = [%s, %s], expected [cpi, spi]", declines[0].Metric, declines[1].Metric)
	}
	for _, a := range declines {
		if a.Severity != SeverityWarning {
			t.Errorf("performance_decline severity = %s, expected %s", a.Severity, SeverityWarning)
		}
	}
}

func TestEvaluateBudgetExhaustion(t *testing.T) {
	m := healthyMetrics()
	m.PercentSpent = 104
	m.PercentCompleteActual = 88

	alert := findAlert(evaluate(m), TypeBudgetExhaustion)
	if alert == nil {
		t.Fatal("budget_exhaustion did not fire")
	}
	if alert.Severity != SeverityCritical {
		t.Errorf("severity = %s, expected %s", alert.Severity, SeverityCritical)
	}

	// Fully complete at full spend is not exhaustion.
	m.PercentCompleteActual = 100
	if findAlert(evaluate(m), TypeBudgetExhaustion) != nil {
		t.Error("budget_exhaustion fired for a complete project")
	}
}

func TestEvaluateMultipleAlerts(t *testing.T) {
	m := evm.Metrics{
		CostVariancePercent:   -25,
		ScheduleVarPercent:    -15,
		CPI:                   0.75,
		SPI:                   0.85,
		PercentSpent:          101,
		PercentCompleteActual: 76,
	}

	alerts := evaluate(m)
	if len(alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(alerts))
	}

	// Insertion order: cost, schedule, cpi decline, spi decline, exhaustion.
	expectedOrder := []string{
		TypeCostOverrun,
		TypeScheduleSlip,
		TypePerformanceDecline,
		TypePerformanceDecline,
		TypeBudgetExhaustion,
	}
	for i, a := range alerts {
		if a.Type != expectedOrder[i] {
			t.Errorf("alert[%d].Type = %s, expected %s", i, a.Type, expectedOrder[i])
		}
		if a.ID == "" {
			t.Errorf("alert[%d] missing identifier", i)
		}
		if a.CreatedAt.IsZero() {
			t.Errorf("alert[%d] missing timestamp", i)
		}
	}

	// Each alert carries a fresh identifier.
	seen := make(map[string]bool)
	for _, a := range alerts {
		if seen[a.ID] {
			t.Errorf("duplicate alert identifier %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestEvaluateTimestampFromClock(t *testing.T) {
	m := healthyMetrics()
	m.CPI = 0.5

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	alerts := Evaluate(m, evm.DefaultThresholds(), now)
	if len(alerts) == 0 {
		t.Fatal("expected at least one alert")
	}
	if !alerts[0].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, expected %v", alerts[0].CreatedAt, now)
	}
}
