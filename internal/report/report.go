// Package report assembles the full evaluation for each configured project:
// metrics, forecast scenarios, and alerts.
package report

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/buildtrack/evm-engine/internal/alerts"
	"github.com/buildtrack/evm-engine/internal/config"
	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/internal/forecast"
)

// Report holds the complete evaluation result for one project.
type Report struct {
	Project   string             `json:"project"`
	Metrics   evm.Metrics        `json:"metrics"`
	Forecasts forecast.Scenarios `json:"forecasts"`
	Alerts    []alerts.Alert     `json:"alerts"`
}

// Build processes every project in the configuration against the wall clock.
func Build(logger *zap.Logger, conf config.Configuration) ([]Report, error) {
	return BuildAt(logger, conf, time.Now())
}

// BuildAt is Build with an injectable clock for deterministic data-currency
// classification and alert timestamps.
func BuildAt(logger *zap.Logger, conf config.Configuration, now time.Time) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	thresholds := conf.Thresholds.Thresholds()

	var results []Report
	for _, project := range conf.Projects {
		statusDate, dates, err := project.Dates()
		if err != nil {
			return results, err
		}

		metrics, err := evm.ComputeAt(project.Facts(), thresholds, statusDate, now, conf.FreshnessWindowDays)
		if err != nil {
			return results, fmt.Errorf("project %s: %w", project.Name, err)
		}

		result := Report{
			Project:   project.Name,
			Metrics:   metrics,
			Forecasts: forecast.Build(metrics, dates, project.ManagementEstimate),
			Alerts:    alerts.Evaluate(metrics, thresholds, now),
		}

		logger.Debug(fmt.Sprintf("evaluated project %s", project.Name),
			zap.String("op", "report.BuildAt"),
			zap.String("overall_status", string(metrics.OverallStatus)),
			zap.Int("alerts", len(result.Alerts)),
		)

		results = append(results, result)
	}

	return results, nil
}
