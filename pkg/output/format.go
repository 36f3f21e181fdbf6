// Package output provides utilities for formatting and displaying evaluation
// reports.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/buildtrack/evm-engine/internal/report"
	"github.com/buildtrack/evm-engine/pkg/mathutil"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []report.Report) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		m := result.Metrics
		fmt.Printf("--- Results for project %s ---\n", result.Project)
		fmt.Printf("Status date: %s (%s)\n", m.StatusDate.Format("2006-01-02"), m.DataCurrency)
		fmt.Printf("Overall: %s (cost %s, schedule %s)\n\n", m.OverallStatus, m.CostStatus, m.ScheduleStatus)

		fmt.Printf("Metric            | Value\n")
		fmt.Printf("______            | _____\n")
		_, _ = p.Printf("BAC               | $%.2f\n", m.BudgetAtCompletion)
		_, _ = p.Printf("PV                | $%.2f\n", m.PlannedValue)
		_, _ = p.Printf("EV                | $%.2f\n", m.EarnedValue)
		_, _ = p.Printf("AC                | $%.2f\n", m.ActualCost)
		fmt.Printf("CV                | %s\n", moneyUSD(m.CostVariance))
		fmt.Printf("SV                | %s\n", moneyUSD(m.ScheduleVariance))
		fmt.Printf("CPI               | %s\n", index(m.CPI))
		fmt.Printf("SPI               | %s\n", index(m.SPI))
		fmt.Printf("CSI               | %s\n", index(m.CSI))
		fmt.Printf("EAC               | %s\n", moneyUSD(m.EAC))
		fmt.Printf("ETC               | %s\n", moneyUSD(m.ETC))
		fmt.Printf("VAC               | %s\n", moneyUSD(m.VAC))
		fmt.Printf("TCPI (BAC)        | %s\n", index(m.TCPIBudget))
		fmt.Printf("TCPI (EAC)        | %s\n", index(m.TCPIEstimate))
		fmt.Printf("%% complete (plan) | %s\n", percent(m.PercentCompletePlan))
		fmt.Printf("%% complete        | %s\n", percent(m.PercentCompleteActual))
		fmt.Printf("%% spent           | %s\n", percent(m.PercentSpent))

		fmt.Printf("\nForecast            | EAC         | Completion\n")
		for _, s := range scenarioRows(result) {
			fmt.Printf("%-19s | %-11s | %s\n", s[0], s[1], s[2])
		}

		if len(result.Alerts) > 0 {
			fmt.Printf("\nAlerts:\n")
			for _, a := range result.Alerts {
				fmt.Printf("  [%s] %s: %s\n", a.Severity, a.Title, a.Message)
			}
		}

		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per project.
func CsvFormat(results []report.Report) {
	fmt.Printf(`"project","status_date","cv","sv","cpi","spi","csi","eac","etc","vac","overall_status","data_currency","alerts"`)
	fmt.Printf("\n")
	for _, result := range results {
		m := result.Metrics
		alertTypes := make([]string, len(result.Alerts))
		for i, a := range result.Alerts {
			alertTypes[i] = a.Type
		}
		fmt.Printf(`"%s","%s","%s","%s","%s","%s","%s","%s","%s","%s","%s","%s","%s"`,
			result.Project,
			m.StatusDate.Format("2006-01-02"),
			money(m.CostVariance),
			money(m.ScheduleVariance),
			index(m.CPI),
			index(m.SPI),
			index(m.CSI),
			money(m.EAC),
			money(m.ETC),
			money(m.VAC),
			m.OverallStatus,
			m.DataCurrency,
			strings.Join(alertTypes, ";"),
		)
		fmt.Printf("\n")
	}
}

// JSONFormat outputs the full reports as indented JSON.
func JSONFormat(results []report.Report) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	fmt.Printf("%s\n", data)
	return nil
}

func scenarioRows(result report.Report) [][3]string {
	f := result.Forecasts
	rows := make([][3]string, 0, 4)
	for _, s := range []struct {
		method string
		eac    *float64
		date   *string
	}{
		{f.Original.Method, f.Original.EstimateAtCompletion, f.Original.CompletionDate},
		{f.CPIBased.Method, f.CPIBased.EstimateAtCompletion, f.CPIBased.CompletionDate},
		{f.SPIAdjusted.Method, f.SPIAdjusted.EstimateAtCompletion, f.SPIAdjusted.CompletionDate},
		{f.Management.Method, f.Management.EstimateAtCompletion, f.Management.CompletionDate},
	} {
		eac := "n/a"
		if s.eac != nil {
			eac = moneyUSD(*s.eac)
		}
		date := "n/a"
		if s.date != nil {
			date = *s.date
		}
		rows = append(rows, [3]string{s.method, eac, date})
	}
	return rows
}

// money renders a bare monetary quantity, using n/a for undefined values.
func money(val float64) string {
	if !mathutil.IsDefined(val) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", val)
}

// moneyUSD renders a monetary quantity with a currency symbol.
func moneyUSD(val float64) string {
	if !mathutil.IsDefined(val) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", val)
}

// index renders a performance index to three decimals.
func index(val float64) string {
	if !mathutil.IsDefined(val) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", val)
}

// percent renders a percentage to one decimal.
func percent(val float64) string {
	if !mathutil.IsDefined(val) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", val)
}
