// Package forecast derives the named estimate-at-completion scenarios for a
// computed metrics record.
//
// Completion dates are derived by adding the scenario's estimated duration to
// the project start date as calendar days; weekends and holidays are not
// excluded. A scenario whose underlying ratio is undefined carries null
// projection fields with the method label still populated.
package forecast

import (
	"time"

	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/pkg/constants"
	"github.com/buildtrack/evm-engine/pkg/datetime"
	"github.com/buildtrack/evm-engine/pkg/mathutil"
)

// Method labels for the four scenarios.
const (
	MethodOriginal   = "Original Budget"
	MethodCPI        = "CPI Projection"
	MethodCPIxSPI    = "CPIxSPI Projection"
	MethodManagement = "Management Estimate"
)

// ProjectDates carries the caller-supplied schedule context a forecast needs.
type ProjectDates struct {
	StartDate         time.Time
	PlannedFinishDate time.Time
}

// ManagementEstimate is an optional caller-supplied override scenario. It is
// passed through verbatim, never computed.
type ManagementEstimate struct {
	EstimateAtCompletion float64 `json:"estimate_at_completion" yaml:"estimateAtCompletion"`
	CompletionDate       string  `json:"completion_date" yaml:"completionDate"`
	Notes                string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Scenario is one named projection of final cost and completion date. Nil
// fields mean the projection could not be derived from the available data.
type Scenario struct {
	Method               string   `json:"method"`
	EstimateAtCompletion *float64 `json:"estimate_at_completion"`
	CompletionDate       *string  `json:"completion_date"`
	Notes                *string  `json:"notes"`
}

// Scenarios holds the four projections produced for every calculation.
type Scenarios struct {
	Original    Scenario `json:"original"`
	CPIBased    Scenario `json:"cpi_based"`
	SPIAdjusted Scenario `json:"spi_adjusted"`
	Management  Scenario `json:"management"`
}

// Build produces the four forecast scenarios for a metrics record. The
// SPI-adjusted scenario reuses the calculator's EAC as the single source of
// truth; it is never recomputed here.
func Build(m evm.Metrics, dates ProjectDates, override *ManagementEstimate) Scenarios {
	plannedFinish := dates.PlannedFinishDate.Format(constants.DateLayout)

	s := Scenarios{
		Original: Scenario{
			Method:               MethodOriginal,
			EstimateAtCompletion: scenarioValue(m.BudgetAtCompletion),
			CompletionDate:       &plannedFinish,
		},
		CPIBased: Scenario{
			Method:               MethodCPI,
			EstimateAtCompletion: scenarioValue(mathutil.SafeRatio(m.BudgetAtCompletion, m.CPI)),
			CompletionDate:       completionDate(dates.StartDate, m.EstimatedDurationDays),
		},
		SPIAdjusted: Scenario{
			Method:               MethodCPIxSPI,
			EstimateAtCompletion: scenarioValue(m.EAC),
			CompletionDate:       completionDate(dates.StartDate, m.EstimatedDurationDays),
		},
		Management: Scenario{
			Method: MethodManagement,
		},
	}

	if override != nil {
		s.Management.EstimateAtCompletion = scenarioValue(override.EstimateAtCompletion)
		if override.CompletionDate != "" {
			date := override.CompletionDate
			s.Management.CompletionDate = &date
		}
		if override.Notes != "" {
			notes := override.Notes
			s.Management.Notes = &notes
		}
	}

	return s
}

// scenarioValue converts a computed quantity into a scenario field, mapping
// undefined values to nil.
func scenarioValue(val float64) *float64 {
	if !mathutil.IsDefined(val) {
		return nil
	}
	return &val
}

// completionDate projects start forward by durationDays calendar days,
// returning nil when the duration is undefined.
func completionDate(start time.Time, durationDays float64) *string {
	if !mathutil.IsDefined(durationDays) {
		return nil
	}
	date := datetime.AddCalendarDays(start, durationDays).Format(constants.DateLayout)
	return &date
}
