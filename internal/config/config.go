// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/internal/forecast"
	"github.com/buildtrack/evm-engine/pkg/constants"
	"github.com/buildtrack/evm-engine/pkg/datetime"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for evm-engine.
type Configuration struct {
	Thresholds          ThresholdsConfig
	FreshnessWindowDays int
	Projects            []Project
	Logging             LoggingConfig `yaml:"logging,omitempty"`
	Output              OutputConfig  `yaml:"output,omitempty"`
}

// ThresholdsConfig holds the classification bands and alert triggers as they
// appear in the config file. Zero values fall back to the documented
// defaults when converted with Thresholds().
type ThresholdsConfig struct {
	CPI                  evm.Bands
	SPI                  evm.Bands
	AlertVariancePercent float64
	AlertIndexThreshold  float64
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Project holds the budget and schedule facts for one project as of its
// status date.
type Project struct {
	Name                string
	StatusDate          string
	StartDate           string
	PlannedFinishDate   string
	BudgetAtCompletion  float64
	PlannedValue        float64
	EarnedValue         float64
	ActualCost          float64
	PlannedDurationDays float64
	ActualDurationDays  float64
	ManagementEstimate  *forecast.ManagementEstimate
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.FreshnessWindowDays <= 0 {
		configuration.FreshnessWindowDays = constants.DefaultFreshnessWindowDays
	}

	return &configuration, nil
}

// Thresholds converts the file representation into the engine thresholds,
// filling any unset band or trigger from the defaults.
func (tc ThresholdsConfig) Thresholds() evm.Thresholds {
	t := evm.DefaultThresholds()
	if tc.CPI != (evm.Bands{}) {
		t.CPI = tc.CPI
	}
	if tc.SPI != (evm.Bands{}) {
		t.SPI = tc.SPI
	}
	if tc.AlertVariancePercent > 0 {
		t.AlertVariancePercent = tc.AlertVariancePercent
	}
	if tc.AlertIndexThreshold > 0 {
		t.AlertIndexThreshold = tc.AlertIndexThreshold
	}
	return t
}

// Facts converts the project entry into the calculation inputs.
func (p Project) Facts() evm.BudgetFacts {
	return evm.BudgetFacts{
		BudgetAtCompletion:  p.BudgetAtCompletion,
		PlannedValue:        p.PlannedValue,
		EarnedValue:         p.EarnedValue,
		ActualCost:          p.ActualCost,
		PlannedDurationDays: p.PlannedDurationDays,
		ActualDurationDays:  p.ActualDurationDays,
	}
}

// Dates parses the project's schedule dates.
func (p Project) Dates() (statusDate time.Time, dates forecast.ProjectDates, err error) {
	statusDate, err = time.Parse(DateLayout, p.StatusDate)
	if err != nil {
		return statusDate, dates, fmt.Errorf("project %s: invalid statusDate: %w", p.Name, err)
	}
	dates.StartDate, err = time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return statusDate, dates, fmt.Errorf("project %s: invalid startDate: %w", p.Name, err)
	}
	dates.PlannedFinishDate, err = time.Parse(DateLayout, p.PlannedFinishDate)
	if err != nil {
		return statusDate, dates, fmt.Errorf("project %s: invalid plannedFinishDate: %w", p.Name, err)
	}
	return statusDate, dates, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard input errors surface later, at calculation time.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Projects) == 0 {
		warnings = append(warnings, "configuration contains no projects")
	}

	for _, p := range c.Projects {
		if p.Name == "" {
			warnings = append(warnings, "a project entry has no name")
		}
		if p.BudgetAtCompletion == 0 {
			warnings = append(warnings, fmt.Sprintf("Project '%s' has a zero budget at completion; most metrics will be undefined", p.Name))
		}
		if p.EarnedValue > p.BudgetAtCompletion {
			warnings = append(warnings, fmt.Sprintf("Project '%s' has earned value above its budget at completion (%.2f > %.2f)",
				p.Name, p.EarnedValue, p.BudgetAtCompletion))
		}
		if p.StatusDate != "" && p.PlannedFinishDate != "" {
			after, err := datetime.DateBeforeDate(p.PlannedFinishDate, p.StatusDate)
			if err == nil && after {
				warnings = append(warnings, fmt.Sprintf("Project '%s' status date is after its planned finish date (%s > %s)",
					p.Name, p.StatusDate, p.PlannedFinishDate))
			}
		}
	}

	return warnings
}
