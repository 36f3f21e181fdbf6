// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/buildtrack/evm-engine/internal/report"
)

// FindReport finds a project report by name in the results slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(results []report.Report, project string) *report.Report {
	for i := range results {
		if results[i].Project == project {
			return &results[i]
		}
	}
	return nil
}
