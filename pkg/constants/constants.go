// Package constants provides shared constants for the evm-engine application.
package constants

// DateLayout is the format expected for all dates in config files and is also
// the output date format.
const DateLayout = "2006-01-02"

// Default classification bands for CPI and SPI. A band boundary is inclusive
// on the lower end; an index below the poor boundary is critical.
const (
	// DefaultExcellentThreshold is the lower bound of the excellent band.
	DefaultExcellentThreshold = 1.10

	// DefaultGoodThreshold is the lower bound of the good band.
	DefaultGoodThreshold = 1.00

	// DefaultFairThreshold is the lower bound of the fair band.
	DefaultFairThreshold = 0.95

	// DefaultPoorThreshold is the lower bound of the poor band.
	DefaultPoorThreshold = 0.90
)

// Alert trigger defaults
const (
	// DefaultAlertVariancePercent is the absolute variance percentage a
	// negative CV% or SV% must strictly exceed before an alert fires.
	DefaultAlertVariancePercent = 10.0

	// DefaultAlertIndexThreshold is the index value below which a
	// performance_decline alert fires.
	DefaultAlertIndexThreshold = 0.90
)

// Freshness constants
const (
	// DefaultFreshnessWindowDays is the window within which a status date is
	// considered current rather than stale.
	DefaultFreshnessWindowDays = 7
)

// Numeric constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// FloatTolerance is the tolerance for floating-point comparisons
	FloatTolerance = 1e-9

	// HoursPerDay is the number of hours in a calendar day
	HoursPerDay = 24
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// evaluation requests (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
