// Package constants provides shared constants for the mortgage-planner application.
package constants

// DateTimeLayout is the month-granularity date format used for history series
// and CSV output labels.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// SearchHorizonMonths is the ceiling for the months-to-target search (50 years)
	SearchHorizonMonths = 600

	// ProjectionHorizonMonths is the fixed horizon of the monthly projection table
	ProjectionHorizonMonths = 120

	// RecommendedSavingsHorizonMonths is the fixed horizon used when back-solving
	// the recommended monthly contribution
	RecommendedSavingsHorizonMonths = 24

	// InfeasibleMonths signals that a savings target cannot be reached within
	// SearchHorizonMonths; it is never a valid duration
	InfeasibleMonths = -1

	// FullPricePercent is the target for saving the entire apartment price
	FullPricePercent = 100.0

	// CurrencyTolerance is the tolerance for ruble comparisons
	CurrencyTolerance = 0.5
)

// Default calculator inputs used when no configuration or live data is available.
const (
	DefaultApartmentPrice      = 10_000_000.0
	DefaultPriceGrowthRate     = 8.0
	DefaultSalary              = 150_000.0
	DefaultSalaryGrowthRate    = 5.0
	DefaultMonthlySavings      = 50_000.0
	DefaultInitialSavings      = 0.0
	DefaultSavingsInterestRate = 10.0
	DefaultMortgageRate        = 18.0
	DefaultDownPaymentPercent  = 20.0
	DefaultMortgageTermYears   = 20

	// DefaultApartmentArea converts a per-square-meter market price into a
	// default apartment price suggestion
	DefaultApartmentArea = 38.0
)

// Static feed fallbacks, used whenever a live fetch or parse fails.
const (
	// FallbackPricePerSqmNew is the new-construction price per square meter
	FallbackPricePerSqmNew = 268_000.0

	// FallbackPricePerSqmResale is the resale price per square meter
	FallbackPricePerSqmResale = 255_000.0

	// FallbackKeyRate is the central-bank key rate in percent
	FallbackKeyRate = 16.0

	// FallbackInflationRate is the annual inflation rate in percent
	FallbackInflationRate = 8.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server and feed defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMarketFeedURL is the default endpoint for price-per-square-meter data
	DefaultMarketFeedURL = "https://www.irn.ru/gd/"

	// DefaultRateFeedURL is the default endpoint for central-bank indicators
	DefaultRateFeedURL = "https://www.cbr.ru/key-indicators/"

	// DefaultFeedTimeoutSeconds bounds each outbound feed request
	DefaultFeedTimeoutSeconds = 10

	// DefaultFeedCacheTTLSeconds is how long cached feed responses stay fresh
	DefaultFeedCacheTTLSeconds = 3600
)
