package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/config"
	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/internal/feeds/cbr"
	"github.com/avdeyev/mortgage-planner/internal/feeds/market"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/avdeyev/mortgage-planner/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// applyLiveDefaults fills unset inputs from the live feeds; every feed failure
// degrades to static figures inside the clients, so this cannot fail.
func applyLiveDefaults(logger *zap.Logger, conf *config.Configuration) {
	timeout := time.Duration(conf.Feeds.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
	defer cancel()

	if conf.Inputs.ApartmentPrice == 0 {
		snapshot := market.NewClient(logger, conf.Feeds.MarketURL, timeout, nil).
			Snapshot(ctx, market.PropertyAll, market.PeriodYear)
		conf.Inputs.ApartmentPrice = snapshot.NewBuilding * constants.DefaultApartmentArea
		logger.Info("apartment price pre-populated from market feed",
			zap.String("op", "main"),
			zap.Float64("pricePerSqm", snapshot.NewBuilding),
			zap.Bool("fallback", snapshot.Fallback),
		)
	}

	if conf.Inputs.SavingsInterestRate == 0 {
		rates := cbr.NewClient(logger, conf.Feeds.RateURL, timeout, nil).Rates(ctx)
		conf.Inputs.SavingsInterestRate = rates.KeyRate
		if conf.Inputs.PriceGrowthRate == 0 {
			conf.Inputs.PriceGrowthRate = rates.InflationRate
		}
		logger.Info("rates pre-populated from reference rate feed",
			zap.String("op", "main"),
			zap.Float64("keyRate", rates.KeyRate),
			zap.Bool("fallback", rates.Fallback),
		)
	}
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	liveDefaults := flag.Bool("live-defaults", false, "fill unset inputs from the live data feeds")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Optionally pre-populate unset inputs from the live feeds, then fill the
	// remaining gaps with static defaults.
	if *liveDefaults || conf.Feeds.Enabled {
		applyLiveDefaults(logger, conf)
	}
	conf.ApplyInputDefaults()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the projection.
	results := engine.Calculate(logger, conf.Inputs)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
