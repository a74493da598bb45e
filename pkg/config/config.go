package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server (serve mode)
	Port string
	Env  string // development, staging, production

	// Analysis parameters
	Analysis AnalysisConfig

	// Sectors under comparison
	Sectors []SectorConfig

	// External APIs
	Yahoo YahooConfig

	// Output
	OutputDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// AnalysisConfig holds the numerical parameters of the analysis
type AnalysisConfig struct {
	StartDate time.Time
	EndDate   time.Time

	// RiskFreeRatePerPeriod is the per-quarter risk-free rate as a decimal
	// (0.00125 = 0.125% per quarter, 0.5% annually).
	RiskFreeRatePerPeriod float64

	// PeriodsPerYear is the annualization factor (4 for quarterly data).
	PeriodsPerYear int

	// CAGRYears is the fixed horizon for CAGR. It is a configuration value,
	// NOT derived from the filtered series: data gaps shrink the sample,
	// not the stated 10-year window.
	CAGRYears float64

	// StartValue is the notional invested at period 0 when reconstructing
	// a price path from returns.
	StartValue float64
}

// SectorConfig describes one energy sub-sector basket
type SectorConfig struct {
	Name    string
	Tickers []string // individual equities
	ETF     string   // sector benchmark ETF
	Color   string   // chart color (hex)
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL string
	// RequestsPerSecond limits outbound calls (Yahoo throttles aggressively)
	RequestsPerSecond float64
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Analysis: AnalysisConfig{
			StartDate:             getEnvAsDate("ANALYSIS_START", "2015-01-01"),
			EndDate:               getEnvAsDate("ANALYSIS_END", "2024-12-31"),
			RiskFreeRatePerPeriod: getEnvAsFloat("RISK_FREE_RATE_PER_PERIOD", 0.00125),
			PeriodsPerYear:        getEnvAsInt("PERIODS_PER_YEAR", 4),
			CAGRYears:             getEnvAsFloat("CAGR_YEARS", 10),
			StartValue:            getEnvAsFloat("START_VALUE", 100),
		},

		Sectors: []SectorConfig{
			{
				Name:    "nuclear",
				Tickers: getEnvAsList("NUCLEAR_TICKERS", []string{"CCJ", "BWXT", "LEU", "UEC", "DNN"}),
				ETF:     getEnv("NUCLEAR_ETF", "URA"),
				Color:   getEnv("NUCLEAR_COLOR", "#5470c6"),
			},
			{
				Name:    "fossil",
				Tickers: getEnvAsList("FOSSIL_TICKERS", []string{"XOM", "CVX", "COP", "SLB", "EOG"}),
				ETF:     getEnv("FOSSIL_ETF", "XLE"),
				Color:   getEnv("FOSSIL_COLOR", "#91cc75"),
			},
			{
				Name:    "renewables",
				Tickers: getEnvAsList("RENEWABLES_TICKERS", []string{"FSLR", "ENPH", "NEE", "BEP", "ORA"}),
				ETF:     getEnv("RENEWABLES_ETF", "ICLN"),
				Color:   getEnv("RENEWABLES_COLOR", "#fac858"),
			},
		},

		Yahoo: YahooConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestsPerSecond: getEnvAsFloat("YAHOO_RPS", 2),
		},

		OutputDir: getEnv("OUTPUT_DIR", "out"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if !c.Analysis.EndDate.After(c.Analysis.StartDate) {
		return fmt.Errorf("ANALYSIS_END must be after ANALYSIS_START")
	}

	if c.Analysis.PeriodsPerYear <= 0 {
		return fmt.Errorf("PERIODS_PER_YEAR must be positive")
	}

	if c.Analysis.CAGRYears <= 0 {
		return fmt.Errorf("CAGR_YEARS must be positive")
	}

	if len(c.Sectors) == 0 {
		return fmt.Errorf("at least one sector is required")
	}

	for _, s := range c.Sectors {
		if s.Name == "" {
			return fmt.Errorf("sector name is required")
		}
		if len(s.Tickers) == 0 {
			return fmt.Errorf("sector %s has no tickers", s.Name)
		}
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDate(key string, defaultValue string) time.Time {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	date, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		date, _ = time.Parse("2006-01-02", defaultValue)
	}

	return date
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			list = append(list, p)
		}
	}

	if len(list) == 0 {
		return defaultValue
	}

	return list
}
