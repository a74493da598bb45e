package commands

import (
	"fmt"

	"github.com/wonny/helios/internal/analysis"
	"github.com/wonny/helios/internal/external/yahoo"
	"github.com/wonny/helios/pkg/config"
	"github.com/wonny/helios/pkg/httputil"
	"github.com/wonny/helios/pkg/logger"
)

// runtime bundles the wired components every command starts from
type runtime struct {
	cfg    *config.Config
	logger *logger.Logger
	runner *analysis.Runner
}

// newRuntime loads config and wires the price source and runner
// ⭐ SSOT: 컴포넌트 조립은 여기서만
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	httpClient := httputil.New(log).
		WithRateLimit(cfg.Yahoo.RequestsPerSecond, 1)

	source := yahoo.NewClient(cfg, httpClient, log)
	runner := analysis.NewRunner(source, cfg.Analysis, cfg.Sectors, log)

	return &runtime{cfg: cfg, logger: log, runner: runner}, nil
}
