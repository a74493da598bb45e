package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/helios/internal/api"
	"github.com/wonny/helios/internal/api/handlers"
	"github.com/wonny/helios/internal/contracts"
	"github.com/wonny/helios/internal/report"
)

// serveCmd runs the analysis once and serves the result over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis and serve the report over HTTP",
	Long: `Runs the full sector analysis once, keeps the report and the
rendered charts in memory, and serves them:

  GET /health
  GET /api/report          JSON metrics per sector
  GET /api/charts          available chart names
  GET /api/charts/{name}   rendered PNG

Example:
  go run ./cmd/helios serve
  curl localhost:8089/api/report`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	result, err := rt.runner.Run(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	charts := renderCharts(rt, result)

	handler := handlers.NewReportHandler(result, charts, rt.logger)
	router := api.NewRouter(handler, rt.logger)
	server := api.New(rt.cfg, rt.logger, router)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan error, 1)
	go func() {
		done <- server.Start()
	}()

	PrintSuccess(fmt.Sprintf("Report server listening on :%s", rt.cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		return err
	case <-quit:
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	}
}

// renderCharts renders the chart set in memory; a chart that cannot be
// rendered is skipped with a warning, the server still starts
func renderCharts(rt *runtime, result *contracts.Report) map[string][]byte {
	charts := make(map[string][]byte)

	for _, sector := range result.Sectors {
		img, err := report.SectorPathChart(sector)
		if err != nil {
			rt.logger.WithError(err).WithField("sector", sector.Name).Warn("Sector chart skipped")
			continue
		}
		charts["sector_"+sector.Name] = img
	}

	if img, err := report.CombinedPathChart(result); err == nil {
		charts["combined"] = img
	} else {
		rt.logger.WithError(err).Warn("Combined chart skipped")
	}

	if img, err := report.MetricsBarChart(result); err == nil {
		charts["metrics"] = img
	} else {
		rt.logger.WithError(err).Warn("Metrics chart skipped")
	}

	return charts
}
