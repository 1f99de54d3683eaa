package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plotcast/internal/charts"
	"plotcast/internal/logger"
	"plotcast/internal/models"
)

var (
	outputFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "local-runner [input.json]",
	Short: "Render a chart from a JSON request file to a local PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
	// Errors are reported once, by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "out.png", "output PNG location")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "debug", "log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	zlog, err := logger.New(logLevel, "console")
	if err != nil {
		return err
	}
	defer zlog.Sync()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var req models.RenderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse input JSON: %w", err)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	png, err := charts.NewRenderer(zlog).Render(req.Graph)
	if err != nil {
		return fmt.Errorf("failed to generate chart: %w", err)
	}

	if err := os.WriteFile(outputFile, png, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	zlog.Info("chart written",
		zap.String("output", outputFile),
		zap.Int("bytes", len(png)))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
