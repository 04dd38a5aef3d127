package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/log"
	"github.com/dwellingconnect/society-sync/internal/models"
)

var (
	cfgFile       string
	flagCSVURL    string
	flagSocietyID string
	flagAddr      string
	flagLogLevel  string
	flagLogFormat string

	flagHistoryLimit  int
	flagHistoryLatest bool

	lambdaHandler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)
	runSync       func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error)
	runServe      func(ctx context.Context, cfg *config.Config) error
	runHistory    func(ctx context.Context, cfg *config.Config, limit int, latest bool) error
)

// SetLambdaHandler registers the Lambda handler used in Lambda mode.
func SetLambdaHandler(handler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)) {
	lambdaHandler = handler
}

// SetRunSync registers the sync runner used by the CLI.
func SetRunSync(handler func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error)) {
	runSync = handler
}

// SetRunServe registers the HTTP server runner used by the serve command.
func SetRunServe(handler func(ctx context.Context, cfg *config.Config) error) {
	runServe = handler
}

// SetRunHistory registers the run-history printer used by the history
// command.
func SetRunHistory(handler func(ctx context.Context, cfg *config.Config, limit int, latest bool) error) {
	runHistory = handler
}

var rootCmd = &cobra.Command{
	Use:   "society-sync",
	Short: "Sync the housing society member register into members and maintenance bills",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}

		configureLogging(cfg)

		if runSync == nil {
			return fmt.Errorf("sync engine is not configured")
		}

		result, err := runSync(context.Background(), cfg)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"run_id":      result.RunID,
			"duration_ms": result.DurationMs,
		}).Info(result.Summary.String())

		printMemberList(result.Members)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for member validation, sync, and role management",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}
		if err := config.ValidateServe(cfg); err != nil {
			return err
		}

		configureLogging(cfg)

		if runServe == nil {
			return fmt.Errorf("server is not configured")
		}
		return runServe(cmd.Context(), cfg)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs recorded for the society",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)
		configureLogging(cfg)

		if runHistory == nil {
			return fmt.Errorf("run history is not configured")
		}
		return runHistory(cmd.Context(), cfg, flagHistoryLimit, flagHistoryLatest)
	},
}

// Execute runs the CLI or Lambda handler depending on environment.
func Execute() {
	if isLambda() {
		if lambdaHandler == nil {
			logrus.Fatal("lambda handler is not configured")
		}
		lambda.Start(lambdaHandler)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func configureLogging(cfg *config.Config) {
	logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.Level)
	logrus.SetOutput(logger.Out)
}

func printMemberList(members []models.Member) {
	if len(members) == 0 {
		logrus.Info("🏠 Members: (none)")
		return
	}
	logrus.Infof("🏠 Members (%d):", len(members))
	for i, m := range members {
		logrus.Infof("  %d. %s %s (%s, flat %s, %s)", i+1, m.MemberID, m.Name, m.Email, m.FlatNo, m.MaintenanceStatus)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagCSVURL, "csv-url", "", "Published CSV export URL of the member register")
	rootCmd.PersistentFlags().StringVar(&flagSocietyID, "society", "", "Society identifier for run history")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, or pretty")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address")

	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryLatest, "latest", false, "Show only the most recent run")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

func isLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func overrideConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("csv-url") {
		cfg.Feed.CSVURL = flagCSVURL
	}
	if cmd.Flags().Changed("society") {
		cfg.Society.ID = flagSocietyID
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr = flagAddr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
}
