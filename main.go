package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/cmd"
	"github.com/dwellingconnect/society-sync/internal/auth"
	"github.com/dwellingconnect/society-sync/internal/config"
	store "github.com/dwellingconnect/society-sync/internal/dynamodb"
	"github.com/dwellingconnect/society-sync/internal/feed"
	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/metrics"
	"github.com/dwellingconnect/society-sync/internal/models"
	"github.com/dwellingconnect/society-sync/internal/roles"
	"github.com/dwellingconnect/society-sync/internal/secrets"
	"github.com/dwellingconnect/society-sync/internal/server"
	"github.com/dwellingconnect/society-sync/internal/sync"
	"github.com/dwellingconnect/society-sync/internal/validate"
)

func main() {
	cmd.SetLambdaHandler(HandleRequest)
	cmd.SetRunSync(runSync)
	cmd.SetRunServe(runServe)
	cmd.SetRunHistory(runHistory)
	cmd.Execute()
}

// HandleRequest is the AWS Lambda handler.
func HandleRequest(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error) {
	if event.Source != "" || event.DetailType != "" {
		if !isScheduledEvent(event) {
			return models.NewErrorResponse(fmt.Errorf("unsupported event source")), nil
		}
	}
	if event.EffectiveAction() == "write" {
		return &models.LambdaResponse{
			StatusCode: 200,
			Message:    models.MsgWriteRequiresCredentials,
		}, nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return models.NewErrorResponse(err), nil
	}
	if err := config.Validate(cfg); err != nil {
		return models.NewErrorResponse(err), nil
	}

	result, err := runSync(ctx, cfg)
	if err != nil {
		return models.NewErrorResponse(err), nil
	}
	return models.NewSuccessResponse(result), nil
}

func isScheduledEvent(event models.LambdaEvent) bool {
	return event.Source == "aws.events" && event.DetailType == "Scheduled Event"
}

var runSync = func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error) {
	source, err := buildSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine := sync.NewEngine(source, cfg)
	attachRunStore(ctx, engine, cfg)

	result, err := engine.Sync(ctx)
	if err != nil {
		return nil, err
	}

	// Metrics are best-effort, like run history.
	if cfg.Metrics.Enabled {
		emitMetrics(ctx, cfg, result)
	}
	return result, nil
}

var runServe = func(ctx context.Context, cfg *config.Config) error {
	source, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}

	engine := sync.NewEngine(source, cfg)
	attachRunStore(ctx, engine, cfg)

	validator := validate.NewValidator(source, cfg.Validator)

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = secrets.ResolveSecretValue(cfg.Auth.JWTSecretName, "")
		if err != nil {
			return fmt.Errorf("jwt secret: %w", err)
		}
	}
	verifier := auth.NewJWTVerifier(jwtSecret)

	var rolesSvc *roles.Service
	if cfg.Database.Enabled {
		roleStore, storeErr := roles.NewPostgresStore(ctx, cfg.Database.URL)
		if storeErr != nil {
			return fmt.Errorf("role store: %w", storeErr)
		}
		defer roleStore.Close()
		rolesSvc = roles.NewService(roleStore)
		logrus.Info("✅ Role management enabled (Postgres)")
	}

	srv := server.NewServer(cfg.HTTP, engine, validator, rolesSvc, verifier)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logrus.WithField("signal", sig.String()).Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var runHistory = func(ctx context.Context, cfg *config.Config, limit int, latest bool) error {
	if !cfg.DynamoDB.Enabled {
		return fmt.Errorf("run history requires dynamodb.enabled")
	}
	runStore, err := store.NewStore(ctx, cfg.DynamoDB)
	if err != nil {
		return fmt.Errorf("run store: %w", err)
	}

	runs, err := fetchRunHistory(ctx, runStore, cfg.Society.ID, limit, latest)
	if err != nil {
		return err
	}
	printRunHistory(runs)
	return nil
}

func fetchRunHistory(ctx context.Context, runStore interfaces.RunStore, society string, limit int, latest bool) ([]models.SyncRunRecord, error) {
	if latest {
		run, err := runStore.GetLatestRun(ctx, society)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, nil
		}
		return []models.SyncRunRecord{*run}, nil
	}
	return runStore.ListRuns(ctx, society, limit)
}

func printRunHistory(runs []models.SyncRunRecord) {
	if len(runs) == 0 {
		logrus.Info("🗂 Run history: (none)")
		return
	}
	logrus.Infof("🗂 Run history (%d):", len(runs))
	for i, r := range runs {
		logrus.Infof("  %d. %s %s members=%d bills=%d skipped=%d errors=%d",
			i+1, r.StartTime.Format(time.RFC3339), r.RunID,
			r.MembersParsed, r.BillsSynthesized, r.RowsSkipped, r.ErrorCount)
	}
}

func buildSource(ctx context.Context, cfg *config.Config) (interfaces.FeedSource, error) {
	if cfg.Sheets.Enabled {
		creds, err := secrets.ResolveSecretValue(cfg.Sheets.CredentialsSecret, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets credentials: %w", err)
		}
		return feed.NewSheetsSource(ctx, []byte(creds), cfg.Sheets.SpreadsheetID, cfg.Sheets.ReadRange)
	}
	return feed.NewHTTPSource(cfg.Feed.CSVURL, time.Duration(cfg.Feed.TimeoutSeconds)*time.Second)
}

// attachRunStore enables run history when DynamoDB is configured. Init
// failure disables history but never blocks the sync.
func attachRunStore(ctx context.Context, engine *sync.Engine, cfg *config.Config) {
	if !cfg.DynamoDB.Enabled {
		return
	}
	runStore, err := store.NewStore(ctx, cfg.DynamoDB)
	if err != nil {
		logrus.WithError(err).Warn("⚠ DynamoDB store init failed, run history disabled")
		return
	}
	engine.SetRunStore(runStore)
	logrus.WithFields(logrus.Fields{
		"table":    cfg.DynamoDB.TableName,
		"region":   cfg.DynamoDB.Region,
		"ttl_days": cfg.DynamoDB.TTLDays,
	}).Info("✅ Run history enabled (DynamoDB)")
}

func emitMetrics(ctx context.Context, cfg *config.Config, result *models.SyncResult) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.DynamoDB.Region))
	if err != nil {
		logrus.WithError(err).Warn("⚠ Could not load AWS config for metrics")
		return
	}
	emitter := metrics.NewEmitter(awsCfg, cfg.Metrics.Namespace)
	if err := emitter.EmitSummary(ctx, result.Summary, result.Errors); err != nil {
		logrus.WithError(err).Warn("⚠ Could not publish sync metrics")
	}
}
