package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment variables, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("society.id", "default")
	v.SetDefault("feed.timeout_seconds", 10)
	v.SetDefault("sheets.enabled", false)
	v.SetDefault("sheets.read_range", "A:Z")
	v.SetDefault("billing.default_amount", 5000)
	v.SetDefault("validator.rate_limit", 5)
	v.SetDefault("validator.rate_window_seconds", 60)
	v.SetDefault("validator.cache_ttl_minutes", 5)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("database.enabled", false)
	v.SetDefault("dynamodb.enabled", false)
	v.SetDefault("dynamodb.table_name", "sync-run-history")
	v.SetDefault("dynamodb.region", "ap-south-1")
	v.SetDefault("dynamodb.ttl_days", 90)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "SocietySync")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("society.id", "SOCIETY_ID")
	_ = v.BindEnv("society.name", "SOCIETY_NAME")
	_ = v.BindEnv("feed.csv_url", "FEED_CSV_URL")
	_ = v.BindEnv("feed.timeout_seconds", "FEED_TIMEOUT_SECONDS")
	_ = v.BindEnv("sheets.enabled", "SHEETS_ENABLED")
	_ = v.BindEnv("sheets.spreadsheet_id", "SHEETS_SPREADSHEET_ID")
	_ = v.BindEnv("sheets.read_range", "SHEETS_READ_RANGE")
	_ = v.BindEnv("sheets.credentials_file", "SHEETS_CREDENTIALS_FILE")
	_ = v.BindEnv("sheets.credentials_secret", "SHEETS_CREDENTIALS_SECRET")
	_ = v.BindEnv("billing.default_amount", "BILLING_DEFAULT_AMOUNT")
	_ = v.BindEnv("validator.rate_limit", "VALIDATOR_RATE_LIMIT")
	_ = v.BindEnv("validator.rate_window_seconds", "VALIDATOR_RATE_WINDOW_SECONDS")
	_ = v.BindEnv("validator.cache_ttl_minutes", "VALIDATOR_CACHE_TTL_MINUTES")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")
	_ = v.BindEnv("http.allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	_ = v.BindEnv("auth.jwt_secret_name", "AUTH_JWT_SECRET_NAME")
	_ = v.BindEnv("database.enabled", "DATABASE_ENABLED")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("dynamodb.enabled", "DYNAMODB_ENABLED")
	_ = v.BindEnv("dynamodb.table_name", "DYNAMODB_TABLE_NAME")
	_ = v.BindEnv("dynamodb.region", "DYNAMODB_REGION")
	_ = v.BindEnv("dynamodb.endpoint", "DYNAMODB_ENDPOINT")
	_ = v.BindEnv("dynamodb.ttl_days", "DYNAMODB_TTL_DAYS")
	_ = v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	_ = v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Explicitly map values to avoid tag mismatch issues.
	cfg.Society.ID = v.GetString("society.id")
	cfg.Society.Name = v.GetString("society.name")

	cfg.Feed.CSVURL = v.GetString("feed.csv_url")
	cfg.Feed.TimeoutSeconds = v.GetInt("feed.timeout_seconds")

	cfg.Sheets.Enabled = v.GetBool("sheets.enabled")
	cfg.Sheets.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	cfg.Sheets.ReadRange = v.GetString("sheets.read_range")
	cfg.Sheets.CredentialsFile = v.GetString("sheets.credentials_file")
	cfg.Sheets.CredentialsSecret = v.GetString("sheets.credentials_secret")

	cfg.Billing.DefaultAmount = v.GetFloat64("billing.default_amount")

	cfg.Validator.RateLimit = v.GetInt("validator.rate_limit")
	cfg.Validator.RateWindowSeconds = v.GetInt("validator.rate_window_seconds")
	cfg.Validator.CacheTTLMinutes = v.GetInt("validator.cache_ttl_minutes")

	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.AllowedOrigins = splitOrigins(v.GetStringSlice("http.allowed_origins"))

	cfg.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	cfg.Auth.JWTSecretName = v.GetString("auth.jwt_secret_name")

	cfg.Database.Enabled = v.GetBool("database.enabled")
	cfg.Database.URL = v.GetString("database.url")

	cfg.DynamoDB.Enabled = v.GetBool("dynamodb.enabled")
	cfg.DynamoDB.TableName = v.GetString("dynamodb.table_name")
	cfg.DynamoDB.Region = v.GetString("dynamodb.region")
	cfg.DynamoDB.Endpoint = v.GetString("dynamodb.endpoint")
	cfg.DynamoDB.TTLDays = v.GetInt("dynamodb.ttl_days")

	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Namespace = v.GetString("metrics.namespace")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}

// splitOrigins tolerates a single comma-separated value, which is how
// the ALLOWED_ORIGINS environment variable arrives.
func splitOrigins(values []string) []string {
	var origins []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				origins = append(origins, part)
			}
		}
	}
	return origins
}
