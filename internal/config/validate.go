package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures configuration is complete and well-formed.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireNonEmpty := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	requireURL := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			return
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("%s must be a valid URL", field))
		}
	}

	if cfg.Sheets.Enabled {
		requireNonEmpty(cfg.Sheets.SpreadsheetID, "sheets.spreadsheet_id")
		if cfg.IsLambda {
			requireNonEmpty(cfg.Sheets.CredentialsSecret, "sheets.credentials_secret")
		} else {
			requireNonEmpty(cfg.Sheets.CredentialsFile, "sheets.credentials_file")
		}
	} else {
		requireURL(cfg.Feed.CSVURL, "feed.csv_url")
	}

	if cfg.Feed.TimeoutSeconds <= 0 {
		errs = append(errs, "feed.timeout_seconds must be positive")
	}
	if cfg.Billing.DefaultAmount <= 0 {
		errs = append(errs, "billing.default_amount must be positive")
	}
	if cfg.Validator.RateLimit <= 0 {
		errs = append(errs, "validator.rate_limit must be positive")
	}
	if cfg.Validator.RateWindowSeconds <= 0 {
		errs = append(errs, "validator.rate_window_seconds must be positive")
	}
	if cfg.Validator.CacheTTLMinutes <= 0 {
		errs = append(errs, "validator.cache_ttl_minutes must be positive")
	}

	if cfg.Database.Enabled {
		requireNonEmpty(cfg.Database.URL, "database.url")
	}

	if cfg.DynamoDB.Enabled {
		requireNonEmpty(cfg.DynamoDB.TableName, "dynamodb.table_name")
		requireNonEmpty(cfg.DynamoDB.Region, "dynamodb.region")
		if cfg.DynamoDB.TTLDays <= 0 {
			errs = append(errs, "dynamodb.ttl_days must be positive")
		}
	}

	if cfg.Metrics.Enabled {
		requireNonEmpty(cfg.Metrics.Namespace, "metrics.namespace")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ValidateServe checks the additional settings the HTTP server needs.
func ValidateServe(cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	var errs []string
	if cfg.HTTP.Addr == "" {
		errs = append(errs, "http.addr is required")
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		errs = append(errs, "http.allowed_origins is required")
	}
	if cfg.Auth.JWTSecret == "" && cfg.Auth.JWTSecretName == "" {
		errs = append(errs, "auth.jwt_secret or auth.jwt_secret_name is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
