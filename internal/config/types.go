package config

// Config holds all configuration for the service.
type Config struct {
	Society   SocietyConfig   `json:"society"`
	Feed      FeedConfig      `json:"feed"`
	Sheets    SheetsConfig    `json:"sheets"`
	Billing   BillingConfig   `json:"billing"`
	Validator ValidatorConfig `json:"validator"`
	HTTP      HTTPConfig      `json:"http"`
	Auth      AuthConfig      `json:"auth"`
	Database  DatabaseConfig  `json:"database"`
	DynamoDB  DynamoDBConfig  `json:"dynamodb"`
	Metrics   MetricsConfig   `json:"metrics"`
	Log       LogConfig       `json:"log"`
	IsLambda  bool            `json:"-"`
}

// SocietyConfig identifies the housing society this instance serves.
type SocietyConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FeedConfig holds settings for the published CSV register export.
type FeedConfig struct {
	CSVURL         string `json:"csv_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SheetsConfig holds Google Sheets API settings. When enabled, the
// sync reads through the API instead of the public CSV export.
type SheetsConfig struct {
	Enabled           bool   `json:"enabled"`
	SpreadsheetID     string `json:"spreadsheet_id"`
	ReadRange         string `json:"read_range"`
	CredentialsFile   string `json:"credentials_file,omitempty"`
	CredentialsSecret string `json:"credentials_secret,omitempty"`
}

// BillingConfig holds bill synthesis settings.
type BillingConfig struct {
	DefaultAmount float64 `json:"default_amount"`
}

// ValidatorConfig holds email validator settings.
type ValidatorConfig struct {
	RateLimit         int `json:"rate_limit"`
	RateWindowSeconds int `json:"rate_window_seconds"`
	CacheTTLMinutes   int `json:"cache_ttl_minutes"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	JWTSecret     string `json:"-"`
	JWTSecretName string `json:"jwt_secret_name,omitempty"`
}

// DatabaseConfig holds Postgres settings for the role store.
type DatabaseConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"-"`
}

// DynamoDBConfig holds DynamoDB settings for sync run history.
type DynamoDBConfig struct {
	Enabled   bool   `json:"enabled"`
	TableName string `json:"table_name"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint,omitempty"`
	TTLDays   int    `json:"ttl_days"`
}

// MetricsConfig holds CloudWatch metrics settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}
