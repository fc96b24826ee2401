package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/gregtusar/stake/pkg/secrets"
	"github.com/gregtusar/stake/pkg/stake"
)

type Config struct {
	Stake     StakeConfig     `mapstructure:"stake"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	GCP       GCPConfig       `mapstructure:"gcp"`
}

type StakeConfig struct {
	Exchange     string `mapstructure:"exchange"`
	APIURL       string `mapstructure:"api_url"`
	WatchlistURL string `mapstructure:"watchlist_url"`

	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	OTP            string `mapstructure:"otp"`
	Token          string `mapstructure:"token"`
	RememberMeDays int    `mapstructure:"remember_me_days"`
	PlatformType   string `mapstructure:"platform_type"`

	Timeout        time.Duration `mapstructure:"timeout"`
	VerifyLookback int           `mapstructure:"verify_lookback"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

type RateLimitConfig struct {
	// RequestsPerSecond of 0 disables client-side throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type GCPConfig struct {
	ProjectID       string              `mapstructure:"project_id"`
	UseSecrets      bool                `mapstructure:"use_secrets"`
	CredentialsFile string              `mapstructure:"credentials_file"`
	SecretNames     secrets.SecretNames `mapstructure:"secret_names"`
}

// Load reads configuration from, in rising precedence: defaults, the config
// file and STAKE_* environment variables (a .env file is loaded first).
// Credentials held in GCP Secret Manager are fetched separately by
// LoadSecrets once the caller has built its logger.
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/stake")
	}

	v.SetEnvPrefix("STAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stake.exchange", stake.ExchangeNYSE)
	v.SetDefault("stake.api_url", "")
	v.SetDefault("stake.watchlist_url", "")
	v.SetDefault("stake.username", "")
	v.SetDefault("stake.password", "")
	v.SetDefault("stake.otp", "")
	v.SetDefault("stake.token", "")
	v.SetDefault("stake.remember_me_days", stake.DefaultRememberMeDays)
	v.SetDefault("stake.platform_type", stake.DefaultPlatformType)
	v.SetDefault("stake.timeout", "30s")
	v.SetDefault("stake.verify_lookback", stake.DefaultVerifyLookback)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	v.SetDefault("rate_limit.requests_per_second", 0)
	v.SetDefault("rate_limit.burst", 1)

	v.SetDefault("gcp.use_secrets", false)
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("gcp.credentials_file", "")

	secretNames := secrets.DefaultSecretNames()
	v.SetDefault("gcp.secret_names.username", secretNames.Username)
	v.SetDefault("gcp.secret_names.password", secretNames.Password)
	v.SetDefault("gcp.secret_names.otp", secretNames.OTP)
	v.SetDefault("gcp.secret_names.token", secretNames.Token)
}

// overrideFromEnv applies the short variable names the library itself reads.
func overrideFromEnv(config *Config) {
	if user := os.Getenv(stake.EnvUsername); user != "" {
		config.Stake.Username = user
	}
	if pass := os.Getenv(stake.EnvPassword); pass != "" {
		config.Stake.Password = pass
	}
	if otp := os.Getenv("STAKE_OTP"); otp != "" {
		config.Stake.OTP = otp
	}
	if token := os.Getenv(stake.EnvToken); token != "" {
		config.Stake.Token = token
	}
	if exchange := os.Getenv("STAKE_EXCHANGE"); exchange != "" {
		config.Stake.Exchange = exchange
	}

	if projectID := os.Getenv("GCP_PROJECT_ID"); projectID != "" {
		config.GCP.ProjectID = projectID
	}
	if useSecrets := os.Getenv("GCP_USE_SECRETS"); useSecrets == "true" {
		config.GCP.UseSecrets = true
	}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" && config.GCP.CredentialsFile == "" {
		config.GCP.CredentialsFile = creds
	}
}

// LoadSecrets fills credentials still unset from GCP Secret Manager. It is a
// no-op unless gcp.use_secrets and gcp.project_id are set.
func (c *Config) LoadSecrets(ctx context.Context, logger *logrus.Logger) error {
	if !c.GCP.UseSecrets || c.GCP.ProjectID == "" {
		return nil
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sm, err := secrets.NewGCPSecretManager(ctx, c.GCP.ProjectID, logger,
		secrets.CredentialsFileOption(c.GCP.CredentialsFile)...)
	if err != nil {
		return fmt.Errorf("error loading secrets from GCP: %w", err)
	}
	defer sm.Close()
	loadSecrets(ctx, c, sm, logger)
	return nil
}

type secretSource interface {
	GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string
}

// loadSecrets fills only the credentials that are still empty.
func loadSecrets(ctx context.Context, config *Config, sm secretSource, logger *logrus.Logger) {
	names := config.GCP.SecretNames
	if config.Stake.Token == "" {
		config.Stake.Token = sm.GetSecretWithDefault(ctx, names.Token, "")
	}
	if config.Stake.Token == "" {
		if config.Stake.Username == "" {
			config.Stake.Username = sm.GetSecretWithDefault(ctx, names.Username, "")
		}
		if config.Stake.Password == "" {
			config.Stake.Password = sm.GetSecretWithDefault(ctx, names.Password, "")
		}
		if config.Stake.OTP == "" {
			config.Stake.OTP = sm.GetSecretWithDefault(ctx, names.OTP, "")
		}
	}

	logger.Info("Successfully loaded secrets from GCP Secret Manager")
}

func (c *Config) Validate() error {
	if _, ok := stake.ExchangeByName(c.Stake.Exchange); !ok {
		return fmt.Errorf("unknown exchange %q", c.Stake.Exchange)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second must not be negative")
	}
	if c.Stake.Timeout < 0 {
		return fmt.Errorf("stake.timeout must not be negative")
	}
	return nil
}

// LoginRequest prefers a session token over credentials.
func (c *Config) LoginRequest() stake.LoginRequest {
	if c.Stake.Token != "" {
		return stake.TokenLogin{Token: c.Stake.Token}
	}
	return stake.CredentialsLogin{
		Username:       c.Stake.Username,
		Password:       c.Stake.Password,
		OTP:            c.Stake.OTP,
		RememberMeDays: c.Stake.RememberMeDays,
		PlatformType:   c.Stake.PlatformType,
	}
}

// ExchangeConfig resolves the configured exchange with any base URL
// overrides applied.
func (c *Config) ExchangeConfig() stake.ExchangeConfig {
	ex, ok := stake.ExchangeByName(c.Stake.Exchange)
	if !ok {
		ex = stake.NYSE()
	}
	return ex.WithBaseURLs(c.Stake.APIURL, c.Stake.WatchlistURL)
}

// Limiter returns nil when rate limiting is disabled.
func (c *Config) Limiter() *rate.Limiter {
	if c.RateLimit.RequestsPerSecond <= 0 {
		return nil
	}
	burst := c.RateLimit.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit.RequestsPerSecond), burst)
}

// ClientOptions builds the options for stake.New.
func (c *Config) ClientOptions(logger *logrus.Logger) stake.Options {
	ex := c.ExchangeConfig()
	return stake.Options{
		Exchange:       &ex,
		Logger:         logger,
		Timeout:        c.Stake.Timeout,
		Limiter:        c.Limiter(),
		VerifyLookback: c.Stake.VerifyLookback,
	}
}
