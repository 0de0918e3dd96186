// Package config holds the typed configuration sections shared across layers.
package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDebug reports whether the server runs in gin debug mode.
func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

type DatabaseConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// GetMigrateURL returns the DSN in the form golang-migrate expects.
func (d *DatabaseConfig) GetMigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?multiStatements=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	// Enabled switches between SMTP delivery and the log-only sender.
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// PublicURL is the prefix used to build evidence URLs returned to clients.
	PublicURL string `mapstructure:"public_url"`
}

type ReportConfig struct {
	Districts                []string `mapstructure:"districts"`
	NotificationEvents       []string `mapstructure:"notification_events"`
	SurveyBaseURL            string   `mapstructure:"survey_base_url"`
	SideEffectTimeoutSeconds int      `mapstructure:"side_effect_timeout_seconds"`
	MaxEvidenceSizeMB        int      `mapstructure:"max_evidence_size_mb"`
}

// SideEffectTimeout bounds each asynchronous notification or survey dispatch.
func (r *ReportConfig) SideEffectTimeout() time.Duration {
	if r.SideEffectTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.SideEffectTimeoutSeconds) * time.Second
}

func (r *ReportConfig) MaxEvidenceBytes() int64 {
	if r.MaxEvidenceSizeMB <= 0 {
		return 10 << 20
	}
	return int64(r.MaxEvidenceSizeMB) << 20
}

type RateLimitConfig struct {
	SurveyPerMinute int `mapstructure:"survey_per_minute"`
	CreatePerHour   int `mapstructure:"create_per_hour"`
}
