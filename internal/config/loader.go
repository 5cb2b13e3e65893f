package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rpattn/leadrecon/internal/ingestion"
	"github.com/rpattn/leadrecon/internal/matching"
	"github.com/rpattn/leadrecon/internal/reconcile"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LEADRECON_SERVER_ADDR.
const EnvPrefix = "LEADRECON"

// Config is the application configuration shared by the server and the CLI.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Reconcile  ReconcileConfig
	ConfigFile string
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type ReconcileConfig struct {
	CentsVendors        []string
	PooledVendorPrefix  string
	ReturnedMarker      string
	ConnectedMilestones []string
	QuotedMilestones    []string
	JoinStrategy        string
	MaxUploadMB         int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{Level: "info", Format: "auto"},
		Reconcile: ReconcileConfig{
			CentsVendors:        ingestion.DefaultCentsVendors,
			PooledVendorPrefix:  ingestion.DefaultPooledVendorPrefix,
			ReturnedMarker:      matching.DefaultReturnedMarker,
			ConnectedMilestones: matching.DefaultConnectedMilestones,
			QuotedMilestones:    matching.DefaultQuotedMilestones,
			JoinStrategy:        string(matching.JoinAuto),
			MaxUploadMB:         32,
		},
	}
}

// Load reads config.yaml from configPath when present, then applies .env and
// environment overrides. A missing config file is not an error.
func Load(configPath string) (Config, error) {
	defaults := Default()

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(filepath.Join(configPath, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("reconcile.cents_vendors", defaults.Reconcile.CentsVendors)
	v.SetDefault("reconcile.pooled_vendor_prefix", defaults.Reconcile.PooledVendorPrefix)
	v.SetDefault("reconcile.returned_marker", defaults.Reconcile.ReturnedMarker)
	v.SetDefault("reconcile.connected_milestones", defaults.Reconcile.ConnectedMilestones)
	v.SetDefault("reconcile.quoted_milestones", defaults.Reconcile.QuotedMilestones)
	v.SetDefault("reconcile.join_strategy", defaults.Reconcile.JoinStrategy)
	v.SetDefault("reconcile.max_upload_mb", defaults.Reconcile.MaxUploadMB)

	// plain LOG_LEVEL / LOG_FORMAT are honoured as well
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			AllowedOrigins: stringSlice(v, "server.allowed_origins"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Reconcile: ReconcileConfig{
			CentsVendors:        stringSlice(v, "reconcile.cents_vendors"),
			PooledVendorPrefix:  v.GetString("reconcile.pooled_vendor_prefix"),
			ReturnedMarker:      v.GetString("reconcile.returned_marker"),
			ConnectedMilestones: stringSlice(v, "reconcile.connected_milestones"),
			QuotedMilestones:    stringSlice(v, "reconcile.quoted_milestones"),
			JoinStrategy:        v.GetString("reconcile.join_strategy"),
			MaxUploadMB:         v.GetInt("reconcile.max_upload_mb"),
		},
		ConfigFile: v.ConfigFileUsed(),
	}
	return cfg, nil
}

// stringSlice reads a list that may come from YAML as a sequence or from the
// environment as a comma separated string.
func stringSlice(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		var values []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return values
	}
	return v.GetStringSlice(key)
}

// MaxUploadBytes converts the upload limit to bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.Reconcile.MaxUploadMB) << 20
}

// ServiceConfig builds the reconciliation pipeline configuration.
func (c Config) ServiceConfig() (reconcile.Config, error) {
	strategy, err := matching.ParseJoinStrategy(c.Reconcile.JoinStrategy)
	if err != nil {
		return reconcile.Config{}, fmt.Errorf("reconcile.join_strategy: %w", err)
	}
	return reconcile.Config{
		VendorRules: ingestion.NewVendorRules(c.Reconcile.CentsVendors, c.Reconcile.PooledVendorPrefix),
		Dispositions: matching.DispositionConfig{
			ReturnedMarker:      c.Reconcile.ReturnedMarker,
			ConnectedMilestones: c.Reconcile.ConnectedMilestones,
			QuotedMilestones:    c.Reconcile.QuotedMilestones,
		},
		JoinStrategy: strategy,
	}, nil
}
