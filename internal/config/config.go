package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the API server.
type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseLog     string
	ShutdownTimeout time.Duration
	LogJSON         bool
	LogDebug        bool
	Reminder        ReminderConfig
	Line            LineConfig
}

// ReminderConfig holds the tunables of the interview reminder loop.
type ReminderConfig struct {
	PollInterval time.Duration
	NowWindow    time.Duration
	Horizon      time.Duration
	BucketSize   time.Duration
	TimeZone     string
}

// Location resolves TimeZone, falling back to the process local zone when empty.
func (r ReminderConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(r.TimeZone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	return loc, nil
}

// LineConfig holds optional LINE Messaging API credentials used for push delivery.
type LineConfig struct {
	ChannelSecret string
	ChannelToken  string
}

// Enabled reports whether both LINE credentials are present.
func (l LineConfig) Enabled() bool {
	return l.ChannelSecret != "" && l.ChannelToken != ""
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database.url", "hrreminder.db")
	v.SetDefault("database.log", "warn")
	v.SetDefault("shutdown.timeout", "5s")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("reminder.poll_interval", "5s")
	v.SetDefault("reminder.now_window", "60s")
	v.SetDefault("reminder.horizon", "30m")
	v.SetDefault("reminder.bucket_size", "5m")
	v.SetDefault("reminder.time_zone", "Local")
	v.SetDefault("line.channel_secret", "")
	v.SetDefault("line.channel_token", "")
}

// BindEnv binds the HRREMINDER_ prefixed variables plus the bare names the
// deployment scripts already export.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("HRREMINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("port", "HRREMINDER_PORT", "PORT")
	_ = v.BindEnv("database.url", "HRREMINDER_DATABASE_URL", "BLUEPRINT_DB_URL")
	_ = v.BindEnv("database.log", "HRREMINDER_DATABASE_LOG")
	_ = v.BindEnv("shutdown.timeout", "HRREMINDER_SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("log.json", "HRREMINDER_LOG_JSON")
	_ = v.BindEnv("log.debug", "HRREMINDER_LOG_DEBUG")
	_ = v.BindEnv("reminder.poll_interval", "HRREMINDER_REMINDER_POLL_INTERVAL")
	_ = v.BindEnv("reminder.now_window", "HRREMINDER_REMINDER_NOW_WINDOW")
	_ = v.BindEnv("reminder.horizon", "HRREMINDER_REMINDER_HORIZON")
	_ = v.BindEnv("reminder.bucket_size", "HRREMINDER_REMINDER_BUCKET_SIZE")
	_ = v.BindEnv("reminder.time_zone", "HRREMINDER_REMINDER_TIME_ZONE", "TZ")
	_ = v.BindEnv("line.channel_secret", "HRREMINDER_LINE_CHANNEL_SECRET", "CHANNEL_SECRET")
	_ = v.BindEnv("line.channel_token", "HRREMINDER_LINE_CHANNEL_TOKEN", "CHANNEL_ACCESS_TOKEN")
}

// Load reads configuration from v. Callers are expected to have run SetDefaults
// and BindEnv, and optionally ReadInConfig.
func Load(v *viper.Viper) (Config, error) {
	shutdown, err := parseDuration(v, "shutdown.timeout")
	if err != nil {
		return Config{}, err
	}
	poll, err := parseDuration(v, "reminder.poll_interval")
	if err != nil {
		return Config{}, err
	}
	nowWindow, err := parseDuration(v, "reminder.now_window")
	if err != nil {
		return Config{}, err
	}
	horizon, err := parseDuration(v, "reminder.horizon")
	if err != nil {
		return Config{}, err
	}
	bucket, err := parseDuration(v, "reminder.bucket_size")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:            v.GetInt("port"),
		DatabaseURL:     strings.TrimSpace(v.GetString("database.url")),
		DatabaseLog:     strings.ToLower(strings.TrimSpace(v.GetString("database.log"))),
		ShutdownTimeout: shutdown,
		LogJSON:         v.GetBool("log.json"),
		LogDebug:        v.GetBool("log.debug"),
		Reminder: ReminderConfig{
			PollInterval: poll,
			NowWindow:    nowWindow,
			Horizon:      horizon,
			BucketSize:   bucket,
			TimeZone:     v.GetString("reminder.time_zone"),
		},
		Line: LineConfig{
			ChannelSecret: strings.TrimSpace(v.GetString("line.channel_secret")),
			ChannelToken:  strings.TrimSpace(v.GetString("line.channel_token")),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database.url must not be empty")
	}
	r := c.Reminder
	if r.PollInterval < time.Second {
		return fmt.Errorf("reminder.poll_interval must be at least 1s, got %s", r.PollInterval)
	}
	if r.NowWindow <= 0 || r.Horizon <= 0 || r.BucketSize <= 0 {
		return fmt.Errorf("reminder windows must be positive")
	}
	if r.BucketSize > r.Horizon {
		return fmt.Errorf("reminder.bucket_size %s exceeds reminder.horizon %s", r.BucketSize, r.Horizon)
	}
	if _, err := r.Location(); err != nil {
		return err
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
