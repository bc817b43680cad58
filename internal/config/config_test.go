package config

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TZ", "")
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "hrreminder.db", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Reminder.PollInterval)
	assert.Equal(t, time.Minute, cfg.Reminder.NowWindow)
	assert.Equal(t, 30*time.Minute, cfg.Reminder.Horizon)
	assert.Equal(t, 5*time.Minute, cfg.Reminder.BucketSize)
	assert.False(t, cfg.Line.Enabled())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BLUEPRINT_DB_URL", "/tmp/blueprint.db")
	t.Setenv("HRREMINDER_REMINDER_POLL_INTERVAL", "2s")
	t.Setenv("HRREMINDER_REMINDER_TIME_ZONE", "Europe/Lisbon")
	t.Setenv("CHANNEL_SECRET", "secret")
	t.Setenv("CHANNEL_ACCESS_TOKEN", "token")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/blueprint.db", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.Reminder.PollInterval)
	assert.True(t, cfg.Line.Enabled())

	loc, err := cfg.Reminder.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", loc.String())
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("TZ", "")
	v := newViper()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
port: 7070
reminder:
  horizon: 60m
  bucket_size: 10m
log:
  json: true
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, time.Hour, cfg.Reminder.Horizon)
	assert.Equal(t, 10*time.Minute, cfg.Reminder.BucketSize)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{name: "poll below one second", key: "reminder.poll_interval", val: "500ms"},
		{name: "unparseable duration", key: "reminder.horizon", val: "soon"},
		{name: "bucket larger than horizon", key: "reminder.bucket_size", val: "45m"},
		{name: "negative window", key: "reminder.now_window", val: "-1s"},
		{name: "unknown zone", key: "reminder.time_zone", val: "Mars/Olympus"},
		{name: "port out of range", key: "port", val: 70000},
		{name: "empty database", key: "database.url", val: " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TZ", "")
			v := newViper()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestReminderConfig_LocationLocal(t *testing.T) {
	for _, tz := range []string{"", "Local", " local "} {
		loc, err := ReminderConfig{TimeZone: tz}.Location()
		require.NoError(t, err)
		assert.Equal(t, time.Local, loc)
	}
}
