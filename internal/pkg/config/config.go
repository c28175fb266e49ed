package config

import (
	"time"

	"pacectrl/internal/pkg/errs"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, etc.)
// - default: Values common across all environments (TTL, timeouts, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
	Intent IntentConfig
	Stream StreamConfig
	Widget WidgetConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	// Wildcard by default: the widget is embedded on arbitrary host pages.
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type IntentConfig struct {
	// Intents unconfirmed for longer than TTL are pruned before every
	// read and write of the intent ledger.
	TTL time.Duration `envconfig:"INTENT_TTL" default:"15m"`
}

type StreamConfig struct {
	// Per-observer queue depth. Snapshots are human-paced, so a small
	// buffer is plenty; an observer that falls this far behind is detached.
	Buffer int `envconfig:"STREAM_BUFFER" default:"16"`
}

type WidgetConfig struct {
	ScriptPath string `envconfig:"WIDGET_SCRIPT_PATH" default:"widget/dist/widget.js"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, errs.Wrap(err, "failed to process env config")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Intent: IntentConfig{
			TTL: 15 * time.Minute,
		},
		Stream: StreamConfig{
			Buffer: 16,
		},
		Widget: WidgetConfig{
			ScriptPath: "widget/dist/widget.js",
		},
	}
}
