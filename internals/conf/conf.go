package conf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Oudwins/seedance/internals/env"
	"github.com/Oudwins/seedance/internals/timeouts"
	"github.com/Oudwins/seedance/sdk"

	z "github.com/Oudwins/zog"
)

const DefaultModel = "seedance-1-5-pro-251215"

type Config struct {
	Defaults DefaultsConfig `json:"defaults" zog:"defaults"`
	Watch    WatchConfig    `json:"watch" zog:"watch"`
	Output   OutputConfig   `json:"output" zog:"output"`
	Request  RequestConfig  `json:"request" zog:"request"`
}

type DefaultsConfig struct {
	Model       string `json:"model" zog:"model"`
	Resolution  string `json:"resolution" zog:"resolution"`
	Ratio       string `json:"ratio" zog:"ratio"`
	Duration    int    `json:"duration" zog:"duration"`
	ServiceTier string `json:"service_tier" zog:"service_tier"`
}

type WatchConfig struct {
	PollInterval string `json:"poll_interval" zog:"poll_interval"`
	Timeout      string `json:"timeout" zog:"timeout"`
}

type OutputConfig struct {
	Dir string `json:"dir" zog:"dir"`
}

type RequestConfig struct {
	Timeout string `json:"timeout" zog:"timeout"`
}

var defaultsSchema = z.Struct(z.Shape{
	"Model":       z.String().Default(DefaultModel).Trim(),
	"Resolution":  z.String().Default("720p").OneOf(sdk.Resolutions),
	"Ratio":       z.String().Default("16:9").OneOf(sdk.Ratios),
	"Duration":    z.Int().Default(5).TestFunc(validDurationTest, z.Message("duration must be between 2 and 12, or -1 for auto")),
	"ServiceTier": z.String().Default("default").OneOf(sdk.ServiceTiers),
})

var watchSchema = z.Struct(z.Shape{
	"PollInterval": z.String().Default(timeouts.PollInterval.String()).TestFunc(positiveDurationTest, z.Message("poll_interval must be a positive duration")),
	"Timeout":      z.String().Default(timeouts.Wait.String()).TestFunc(durationTest, z.Message("timeout must be a duration")),
})

var outputSchema = z.Struct(z.Shape{
	"Dir": z.String().Default("./output").Transform(expandPathTransform),
})

var requestSchema = z.Struct(z.Shape{
	"Timeout": z.String().Default(timeouts.Request.String()).TestFunc(positiveDurationTest, z.Message("request timeout must be a positive duration")),
})

var ConfigSchema = z.Struct(z.Shape{
	"Defaults": defaultsSchema,
	"Watch":    watchSchema,
	"Output":   outputSchema,
	"Request":  requestSchema,
})

// DefaultPath is ~/.seedance/config.json, using HOME when set.
func DefaultPath() (string, error) {
	home := ""
	if envs, err := env.Load(); err == nil {
		home = envs.HOME
	}
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(home, ".seedance", "config.json"), nil
}

// Load reads the config file at path on top of the defaults. A missing or
// empty file yields the defaults.
func Load(path string) (*Config, error) {
	payload := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) != "" {
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	parsed := &Config{}
	if issues := ConfigSchema.Parse(payload, parsed); issues != nil {
		return nil, fmt.Errorf("invalid config:\n%s", z.Issues.Prettify(issues))
	}
	return parsed, nil
}

func (c WatchConfig) PollIntervalDuration() time.Duration {
	return mustDuration(c.PollInterval, timeouts.PollInterval)
}

func (c WatchConfig) TimeoutDuration() time.Duration {
	return mustDuration(c.Timeout, timeouts.Wait)
}

func (c RequestConfig) TimeoutDuration() time.Duration {
	return mustDuration(c.Timeout, timeouts.Request)
}

func mustDuration(raw string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func validDurationTest(valPtr *int, ctx z.Ctx) bool {
	return sdk.ValidDuration(*valPtr)
}

func durationTest(valPtr *string, ctx z.Ctx) bool {
	value, err := time.ParseDuration(*valPtr)
	return err == nil && value >= 0
}

func positiveDurationTest(valPtr *string, ctx z.Ctx) bool {
	value, err := time.ParseDuration(*valPtr)
	return err == nil && value > 0
}

func expandPathTransform(ptr *string, c z.Ctx) error {
	expanded, err := ExpandPath(*ptr)
	*ptr = expanded
	return err
}

func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
