package support

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/weegigs/wee-poll-go/counter"
	"github.com/weegigs/wee-poll-go/poller"
	"github.com/weegigs/wee-poll-go/wp"
)

const EnvPrefix = "WEE_POLL_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Client    ClientConfig    `koanf:"client"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServerConfig struct {
	Port int           `koanf:"port"`
	Tick time.Duration `koanf:"tick"`
}

type ClientConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Interval time.Duration `koanf:"interval"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

type TelemetryConfig struct {
	Exporter string `koanf:"exporter"`
	Endpoint string `koanf:"endpoint"`
	Insecure bool   `koanf:"insecure"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: 3000,
			Tick: counter.DefaultInterval,
		},
		Client: ClientConfig{
			Endpoint: poller.DefaultEndpoint,
			Interval: poller.DefaultInterval,
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Exporter: wp.NoExporter,
		},
	}
}

// LoadConfig overlays WEE_POLL_* environment variables on the defaults, e.g.
// WEE_POLL_SERVER_PORT sets server.port.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	transform := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to load environment")
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.Tick <= 0 {
		return errors.Errorf("invalid server tick %s", c.Server.Tick)
	}
	if c.Client.Endpoint == "" {
		return errors.New("client endpoint is not set")
	}
	if c.Client.Interval <= 0 {
		return errors.Errorf("invalid client interval %s", c.Client.Interval)
	}
	return nil
}
