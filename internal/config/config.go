package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erkki/publicip/internal/ipcheck"
	"github.com/erkki/publicip/internal/useragent"
)

const envPrefix = "PUBLICIP"

// Keys shared by command line flags and PUBLICIP_* environment variables,
// e.g. "connect-timeout-ms" is also read from PUBLICIP_CONNECT_TIMEOUT_MS.
const (
	KeyService          = "service"
	KeyUserAgent        = "user-agent"
	KeyConnectTimeoutMs = "connect-timeout-ms"
	KeyReadTimeoutMs    = "read-timeout-ms"
	KeyOutput           = "output"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds runtime configuration for the lookup.
type Config struct {
	Service        ipcheck.Service
	Profile        useragent.Profile
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Output         string
}

// New returns a viper instance reading PUBLICIP_* variables with defaults set.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyService, ipcheck.DefaultService.String())
	v.SetDefault(KeyUserAgent, useragent.Default.String())
	v.SetDefault(KeyConnectTimeoutMs, strconv.Itoa(int(ipcheck.DefaultConnectTimeout.Milliseconds())))
	v.SetDefault(KeyReadTimeoutMs, strconv.Itoa(int(ipcheck.DefaultReadTimeout.Milliseconds())))
	v.SetDefault(KeyOutput, OutputText)
	return v
}

// Load validates the values held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	var err error

	cfg.Service, err = ipcheck.ParseService(v.GetString(KeyService))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyService, err)
	}

	cfg.Profile, err = useragent.Parse(v.GetString(KeyUserAgent))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyUserAgent, err)
	}

	cfg.ConnectTimeout, err = millis(v, KeyConnectTimeoutMs)
	if err != nil {
		return Config{}, err
	}
	cfg.ReadTimeout, err = millis(v, KeyReadTimeoutMs)
	if err != nil {
		return Config{}, err
	}

	cfg.Output = strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput)))
	switch cfg.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return Config{}, fmt.Errorf("invalid %s: %s", KeyOutput, v.GetString(KeyOutput))
	}

	return cfg, nil
}

// FetcherOptions turns cfg into ipcheck options.
func (c Config) FetcherOptions() []ipcheck.Option {
	return []ipcheck.Option{
		ipcheck.WithProfile(c.Profile),
		ipcheck.WithConnectTimeout(c.ConnectTimeout),
		ipcheck.WithReadTimeout(c.ReadTimeout),
	}
}

func millis(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("invalid %s: %s", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
