package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/erkki/publicip/internal/ipcheck"
	"github.com/erkki/publicip/internal/useragent"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, ipcheck.Ipify, cfg.Service)
	require.Equal(t, useragent.FirefoxLinuxX64, cfg.Profile)
	require.Equal(t, 4*time.Second, cfg.ConnectTimeout)
	require.Equal(t, 4*time.Second, cfg.ReadTimeout)
	require.Equal(t, OutputText, cfg.Output)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PUBLICIP_SERVICE", "ICANHAZIP")
	t.Setenv("PUBLICIP_USER_AGENT", "chrome-macosx")
	t.Setenv("PUBLICIP_CONNECT_TIMEOUT_MS", "1500")
	t.Setenv("PUBLICIP_READ_TIMEOUT_MS", "0")
	t.Setenv("PUBLICIP_OUTPUT", "YAML")

	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, ipcheck.ICanHazIP, cfg.Service)
	require.Equal(t, useragent.ChromeMacOSX, cfg.Profile)
	require.Equal(t, 1500*time.Millisecond, cfg.ConnectTimeout)
	require.Zero(t, cfg.ReadTimeout)
	require.Equal(t, OutputYAML, cfg.Output)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PUBLICIP_SERVICE", "trackip")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyService, "", "")
	require.NoError(t, fs.Parse([]string{"--service=wtfismyip"}))

	v := New()
	require.NoError(t, v.BindPFlags(fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, ipcheck.WTFIsMyIP, cfg.Service)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"PUBLICIP_SERVICE":            "myip.example",
		"PUBLICIP_USER_AGENT":         "lynx",
		"PUBLICIP_CONNECT_TIMEOUT_MS": "soon",
		"PUBLICIP_READ_TIMEOUT_MS":    "-5",
		"PUBLICIP_OUTPUT":             "xml",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load(New())
			require.Error(t, err)
		})
	}
}

func TestFetcherOptions(t *testing.T) {
	cfg := Config{Profile: useragent.SafariIOS, ConnectTimeout: time.Second, ReadTimeout: 2 * time.Second}
	require.Len(t, cfg.FetcherOptions(), 3)
}
