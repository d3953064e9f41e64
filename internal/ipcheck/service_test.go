package ipcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	want := map[Service]string{
		Ipify:     "https://api.ipify.org/?format=json",
		WTFIsMyIP: "https://wtfismyip.com/json",
		IPInfo:    "https://ipinfo.io/json",
		ICanHazIP: "https://icanhazip.com",
		TrackIP:   "https://www.trackip.net/ip?json",
	}
	for _, s := range Services() {
		require.Equal(t, want[s], Endpoint(s), s.String())

		u, err := LookupURL(s)
		require.NoError(t, err)
		require.Equal(t, want[s], u.String())
	}
	require.Equal(t, Endpoint(Ipify), Endpoint(Service(-3)))
}

func TestResponseFormat(t *testing.T) {
	for _, s := range Services() {
		if s == ICanHazIP {
			require.Equal(t, FormatText, ResponseFormat(s))
			continue
		}
		require.Equal(t, FormatJSON, ResponseFormat(s), s.String())
	}
	require.Equal(t, ResponseFormat(Ipify), ResponseFormat(Service(17)))
}

func TestAddressField(t *testing.T) {
	require.Equal(t, "ip", AddressField(Ipify))
	require.Equal(t, "ip", AddressField(IPInfo))
	require.Equal(t, "YourFuckingIPAddress", AddressField(WTFIsMyIP))
	require.Equal(t, "IP", AddressField(TrackIP))
	require.Empty(t, AddressField(ICanHazIP))
	require.Equal(t, "ip", AddressField(Service(17)))
}

func TestParseService(t *testing.T) {
	for _, s := range Services() {
		got, err := ParseService(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}

	got, err := ParseService("IPINFO_DOT_IO")
	require.NoError(t, err)
	require.Equal(t, IPInfo, got)

	_, err = ParseService("whatismyip")
	require.Error(t, err)
}
