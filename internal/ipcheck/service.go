package ipcheck

import (
	"fmt"
	"net/url"
	"strings"
)

// Service is a third-party endpoint that reports the caller's public IP.
type Service int

const (
	Ipify Service = iota
	WTFIsMyIP
	IPInfo
	ICanHazIP
	TrackIP
)

// DefaultService is used when no service is selected and in place of any
// unknown Service value.
const DefaultService = Ipify

// Format describes how a lookup service shapes its response body.
type Format int

const (
	FormatJSON Format = iota
	FormatHTML
	FormatText
	FormatXML
)

var serviceNames = map[Service]string{
	Ipify:     "ipify",
	WTFIsMyIP: "wtfismyip",
	IPInfo:    "ipinfo",
	ICanHazIP: "icanhazip",
	TrackIP:   "trackip",
}

var serviceAliases = map[string]Service{
	"ipinfo-dot-io": IPInfo,
	"ipinfo.io":     IPInfo,
}

func canonical(s Service) Service {
	if _, ok := serviceNames[s]; ok {
		return s
	}
	return DefaultService
}

// Endpoint returns the lookup URL of s.
func Endpoint(s Service) string {
	switch s {
	case Ipify:
		return "https://api.ipify.org/?format=json"
	case WTFIsMyIP:
		return "https://wtfismyip.com/json"
	case IPInfo:
		return "https://ipinfo.io/json"
	case ICanHazIP:
		return "https://icanhazip.com"
	case TrackIP:
		return "https://www.trackip.net/ip?json"
	default:
		return Endpoint(DefaultService)
	}
}

// LookupURL is Endpoint parsed into a URL.
func LookupURL(s Service) (*url.URL, error) {
	return parseURL(Endpoint(s))
}

// ResponseFormat returns the body format served by s.
func ResponseFormat(s Service) Format {
	switch s {
	case Ipify, WTFIsMyIP, IPInfo, TrackIP:
		return FormatJSON
	case ICanHazIP:
		return FormatText
	default:
		return FormatJSON
	}
}

// AddressField returns the JSON field holding the address in the response of
// s. Each service names it its own way. Text services have no field.
func AddressField(s Service) string {
	switch s {
	case Ipify, IPInfo:
		return "ip"
	case WTFIsMyIP:
		return "YourFuckingIPAddress"
	case TrackIP:
		return "IP"
	case ICanHazIP:
		return ""
	default:
		return AddressField(DefaultService)
	}
}

func (s Service) String() string {
	if name, ok := serviceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Service(%d)", int(s))
}

// ParseService maps a service name back to its Service. Matching ignores case
// and treats '_' as '-', so "IPINFO_DOT_IO" is accepted.
func ParseService(name string) (Service, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	for s, n := range serviceNames {
		if n == key {
			return s, nil
		}
	}
	if s, ok := serviceAliases[key]; ok {
		return s, nil
	}
	return DefaultService, fmt.Errorf("unknown lookup service %q", name)
}

// Services lists every lookup service in declaration order.
func Services() []Service {
	return []Service{Ipify, WTFIsMyIP, IPInfo, ICanHazIP, TrackIP}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	case FormatText:
		return "text"
	case FormatXML:
		return "xml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}
