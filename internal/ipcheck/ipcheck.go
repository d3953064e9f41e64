package ipcheck

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	jsoniter "github.com/json-iterator/go"

	"github.com/erkki/publicip/internal/useragent"
)

const (
	DefaultConnectTimeout = 4000 * time.Millisecond
	DefaultReadTimeout    = 4000 * time.Millisecond
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// Fetcher issues timeout-bounded GET requests with a browser User-Agent and
// resolves the public IP through a lookup service. It is safe for concurrent
// use once built.
type Fetcher struct {
	client         *http.Client
	profile        useragent.Profile
	connectTimeout time.Duration
	readTimeout    time.Duration
	endpoints      map[Service]string
	log            logr.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithProfile selects the User-Agent sent with every request.
func WithProfile(p useragent.Profile) Option {
	return func(f *Fetcher) { f.profile = p }
}

// WithConnectTimeout bounds connection establishment. Zero means no limit.
func WithConnectTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.connectTimeout = d }
}

// WithReadTimeout bounds every read from the connection, from waiting on the
// response header to the last body chunk. Zero means no limit.
func WithReadTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.readTimeout = d }
}

// WithEndpoint replaces the lookup URL used for s.
func WithEndpoint(s Service, rawURL string) Option {
	return func(f *Fetcher) { f.endpoints[canonical(s)] = rawURL }
}

func WithLogger(log logr.Logger) Option {
	return func(f *Fetcher) { f.log = log }
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		profile:        useragent.Default,
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		endpoints:      make(map[Service]string),
		log:            logr.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Transport: f.transport()}
	return f
}

// Get fetches rawURL with the default Fetcher settings.
func Get(ctx context.Context, rawURL string) (string, error) {
	return NewFetcher().Get(ctx, rawURL)
}

// PublicIP resolves the public IP through DefaultService with the default
// Fetcher settings.
func PublicIP(ctx context.Context) (net.IP, error) {
	return NewFetcher().PublicIP(ctx, DefaultService)
}

// Get returns the body of rawURL with every line break removed, so a
// multi-line body comes back as its lines concatenated.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return "", err
	}
	return f.get(ctx, u)
}

// PublicIP asks s for the caller's public IP and parses its answer.
func (f *Fetcher) PublicIP(ctx context.Context, s Service) (net.IP, error) {
	s = canonical(s)
	u, err := f.lookupURL(s)
	if err != nil {
		return nil, err
	}
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var literal string
	switch ResponseFormat(s) {
	case FormatText:
		literal = strings.TrimSpace(body)
	default:
		literal, err = stringField(body, AddressField(s))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
	}

	ip := net.ParseIP(literal)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q from %s", ErrMalformedAddress, literal, s)
	}
	f.log.V(1).Info("resolved public IP", "service", s.String(), "ip", ip.String())
	return ip, nil
}

func (f *Fetcher) lookupURL(s Service) (*url.URL, error) {
	if raw, ok := f.endpoints[s]; ok {
		return parseURL(raw)
	}
	return LookupURL(s)
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	req.Header.Set("User-Agent", f.profile.UserAgent())
	f.log.V(1).Info("GET", "url", u.String(), "user_agent", f.profile.String())

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%w: %s returned %d", ErrIO, u, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrIO, u, err)
	}
	return lineBreaks.Replace(string(data)), nil
}

// transport dials every request on a fresh connection: the connect timeout
// covers the dial, the read timeout is re-armed before each read.
func (f *Fetcher) transport() *http.Transport {
	dialer := &net.Dialer{Timeout: f.connectTimeout}
	readTimeout := f.readTimeout
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if readTimeout <= 0 {
				return conn, nil
			}
			return &deadlineConn{Conn: conn, timeout: readTimeout}, nil
		},
		DisableKeepAlives: true,
	}
}

type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an http(s) URL", ErrMalformedURL, raw)
	}
	return u, nil
}

func stringField(body, field string) (string, error) {
	var obj map[string]interface{}
	if err := json.UnmarshalFromString(body, &obj); err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}
	v, ok := obj[field]
	if !ok {
		return "", fmt.Errorf("%w: field %q missing", ErrParse, field)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrParse, field)
	}
	return s, nil
}
