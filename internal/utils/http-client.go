package utils

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPClientConfig struct {
	Timeout        time.Duration // per-request deadline, 0 means none
	KATimeout      time.Duration
	ProxyURL       string
	ProxyUsername  string
	ProxyPassword  string
	UserAgent      string
	MaxIdlePerHost int // idle pool size per host, never below 100; pass the thread count so each permit can keep a connection
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient is created once per run and shared by every download.
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 90 * time.Second
	}
	if cfg.MaxIdlePerHost < 100 {
		cfg.MaxIdlePerHost = 100
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        cfg.MaxIdlePerHost,
		MaxIdleConnsPerHost: cfg.MaxIdlePerHost,
		MaxConnsPerHost:     0,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			if cfg.ProxyUsername != "" {
				if cfg.ProxyPassword != "" {
					proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
				} else {
					proxyURL.User = url.User(cfg.ProxyUsername)
				}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	return c.client.Do(req)
}

// SplitProxyAuth moves credentials embedded in a proxy URL into the config
// unless they were given explicitly.
// A proxy given without a scheme is treated as http.
func SplitProxyAuth(cfg *HTTPClientConfig) {
	if cfg.ProxyURL == "" {
		return
	}
	if !strings.Contains(cfg.ProxyURL, "://") {
		cfg.ProxyURL = "http://" + cfg.ProxyURL
	}
	parsed, err := url.Parse(cfg.ProxyURL)
	if err != nil || parsed.User == nil {
		return
	}
	if cfg.ProxyUsername == "" {
		cfg.ProxyUsername = parsed.User.Username()
		if password, set := parsed.User.Password(); set {
			cfg.ProxyPassword = password
		}
	}
	parsed.User = nil
	cfg.ProxyURL = parsed.String()
}
