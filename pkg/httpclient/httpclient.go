// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package httpclient provides the resty client used to call the ferret
// agent's own REST API, preconfigured with retries and the agent UA.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stratastor/ferret/internal/constants"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultRetryCount      = 3
	defaultRetryWaitTime   = 2 * time.Second
	defaultRetryMaxWait    = 10 * time.Second
	defaultMaxIdleConns    = 100
	defaultIdleConnTimeout = 90 * time.Second
	defaultUserAgent       = "Ferret-Agent"
)

// Client embeds resty.Client; callers issue requests via R().
type Client struct {
	*resty.Client
	config ClientConfig
}

// ClientConfig holds the knobs applied to a new Client. Every field here
// is consumed by applyConfig; zero values fall back to defaults.
type ClientConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	RetryConditions  []resty.RetryConditionFunc
	UserAgent        string

	TLSConfig     *tls.Config
	AllowInsecure bool

	Headers map[string]string

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	DisableCompression  bool
	DisableKeepAlives   bool

	BasicAuth struct {
		Username string
		Password string
	}
	BearerToken string

	Debug          bool
	DebugBodyLimit int64
	EnableTrace    bool
}

// NewClientConfig returns a ClientConfig with agent defaults. The UA
// carries the ferret version so server logs can tell self-calls apart.
func NewClientConfig() ClientConfig {
	return ClientConfig{
		Headers:          make(map[string]string),
		MaxIdleConns:     defaultMaxIdleConns,
		IdleConnTimeout:  defaultIdleConnTimeout,
		Timeout:          defaultTimeout,
		RetryCount:       defaultRetryCount,
		RetryWaitTime:    defaultRetryWaitTime,
		RetryMaxWaitTime: defaultRetryMaxWait,
		UserAgent:        defaultUserAgent + "/" + constants.FerretVersion,
	}
}

// NewClient creates a resty client configured per cfg.
func NewClient(cfg ClientConfig) *Client {
	client := &Client{
		Client: resty.New(),
		config: cfg,
	}
	client.applyConfig()
	return client
}

func (c *Client) applyConfig() {
	if c.config.Timeout > 0 {
		c.Client.SetTimeout(c.config.Timeout)
	}
	if c.config.RetryCount > 0 {
		c.Client.SetRetryCount(c.config.RetryCount)
	}
	if c.config.RetryWaitTime > 0 {
		c.Client.SetRetryWaitTime(c.config.RetryWaitTime)
	}
	if c.config.RetryMaxWaitTime > 0 {
		c.Client.SetRetryMaxWaitTime(c.config.RetryMaxWaitTime)
	}
	if c.config.UserAgent != "" {
		c.Client.SetHeader("User-Agent", c.config.UserAgent)
	}
	if c.config.BaseURL != "" {
		c.Client.SetBaseURL(c.config.BaseURL)
	}
	if c.config.Headers != nil {
		c.Client.SetHeaders(c.config.Headers)
	}
	if c.config.BasicAuth.Username != "" && c.config.BasicAuth.Password != "" {
		c.Client.SetBasicAuth(c.config.BasicAuth.Username, c.config.BasicAuth.Password)
	}
	if c.config.BearerToken != "" {
		c.Client.SetAuthToken(c.config.BearerToken)
	}
	if c.config.Debug {
		c.Client.SetDebug(true)
		if c.config.DebugBodyLimit > 0 {
			c.Client.SetDebugBodyLimit(c.config.DebugBodyLimit)
		}
	} else {
		// Resty chats on retries; keep CLI output clean.
		c.Client.SetDebug(false)
		c.Client.SetLogger(NoOpLogger{})
	}
	if c.config.EnableTrace {
		c.Client.EnableTrace()
	}
	for _, condition := range c.config.RetryConditions {
		c.Client.AddRetryCondition(condition)
	}

	transport := &http.Transport{
		MaxIdleConns:        c.config.MaxIdleConns,
		MaxIdleConnsPerHost: c.config.MaxIdleConnsPerHost,
		MaxConnsPerHost:     c.config.MaxConnsPerHost,
		IdleConnTimeout:     c.config.IdleConnTimeout,
		DisableCompression:  c.config.DisableCompression,
		DisableKeepAlives:   c.config.DisableKeepAlives,
	}

	if c.config.TLSConfig != nil {
		transport.TLSClientConfig = c.config.TLSConfig
	} else if c.config.AllowInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c.Client.SetTransport(transport)
}

// NoOpLogger discards resty's internal logging.
type NoOpLogger struct{}

func (l NoOpLogger) Printf(format string, v ...interface{}) {}
func (l NoOpLogger) Debugf(format string, v ...interface{}) {}
func (l NoOpLogger) Warnf(format string, v ...interface{})  {}
func (l NoOpLogger) Errorf(format string, v ...interface{}) {}
