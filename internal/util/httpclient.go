// Package util provides shared HTTP clients with connection pooling
package util

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"
)

var (
	sharedClient     *http.Client
	sharedClientOnce sync.Once

	// FastClient is optimized for quick probe requests with shorter timeouts
	fastClient     *http.Client
	fastClientOnce sync.Once

	sharedTransport     *http.Transport
	sharedTransportOnce sync.Once
)

// httpClientConfig holds configuration for creating optimized HTTP clients
type httpClientConfig struct {
	timeout             time.Duration
	maxIdleConns        int
	maxIdleConnsPerHost int
	maxConnsPerHost     int
	idleConnTimeout     time.Duration
	tlsHandshakeTimeout time.Duration
	expectContinue      time.Duration
	keepAlive           time.Duration
	dialTimeout         time.Duration
}

// defaultConfig returns optimized default configuration
func defaultConfig() httpClientConfig {
	return httpClientConfig{
		timeout:             30 * time.Second,
		maxIdleConns:        50,
		maxIdleConnsPerHost: 10,
		maxConnsPerHost:     20,
		idleConnTimeout:     120 * time.Second,
		tlsHandshakeTimeout: 5 * time.Second,
		expectContinue:      1 * time.Second,
		keepAlive:           30 * time.Second,
		dialTimeout:         5 * time.Second,
	}
}

// fastConfig returns configuration optimized for quick requests
func fastConfig() httpClientConfig {
	return httpClientConfig{
		timeout:             15 * time.Second,
		maxIdleConns:        30,
		maxIdleConnsPerHost: 10,
		maxConnsPerHost:     20,
		idleConnTimeout:     90 * time.Second,
		tlsHandshakeTimeout: 5 * time.Second,
		expectContinue:      500 * time.Millisecond,
		keepAlive:           30 * time.Second,
		dialTimeout:         5 * time.Second,
	}
}

// createTransport creates an optimized HTTP transport with the given config
func createTransport(cfg httpClientConfig) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.dialTimeout,
			KeepAlive: cfg.keepAlive,
		}).DialContext,
		MaxIdleConns:          cfg.maxIdleConns,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		MaxConnsPerHost:       cfg.maxConnsPerHost,
		IdleConnTimeout:       cfg.idleConnTimeout,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ExpectContinueTimeout: cfg.expectContinue,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// GetSharedClient returns the pooled client for general requests
func GetSharedClient() *http.Client {
	sharedClientOnce.Do(func() {
		cfg := defaultConfig()
		sharedClient = &http.Client{
			Timeout:   cfg.timeout,
			Transport: createTransport(cfg),
		}
	})
	return sharedClient
}

// GetFastClient returns the pooled client for quick probe requests
func GetFastClient() *http.Client {
	fastClientOnce.Do(func() {
		cfg := fastConfig()
		fastClient = &http.Client{
			Timeout:   cfg.timeout,
			Transport: createTransport(cfg),
		}
	})
	return fastClient
}

// SharedTransport returns the pooled transport for callers that need their
// own timeout on top of the shared connection pool
func SharedTransport() *http.Transport {
	sharedTransportOnce.Do(func() {
		sharedTransport = createTransport(defaultConfig())
	})
	return sharedTransport
}
