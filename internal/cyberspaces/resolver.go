// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     cyberspaces
// Description: HTTP region resolver used by the cyberspaces statement
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cyberspaces

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
)

// The endpoint answers with a script assignment wrapping a JSON object
var objectPattern = regexp.MustCompile(`(?s)\{.+\}`)

// maxBodySize caps how much of the response is read
const maxBodySize = 64 * 1024

// Resolver looks up the region of the current network location
type Resolver struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	logger     *helog.Logger
}

// Config holds resolver configuration
type Config struct {
	Endpoint  string        // City lookup URL
	Timeout   time.Duration // Request timeout
	UserAgent string        // User agent string
	Logger    *helog.Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://pv.sohu.com/cityjson?ie=utf-8",
		Timeout:   10 * time.Second,
		UserAgent: "HeLang/0.1 (cyberspaces)",
	}
}

// New creates a new resolver
func New(cfg Config) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	return &Resolver{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger.WithField("component", "cyberspaces"),
	}
}

// location is the part of the endpoint response we use
type location struct {
	CIP   string `json:"cip"`
	CID   string `json:"cid"`
	CName string `json:"cname"`
}

// Resolve returns the region name reported by the endpoint
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return "", networkError(err, "failed to create request")
	}
	req.Header.Set("User-Agent", r.userAgent)

	timer := r.logger.StartTimer("region lookup")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		timer.Stop()
		return "", networkError(err, "failed to request")
	}
	defer resp.Body.Close()
	timer.Stop(helog.Fields{"status": resp.StatusCode})

	if resp.StatusCode != http.StatusOK {
		return "", heerror.Newf(heerror.CodeNetworkError, "request failed with status code %d", resp.StatusCode).
			WithOperation("cyberspaces.Resolve").
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", networkError(err, "failed to read response")
	}

	return parseRegion(body)
}

// parseRegion extracts the region name from a response body such as
// `var returnCitySN = {"cip": "1.2.3.4", "cid": "US", "cname": "UNITED STATES"};`
func parseRegion(body []byte) (string, error) {
	object := objectPattern.Find(body)
	if object == nil {
		return "", heerror.New("response contains no location object").
			WithCode(heerror.CodeNetworkError).
			WithOperation("cyberspaces.Resolve")
	}

	var loc location
	if err := json.Unmarshal(object, &loc); err != nil {
		return "", networkError(err, "failed to decode location")
	}
	region := strings.TrimSpace(loc.CName)
	if region == "" {
		return "", heerror.New("response contains no region name").
			WithCode(heerror.CodeNetworkError).
			WithOperation("cyberspaces.Resolve")
	}
	return region, nil
}

func networkError(err error, message string) error {
	return heerror.Wrap(err, message).
		WithCode(heerror.CodeNetworkError).
		WithOperation("cyberspaces.Resolve")
}
