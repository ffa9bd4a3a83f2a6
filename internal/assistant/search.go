// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const searchTimeout = 10 * time.Second

// SearchProvider supplies web context for questions about administrative
// requirements and procedures.
type SearchProvider interface {
	Search(ctx context.Context, query string) (string, error)
}

// SearxSearch queries a SearXNG instance's JSON API. Any self-hosted or
// public instance with format=json enabled works.
type SearxSearch struct {
	baseURL string
	client  *http.Client
}

// NewSearxSearch creates a search provider for the given SearXNG base URL.
func NewSearxSearch(baseURL string) *SearxSearch {
	return &SearxSearch{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: searchTimeout},
	}
}

// Search runs the query and returns the top results as plain text lines.
func (s *SearxSearch) Search(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&language=id",
		s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading search response: %w", err)
	}

	var result struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}

	var sb strings.Builder
	for i, r := range result.Results {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", r.Title, r.Content, r.URL)
	}
	return sb.String(), nil
}
