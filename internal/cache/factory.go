// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "time"

// DefaultTTL is the default expiration for cached entries.
const DefaultTTL = 5 * time.Minute

// keyPrefix namespaces Redis keys so a shared instance stays tidy.
const keyPrefix = "smartwarga:"

// New creates a cache backend. When redisURL is empty a process-local memory
// cache is used; otherwise entries are shared through Redis.
func New(redisURL string) (Cache, error) {
	if redisURL == "" {
		return NewMemoryCache(DefaultTTL), nil
	}
	return NewRedisCache(redisURL, keyPrefix, DefaultTTL)
}
