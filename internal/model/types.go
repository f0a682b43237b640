// Package model defines shared data structures.
package model

import "time"

// Config defines comparison settings after config file and flags are merged.
type Config struct {
	Threshold   int
	Limit       int
	UseCache    bool
	FlushCache  bool
	Language    string
	Format      string
	Quotient    string
	IgnorePath  string
	Both        bool
	Interactive bool
	TokensOnly  bool
}

// Transcript is the raw message set of one participant extracted from a chat export.
type Transcript struct {
	CompanionID   string
	CompanionName string
	Messages      []string
}

// RankedWord is one row of a vocabulary ranking.
type RankedWord struct {
	Word     string
	Count    int
	Quotient float64
}

// CacheEntry is a persisted token sequence for one participant.
type CacheEntry struct {
	Key      string
	Name     string
	Policy   string
	Tokens   []string
	CachedAt time.Time
}

// CacheSummary describes a cache entry without its token payload.
type CacheSummary struct {
	Key        string
	Name       string
	Policy     string
	TokenCount int
	CachedAt   time.Time
}
