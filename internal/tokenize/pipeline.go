package tokenize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verte-zerg/bibaboba/internal/logging"
	"github.com/verte-zerg/bibaboba/internal/model"
	"github.com/verte-zerg/bibaboba/internal/store"
)

// Segmenter turns messages into tokens. Policy identifies its normalization rules.
type Segmenter interface {
	Segment(messages []string) ([]string, error)
	Policy() string
}

// Cache persists token sequences by participant identity.
type Cache interface {
	Get(ctx context.Context, key string) (model.CacheEntry, bool, error)
	Put(ctx context.Context, entry model.CacheEntry) error
	Delete(ctx context.Context, key string) error
}

// Locker serializes cache access for one key.
type Locker interface {
	Lock(ctx context.Context, key string) (func() error, error)
}

// Input is one participant's raw message set.
type Input struct {
	ID       string
	Name     string
	Messages []string
}

// Options controls cache behavior for a single Run.
type Options struct {
	UseCache   bool
	FlushCache bool
}

// Result is a token sequence plus diagnostics about how it was obtained.
type Result struct {
	Tokens        []string
	CacheHit      bool
	CacheBypassed bool
	CacheCorrupt  bool
	CacheStale    bool
}

// Pipeline tokenizes participants, reading and writing the cache as configured.
type Pipeline struct {
	seg    Segmenter
	cache  Cache
	locker Locker
	logger *slog.Logger
}

// NewPipeline builds a Pipeline. cache may be nil only when every Run disables caching;
// locker and logger are optional.
func NewPipeline(seg Segmenter, cache Cache, locker Locker, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		seg:    seg,
		cache:  cache,
		locker: locker,
		logger: logging.Component(logger, "tokenize"),
	}
}

// PolicyAccepts reports whether an entry cached under cached is valid for active.
// A policy without a table fingerprint, which is all that is known while the model is
// missing, accepts any fingerprint for the same version and language.
func PolicyAccepts(active, cached string) bool {
	return cached == active || strings.HasPrefix(cached, active+":")
}

// Run returns the token sequence for in.
func (p *Pipeline) Run(ctx context.Context, in Input, opts Options) (Result, error) {
	if !opts.UseCache {
		tokens, err := p.seg.Segment(in.Messages)
		if err != nil {
			return Result{}, err
		}
		return Result{Tokens: tokens, CacheBypassed: true}, nil
	}
	if p.cache == nil {
		return Result{}, fmt.Errorf("tokenize %s: cache is enabled but not configured", in.ID)
	}

	if p.locker != nil {
		unlock, err := p.locker.Lock(ctx, in.ID)
		if err != nil {
			return Result{}, err
		}
		defer func() {
			if uerr := unlock(); uerr != nil {
				p.logger.Warn("failed to release cache lock",
					slog.String("participant", in.ID),
					slog.Any("error", uerr))
			}
		}()
	}

	var res Result
	policy := p.seg.Policy()
	if !opts.FlushCache {
		entry, ok, err := p.cache.Get(ctx, in.ID)
		switch {
		case errors.Is(err, store.ErrCorrupt):
			p.logger.Warn("discarding corrupt cache entry",
				slog.String("participant", in.ID),
				slog.Any("error", err))
			res.CacheCorrupt = true
		case err != nil:
			return Result{}, fmt.Errorf("read cache for %s: %w", in.ID, err)
		case ok && PolicyAccepts(policy, entry.Policy):
			p.logger.Debug("token cache hit",
				slog.String("participant", in.ID),
				slog.Int("tokens", len(entry.Tokens)))
			return Result{Tokens: entry.Tokens, CacheHit: true}, nil
		case ok:
			p.logger.Info("token cache entry uses an older policy",
				slog.String("participant", in.ID),
				slog.String("cached_policy", entry.Policy),
				slog.String("policy", policy))
			res.CacheStale = true
		}
	}

	start := time.Now()
	tokens, err := p.seg.Segment(in.Messages)
	if err != nil {
		return Result{}, err
	}
	res.Tokens = tokens
	p.logger.Debug("tokenized messages",
		slog.String("participant", in.ID),
		slog.Int("messages", len(in.Messages)),
		slog.Int("tokens", len(res.Tokens)),
		slog.Duration("elapsed", time.Since(start)))

	if opts.FlushCache {
		if err := p.cache.Delete(ctx, in.ID); err != nil {
			return Result{}, fmt.Errorf("flush cache for %s: %w", in.ID, err)
		}
	}
	entry := model.CacheEntry{
		Key:      in.ID,
		Name:     in.Name,
		Policy:   policy,
		Tokens:   res.Tokens,
		CachedAt: time.Now(),
	}
	if err := p.cache.Put(ctx, entry); err != nil {
		return Result{}, fmt.Errorf("write cache for %s: %w", in.ID, err)
	}
	return res, nil
}
