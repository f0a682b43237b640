// Package compare builds immutable vocabulary comparisons between two chat participants.
package compare

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/bibaboba/internal/model"
	"github.com/verte-zerg/bibaboba/internal/tokenize"
	"github.com/verte-zerg/bibaboba/internal/vocab"
	"github.com/verte-zerg/bibaboba/internal/wordlist"
)

// ErrIdenticalParticipants is returned when both transcripts belong to the same companion.
var ErrIdenticalParticipants = errors.New("participants must be different")

// Runner produces token sequences for one participant.
type Runner interface {
	Run(ctx context.Context, in tokenize.Input, opts tokenize.Options) (tokenize.Result, error)
}

// Options configures a comparison.
type Options struct {
	Threshold  int
	UseCache   bool
	FlushCache bool
	// Ignore lists words removed from the difference set before ranking.
	Ignore wordlist.Set
}

// DefaultOptions returns threshold 3 with caching enabled.
func DefaultOptions() Options {
	return Options{Threshold: vocab.DefaultThreshold, UseCache: true}
}

// Participant is one side of a comparison.
type Participant struct {
	ID            string
	Name          string
	CacheHit      bool
	CacheBypassed bool
	CacheCorrupt  bool
	CacheStale    bool

	tokens []string
}

// Tokens returns a copy of the participant's token sequence.
func (p Participant) Tokens() []string {
	return append([]string{}, p.tokens...)
}

// TokenCount returns the length of the token sequence.
func (p Participant) TokenCount() int {
	return len(p.tokens)
}

// Comparison holds the vocabulary of the first participant that is rare for the second.
type Comparison struct {
	first      Participant
	second     Participant
	threshold  int
	ignore     wordlist.Set
	difference []string
}

// New tokenizes both transcripts concurrently and computes the difference set once.
// Identical companion ids fail before any tokenization.
func New(ctx context.Context, runner Runner, first, second model.Transcript, opts Options) (*Comparison, error) {
	if err := CheckDistinct(first, second); err != nil {
		return nil, err
	}
	if runner == nil {
		return nil, errors.New("compare: tokenizer is not configured")
	}

	tokOpts := tokenize.Options{UseCache: opts.UseCache, FlushCache: opts.FlushCache}
	var results [2]tokenize.Result
	g, gctx := errgroup.WithContext(ctx)
	for i, tr := range []model.Transcript{first, second} {
		g.Go(func() error {
			res, err := runner.Run(gctx, tokenize.Input{
				ID:       tr.CompanionID,
				Name:     tr.CompanionName,
				Messages: tr.Messages,
			}, tokOpts)
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", tr.CompanionID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return build(
		participant(first, results[0]),
		participant(second, results[1]),
		opts.Threshold,
		opts.Ignore,
	), nil
}

// CheckDistinct fails with ErrIdenticalParticipants when both transcripts share a companion id.
func CheckDistinct(first, second model.Transcript) error {
	if first.CompanionID == second.CompanionID {
		return fmt.Errorf("%w: both transcripts belong to %s", ErrIdenticalParticipants, first.CompanionID)
	}
	return nil
}

func participant(tr model.Transcript, res tokenize.Result) Participant {
	tokens := res.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	return Participant{
		ID:            tr.CompanionID,
		Name:          tr.CompanionName,
		CacheHit:      res.CacheHit,
		CacheBypassed: res.CacheBypassed,
		CacheCorrupt:  res.CacheCorrupt,
		CacheStale:    res.CacheStale,
		tokens:        tokens,
	}
}

func build(first, second Participant, threshold int, ignore wordlist.Set) *Comparison {
	diff := vocab.Difference(first.tokens, second.tokens, threshold)
	if len(ignore) > 0 {
		diff = ignore.Without(diff)
	}
	return &Comparison{
		first:      first,
		second:     second,
		threshold:  threshold,
		ignore:     ignore,
		difference: diff,
	}
}

// Reverse returns the comparison with the participants swapped.
// The token sequences are reused; no tokenization happens.
func (c *Comparison) Reverse() *Comparison {
	return build(c.second, c.first, c.threshold, c.ignore)
}

// First returns the participant whose vocabulary is characterized.
func (c *Comparison) First() Participant {
	return c.first
}

// Second returns the participant used as the baseline.
func (c *Comparison) Second() Participant {
	return c.second
}

// Name returns the first participant's display name.
func (c *Comparison) Name() string {
	return c.first.Name
}

// Threshold returns the rarity threshold the difference was computed with.
func (c *Comparison) Threshold() int {
	return c.threshold
}

// Difference returns a copy of the difference set.
func (c *Comparison) Difference() []string {
	return append([]string{}, c.difference...)
}

// Distinct returns the number of distinct words in the difference set.
func (c *Comparison) Distinct() int {
	return vocab.NewFreqDist(c.difference).Distinct()
}

// ParasiteWords ranks the difference set. Quotients sum to 1 over the returned rows.
func (c *Comparison) ParasiteWords(limit int) []model.RankedWord {
	return vocab.Rank(c.difference, limit)
}

// ParasiteWordsOverTotal ranks the difference set with quotients relative to its full size.
func (c *Comparison) ParasiteWordsOverTotal(limit int) []model.RankedWord {
	return vocab.RankOverTotal(c.difference, limit)
}

// CacheBypassed reports whether tokenization ran without the cache.
func (c *Comparison) CacheBypassed() bool {
	return c.first.CacheBypassed || c.second.CacheBypassed
}
