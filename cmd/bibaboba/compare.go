package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bibaboba/internal/browse"
	"github.com/verte-zerg/bibaboba/internal/compare"
	"github.com/verte-zerg/bibaboba/internal/config"
	"github.com/verte-zerg/bibaboba/internal/model"
	"github.com/verte-zerg/bibaboba/internal/punkt"
	"github.com/verte-zerg/bibaboba/internal/report"
	"github.com/verte-zerg/bibaboba/internal/store"
	"github.com/verte-zerg/bibaboba/internal/tokenize"
	"github.com/verte-zerg/bibaboba/internal/transcript"
	"github.com/verte-zerg/bibaboba/internal/vocab"
	"github.com/verte-zerg/bibaboba/internal/wordlist"
)

const (
	defaultLimit    = 10
	defaultFormat   = "table"
	defaultQuotient = "window"

	cacheDisabledWarning = "Warning, cache is disabled. This may significantly slow down the process."
)

var (
	compareThreshold   int
	compareLimit       int
	compareNoCache     bool
	compareFlushCache  bool
	compareLang        string
	compareFormat      string
	compareQuotient    string
	compareIgnore      string
	compareBoth        bool
	compareInteractive bool
	compareTokens      bool
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Show words characteristic of the first participant",
		Long: "Reads two Telegram Desktop personal chat exports (result.json) and lists the words\n" +
			"the first companion uses that the second companion uses fewer than --threshold times.",
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}
	cmd.Flags().IntVar(&compareThreshold, "threshold", vocab.DefaultThreshold, "keep words the other participant used fewer times than this")
	cmd.Flags().IntVar(&compareLimit, "limit", defaultLimit, "number of ranked words to show")
	cmd.Flags().BoolVar(&compareNoCache, "no-cache", false, "tokenize without reading or writing the cache")
	cmd.Flags().BoolVar(&compareFlushCache, "flush-cache", false, "retokenize and overwrite cached tokens")
	cmd.Flags().StringVar(&compareLang, "lang", tokenize.DefaultLanguage, "tokenizer language (see: bibaboba model langs)")
	cmd.Flags().StringVar(&compareFormat, "format", defaultFormat, "output format (table, tsv, json)")
	cmd.Flags().StringVar(&compareQuotient, "quotient", defaultQuotient, "quotient denominator (window, total)")
	cmd.Flags().StringVar(&compareIgnore, "ignore", "", "word list file with words to exclude")
	cmd.Flags().BoolVar(&compareBoth, "both", false, "also compare the second participant against the first")
	cmd.Flags().BoolVar(&compareInteractive, "interactive", false, "browse results in a TUI")
	cmd.Flags().BoolVar(&compareTokens, "tokens", false, "only print token counts")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := compareConfig(cmd)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	first, err := transcript.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	second, err := transcript.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	if err := compare.CheckDistinct(first, second); err != nil {
		return err
	}

	var ignore wordlist.Set
	if cfg.IgnorePath != "" {
		ignore, err = wordlist.LoadSet(cfg.IgnorePath)
		if err != nil {
			return fmt.Errorf("failed to load ignore list: %w", err)
		}
	}

	seg := tokenize.NewLazy(punkt.ArchivePath(config.DefaultModelDir()), cfg.Language)

	var cache tokenize.Cache
	var locker tokenize.Locker
	if cfg.UseCache {
		st, err := store.Open(config.DefaultCacheDBPath())
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close cache: %v\n", cerr)
			}
		}()
		cache = st
		locker = store.NewFileLocker(config.DefaultLockDir())
	}

	pipeline := tokenize.NewPipeline(seg, cache, locker, logger)
	cmp, err := compare.New(cmd.Context(), pipeline, first, second, compare.Options{
		Threshold:  cfg.Threshold,
		UseCache:   cfg.UseCache,
		FlushCache: cfg.FlushCache,
		Ignore:     ignore,
	})
	if err != nil {
		return err
	}
	if cmp.CacheBypassed() {
		logErrln(cacheDisabledWarning)
	}

	out := cmd.OutOrStdout()
	if cfg.TokensOnly {
		return report.RenderTokenCounts(out, summaryParticipants(cmp))
	}

	comparisons := []*compare.Comparison{cmp}
	if cfg.Both {
		comparisons = append(comparisons, cmp.Reverse())
	}

	if cfg.Interactive {
		return runBrowser(cmd.Context(), comparisons, cfg)
	}

	rankings := make([]report.Ranking, 0, len(comparisons))
	for _, c := range comparisons {
		rankings = append(rankings, report.Ranking{
			ID:        c.First().ID,
			Name:      c.First().Name,
			Against:   c.Second().Name,
			Threshold: c.Threshold(),
			Words:     rankWords(c, cfg.Quotient, cfg.Limit),
		})
	}
	pretty := format == report.FormatTable && isTerminal(os.Stdout)
	if err := report.Render(out, rankings, report.Options{Format: format, Pretty: pretty}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if format == report.FormatTable {
		parts := summaryParticipants(cmp)
		return report.RenderSummary(cmd.ErrOrStderr(), report.Summary{
			First:          parts[0],
			Second:         parts[1],
			Threshold:      cmp.Threshold(),
			DifferenceSize: len(cmp.Difference()),
			Distinct:       cmp.Distinct(),
		})
	}
	return nil
}

func compareConfig(cmd *cobra.Command) (model.Config, error) {
	fc := fileCfg.Compare
	applyIntConfig(cmd, "threshold", &compareThreshold, fc.Threshold)
	applyIntConfig(cmd, "limit", &compareLimit, fc.Limit)
	applyStringConfig(cmd, "lang", &compareLang, fc.Language)
	applyStringConfig(cmd, "format", &compareFormat, fc.Format)
	applyStringConfig(cmd, "quotient", &compareQuotient, fc.Quotient)
	applyStringConfig(cmd, "ignore", &compareIgnore, fc.Ignore)
	if fc.Cache != nil && !cmd.Flags().Changed("no-cache") {
		compareNoCache = !*fc.Cache
	}

	cfg := model.Config{
		Threshold:   compareThreshold,
		Limit:       compareLimit,
		UseCache:    !compareNoCache,
		FlushCache:  compareFlushCache,
		Language:    compareLang,
		Format:      compareFormat,
		Quotient:    strings.ToLower(strings.TrimSpace(compareQuotient)),
		IgnorePath:  compareIgnore,
		Both:        compareBoth,
		Interactive: compareInteractive,
		TokensOnly:  compareTokens,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	if cfg.Quotient != "window" && cfg.Quotient != "total" {
		return fmt.Errorf("--quotient must be window or total")
	}
	if cfg.FlushCache && !cfg.UseCache {
		return fmt.Errorf("--flush-cache cannot be combined with --no-cache")
	}
	if cfg.Interactive && !isTerminal(os.Stdout) {
		return fmt.Errorf("--interactive requires a terminal")
	}
	if cfg.Interactive && cfg.TokensOnly {
		return fmt.Errorf("--interactive cannot be combined with --tokens")
	}
	return nil
}

func rankWords(c *compare.Comparison, quotient string, limit int) []model.RankedWord {
	if quotient == "total" {
		return c.ParasiteWordsOverTotal(limit)
	}
	return c.ParasiteWords(limit)
}

func summaryParticipants(cmp *compare.Comparison) []report.Participant {
	out := make([]report.Participant, 0, 2)
	for _, p := range []compare.Participant{cmp.First(), cmp.Second()} {
		out = append(out, report.Participant{
			ID:     p.ID,
			Name:   p.Name,
			Tokens: p.TokenCount(),
			Cached: p.CacheHit,
		})
	}
	return out
}

func runBrowser(ctx context.Context, comparisons []*compare.Comparison, cfg model.Config) error {
	tabs := make([]browse.Tab, 0, len(comparisons))
	for _, c := range comparisons {
		tabs = append(tabs, browse.Tab{
			Title: fmt.Sprintf("%s vs %s", c.First().Name, c.Second().Name),
			Rank: func(limit int) []model.RankedWord {
				return rankWords(c, cfg.Quotient, limit)
			},
		})
	}
	info := fmt.Sprintf("threshold=%d  quotient=%s", cfg.Threshold, cfg.Quotient)
	program := tea.NewProgram(browse.NewModel(tabs, cfg.Limit, info), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
