package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/bibaboba/internal/config"
	"github.com/verte-zerg/bibaboba/internal/report"
	"github.com/verte-zerg/bibaboba/internal/store"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or flush cached tokens",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached participants",
		Args:  cobra.NoArgs,
		RunE:  runCacheListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "flush [id...]",
		Short: "Delete cached tokens for the given ids, or everything",
		RunE:  runCacheFlushCmd,
	})
	return cmd
}

func openCache() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultCacheDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close cache: %v\n", cerr)
		}
	}, nil
}

func runCacheListCmd(cmd *cobra.Command, _ []string) error {
	st, closeFn, err := openCache()
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	return report.RenderCacheList(cmd.OutOrStdout(), entries, time.Now(), isTerminal(os.Stdout))
}

func runCacheFlushCmd(cmd *cobra.Command, args []string) error {
	st, closeFn, err := openCache()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	if len(args) == 0 {
		n, err := st.Flush(ctx)
		if err != nil {
			return fmt.Errorf("failed to flush cache: %w", err)
		}
		logErrf("Removed %d cache entries\n", n)
		return nil
	}
	locker := store.NewFileLocker(config.DefaultLockDir())
	for _, id := range args {
		if err := flushOne(cmd, st, locker, id); err != nil {
			return err
		}
		logErrf("Removed %s\n", id)
	}
	return nil
}

func flushOne(cmd *cobra.Command, st *store.Store, locker *store.FileLocker, id string) error {
	unlock, err := locker.Lock(cmd.Context(), id)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			logger.Warn("failed to release cache lock", "participant", id, "error", uerr)
		}
	}()
	if err := st.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to flush %s: %w", id, err)
	}
	return nil
}
