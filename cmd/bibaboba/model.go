package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bibaboba/internal/config"
	"github.com/verte-zerg/bibaboba/internal/punkt"
)

var (
	modelForce bool
	modelURL   string
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the tokenizer model",
	}

	download := &cobra.Command{
		Use:   "download",
		Short: "Download the NLTK punkt tables",
		Args:  cobra.NoArgs,
		RunE:  runModelDownloadCmd,
	}
	download.Flags().BoolVar(&modelForce, "force", false, "download even if the archive is present")
	download.Flags().StringVar(&modelURL, "url", punkt.DefaultURL, "archive URL")

	langs := &cobra.Command{
		Use:   "langs",
		Short: "List languages available in the downloaded model",
		Args:  cobra.NoArgs,
		RunE:  runModelLangsCmd,
	}

	cmd.AddCommand(download, langs)
	return cmd
}

func runModelDownloadCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "url", &modelURL, fileCfg.Model.URL)

	if !modelForce {
		logErrln("Checking tokenizer model...")
	} else {
		logErrf("Downloading %s...\n", modelURL)
	}
	archive, err := punkt.Download(cmd.Context(), punkt.DownloadOptions{
		URL:      modelURL,
		CacheDir: config.DefaultModelDir(),
		Force:    modelForce,
	})
	if err != nil {
		return fmt.Errorf("failed to download tokenizer model: %w", err)
	}
	size := "unknown size"
	if info, err := os.Stat(archive.Path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	if archive.Cached {
		logErrf("Using cached model %s (%s)\n", archive.Path, size)
	} else {
		logErrf("Downloaded model to %s (%s)\n", archive.Path, size)
	}
	logger.Info("tokenizer model ready", "path", archive.Path, "cached", archive.Cached)
	return nil
}

func runModelLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := punkt.ListLanguages(punkt.ArchivePath(config.DefaultModelDir()))
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
