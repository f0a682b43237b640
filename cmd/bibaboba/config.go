package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/bibaboba/internal/config"
	"github.com/verte-zerg/bibaboba/internal/punkt"
	"github.com/verte-zerg/bibaboba/internal/tokenize"
	"github.com/verte-zerg/bibaboba/internal/vocab"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bibaboba configuration
# Uncomment a value to enable it. CLI flags override config values.

[compare]
# threshold = %d          # Keep words the other participant used fewer times than this
# limit = %d             # Number of ranked words to show
# cache = true            # Reuse tokenized messages between runs
# language = %q    # Tokenizer language
# format = %q        # Output format: table, tsv, json
# quotient = %q     # Quotient denominator: window, total
# ignore = ""             # Word list file with words to exclude

[model]
# url = %q

[log]
# level = "warn"          # debug, info, warn, error
# format = "text"         # text, json
`,
		vocab.DefaultThreshold,
		defaultLimit,
		tokenize.DefaultLanguage,
		defaultFormat,
		defaultQuotient,
		punkt.DefaultURL,
	)
}
