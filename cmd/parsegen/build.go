package main

import (
	"fmt"

	"github.com/dekarrin/parsegen/internal/cache"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Compile a grammar and write a cache file recording it",
		Example: "  parsegen build -g expr.bnf --cache expr.cache",
		RunE:    runBuild,
	}
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Cache == "" {
		return fmt.Errorf("no cache file given (use --cache or set it in %s)", *rootFlags.configPath)
	}

	g, src, err := readGrammarFile(cfg.Grammar, cfg.Start)
	if err != nil {
		return err
	}

	// Build once up front so a malformed grammar (a shift/reduce or
	// reduce/reduce conflict at this k) is caught at build time rather
	// than on the first "check"/"repl" invocation that loads the cache.
	if _, err := buildRecognizer(g, cfg.K, cfg.Engine); err != nil {
		return fmt.Errorf("build %s engine: %w", cfg.Engine, err)
	}

	snap, err := cache.NewSnapshot(src, cfg.Start, cfg.K, cfg.Engine)
	if err != nil {
		return err
	}
	if err := cache.Save(cfg.Cache, snap); err != nil {
		return err
	}

	fmt.Printf("built %s (engine=%s k=%d start=%s) -> %s\n", cfg.Grammar, cfg.Engine, cfg.K, cfg.Start, cfg.Cache)
	return nil
}
