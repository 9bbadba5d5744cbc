package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds the flags common to every subcommand: which grammar file
// to read, which nonterminal to start from, how many tokens of lookahead
// to use, which engine to run, and where to look for a parsegen.toml config
// file. Grounded on vartan's cmd/vartan (cobra.Command per subcommand, a
// package-level flags struct filled in init()).
var rootFlags = struct {
	configPath *string
	grammar    *string
	start      *string
	k          *int
	engine     *string
	cache      *string
}{}

var rootCmd = &cobra.Command{
	Use:   "parsegen",
	Short: "Build and exercise bounded-lookahead parsers from a BNF grammar",
	Long: `parsegen reads a BNF-like grammar (<name> ::= rhs (| rhs)* ;) and
builds either an Earley chart recognizer or a canonical LR(k) table from it,
then checks whether lines of whitespace-separated tokens are accepted.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.configPath = rootCmd.PersistentFlags().String("config", "parsegen.toml", "Path to a parsegen.toml config file providing defaults")
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "Path to the BNF grammar file")
	rootFlags.start = rootCmd.PersistentFlags().StringP("start", "s", "", "Start nonterminal name (default from config, else \"start\")")
	rootFlags.k = rootCmd.PersistentFlags().IntP("k", "k", 0, "Tokens of lookahead (default from config, else 1)")
	rootFlags.engine = rootCmd.PersistentFlags().StringP("engine", "e", "", "Recognition engine: \"lr\" or \"earley\" (default from config, else \"lr\")")
	rootFlags.cache = rootCmd.PersistentFlags().String("cache", "", "Path to a compiled-grammar cache file")
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// resolvedConfig merges the parsegen.toml config at rootFlags.configPath
// with whatever flags were actually passed on the command line, flags
// taking precedence.
func resolvedConfig(cmd *cobra.Command) (config, error) {
	cfg, err := loadConfig(*rootFlags.configPath)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("grammar") {
		cfg.Grammar = *rootFlags.grammar
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = *rootFlags.start
	}
	if cmd.Flags().Changed("k") {
		cfg.K = *rootFlags.k
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = *rootFlags.engine
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache = *rootFlags.cache
	}

	if cfg.Grammar == "" {
		return config{}, fmt.Errorf("no grammar file given (use --grammar or set it in %s)", *rootFlags.configPath)
	}

	return cfg, nil
}
