package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dekarrin/parsegen/internal/cache"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [line...]",
		Short: "Accept or reject lines of whitespace-separated tokens against a grammar",
		Example: "  parsegen check -g expr.bnf \"a + a\"\n" +
			"  parsegen check -g expr.bnf < lines.txt",
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig(cmd)
	if err != nil {
		return err
	}

	g, src, err := readGrammarFile(cfg.Grammar, cfg.Start)
	if err != nil {
		return err
	}

	if cfg.Cache != "" {
		if snap, err := cache.Load(cfg.Cache); err == nil && snap.Stale(src, cfg.Start, cfg.K, cfg.Engine) {
			fmt.Fprintf(os.Stderr, "warning: cache %s is stale for this grammar/start/k/engine; run \"parsegen build\" to refresh it\n", cfg.Cache)
		}
	}

	rec, err := buildRecognizer(g, cfg.K, cfg.Engine)
	if err != nil {
		return err
	}

	lines := args
	if len(lines) == 0 {
		lines, err = readLines(os.Stdin)
		if err != nil {
			return err
		}
	}

	exitCode := 0
	for _, line := range lines {
		ok, err := rec.Accept(tokenizeLine(line))
		if err != nil {
			return fmt.Errorf("check %q: %w", line, err)
		}
		if ok {
			fmt.Printf("accept\t%s\n", line)
		} else {
			fmt.Printf("reject\t%s\n", line)
			exitCode = 1
		}
	}

	if exitCode != 0 {
		return errRejected
	}
	return nil
}

// errRejected is returned by runCheck when at least one input line was
// rejected, so the process exits non-zero without cobra also printing a
// spurious error message (SilenceErrors handles that at the root).
var errRejected = fmt.Errorf("one or more lines were rejected")

func readLines(f *os.File) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
