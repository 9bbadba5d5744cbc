package main

import (
	"fmt"

	"github.com/dekarrin/parsegen/lr"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the compiled LR(k) action/goto table",
		Example: "  parsegen show -g expr.bnf -k 1",
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Engine == "earley" {
		return fmt.Errorf("show: the earley engine has no table to render (it's a chart recognizer, not a table-driven one)")
	}

	g, _, err := readGrammarFile(cfg.Grammar, cfg.Start)
	if err != nil {
		return err
	}

	root, err := lr.Build[string](g, cfg.K)
	if err != nil {
		return err
	}

	fmt.Println(lr.RenderStates(root))
	return nil
}
