package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/parsegen/bnf"
	"github.com/dekarrin/parsegen/grammar"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively accept/reject lines against a grammar",
		Long: `repl starts an interactive session for testing a grammar one
line at a time. A line of plain text is tokenized and checked against the
currently loaded grammar; a line starting with ":" is a meta-command:

  :load <file>         load a new grammar file
  :start <name>        change the start nonterminal
  :k <n>                change the lookahead (lr engine only)
  :engine <lr|earley>  change the recognition engine
  :quit                 exit the repl`,
		RunE: runRepl,
	}
	rootCmd.AddCommand(cmd)
}

// replState is the currently loaded grammar and build parameters, rebuilt
// lazily (on the next plain-text line) whenever a meta-command changes one
// of them.
type replState struct {
	g      *grammar.Grammar[string]
	src    string
	start  string
	k      int
	engine string
	rec    recognizer
	dirty  bool
}

func (s *replState) ensureBuilt() error {
	if !s.dirty && s.rec != nil {
		return nil
	}
	rec, err := buildRecognizer(s.g, s.k, s.engine)
	if err != nil {
		return err
	}
	s.rec = rec
	s.dirty = false
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig(cmd)
	if err != nil {
		return err
	}

	g, src, err := readGrammarFile(cfg.Grammar, cfg.Start)
	if err != nil {
		return err
	}

	st := &replState{g: g, src: src, start: cfg.Start, k: cfg.K, engine: cfg.Engine, dirty: true}

	rl, err := readline.NewEx(&readline.Config{Prompt: "parsegen> "})
	if err != nil {
		return fmt.Errorf("repl: create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit, err := st.runMeta(line); err != nil {
				fmt.Printf("error: %v\n", err)
			} else if quit {
				return nil
			}
			continue
		}

		if err := st.ensureBuilt(); err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		ok, err := st.rec.Accept(tokenizeLine(line))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if ok {
			fmt.Println("accept")
		} else {
			fmt.Println("reject")
		}
	}
}

// runMeta handles one ":"-prefixed command, splitting it the same way a
// shell would (so a quoted grammar path containing spaces works), and
// reports whether the repl should exit.
func (s *replState) runMeta(line string) (quit bool, err error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse command: %w", err)
	}
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case ":quit", ":q":
		return true, nil

	case ":load":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: :load <file>")
		}
		g, src, err := readGrammarFile(fields[1], s.start)
		if err != nil {
			return false, err
		}
		s.g, s.src = g, src
		s.dirty = true
		return false, nil

	case ":start":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: :start <name>")
		}
		g, err := bnf.Read(s.src, fields[1])
		if err != nil {
			return false, err
		}
		s.start = fields[1]
		s.g = g
		s.dirty = true
		return false, nil

	case ":k":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: :k <n>")
		}
		var n int
		if _, err := fmt.Sscanf(fields[1], "%d", &n); err != nil || n < 1 {
			return false, fmt.Errorf(":k wants a positive integer, got %q", fields[1])
		}
		s.k = n
		s.dirty = true
		return false, nil

	case ":engine":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: :engine <lr|earley>")
		}
		s.engine = fields[1]
		s.dirty = true
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}
