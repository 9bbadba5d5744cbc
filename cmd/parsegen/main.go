/*
Parsegen builds a parser from a BNF-like grammar file and checks whether
lines of input are accepted by it.

Usage:

	parsegen [flags] <command>

The commands are:

	build   compile a grammar to a cache file
	check   accept/reject lines against a grammar
	repl    accept/reject lines interactively
	show    print the compiled LR(k) table

Run "parsegen <command> -h" for the flags each command accepts.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/parsegen/internal/version"
	"github.com/spf13/pflag"
)

var flagVersion = pflag.BoolP("version", "v", false, "Print the parsegen version and exit")

func main() {
	// The subcommands below register their own flags on cobra's FlagSets,
	// not on pflag.CommandLine, so this Parse only ever recognizes
	// --version/-v here. Without the whitelist, an unrelated subcommand
	// flag (e.g. "build -g expr.bnf") would make pflag abort with an
	// "unknown flag" error before cobra ever sees it.
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
