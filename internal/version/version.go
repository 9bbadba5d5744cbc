// Package version contains the current version of parsegen. It is split
// from the main program for easy use.
package version

// Current is the string representing the current version of parsegen.
const Current = "0.1.0"
