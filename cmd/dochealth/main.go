// Package main provides the entry point for the dochealth CLI.
//
// dochealth checks the health of a repository's agent documentation: size
// tiers, staleness, topics duplicated across documents and secret-shaped
// content. It is advisory: problems in the documents are reported, never
// turned into a failing exit status.
//
// Usage:
//
//	dochealth                 # health, duplication and security
//	dochealth health
//	dochealth summarize
//
// See --help for all available options.
package main

import "os"

// main is the entry point for dochealth.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
