// Package rules holds the declarative table of pattern rules evaluated by
// the duplication and security scans.
//
// Each PatternRule pairs a name and a compiled regular expression with a
// category and a severity. Scans iterate the table uniformly, so adding a
// check is a one-line change to Defaults or an entry in the config file.
package rules
