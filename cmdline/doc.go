// Package cmdline assembles native command lines and environment blocks.
//
// Quoting follows the rules native argument parsers apply when they split a
// command line back into arguments: an argument is wrapped in double quotes
// only when it is empty or contains a space, tab, or double quote; inside a
// quoted argument a literal quote is escaped with a backslash, and a run of
// backslashes is doubled only when it precedes a quote.
//
// Arguments that need no quoting are returned unchanged without allocating.
package cmdline
