// Package relevance scores how relevant a control is to a risk and the other
// way around, and ranks collections of either into recommendation lists.
//
// Everything in this package is a pure function of its arguments. Keyword
// sets, weights and thresholds are package constants; nothing is cached and no
// state is shared between calls, so all functions are safe for concurrent use.
package relevance
