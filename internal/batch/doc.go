// Package batch reads lists of PDF sources to translate in one run.
package batch
