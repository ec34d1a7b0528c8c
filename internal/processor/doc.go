// Package processor drives the translation pipeline for pdftranslate.
// It resolves a source to a local PDF, extracts its paragraphs,
// translates each one in order and persists the result. Batch files
// run the same pipeline once per listed source.
package processor
