// Package output persists translated paragraph records. The JSON writer
// produces the primary result file; an optional SQLite exporter and an
// archiver for previous results are also provided.
package output
