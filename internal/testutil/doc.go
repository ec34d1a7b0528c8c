// Package testutil provides mocks and helpers shared by the package tests,
// including a generator for small text PDFs.
package testutil
