// Package domain holds the paragraph record shared by every pipeline stage
// and the typed errors each stage fails with.
package domain
