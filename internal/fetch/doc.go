// Package fetch downloads PDF documents into local temporary files. It
// accepts http(s) URLs as well as local paths and file:// URLs.
package fetch
