// Package extract turns a PDF into an ordered list of paragraph records.
//
// Text is pulled page by page from a PageSource and split on newline
// boundaries. Every non-blank line becomes one paragraph, so lines the
// renderer wrapped end up as separate records. Two page sources exist:
// "fitz" uses MuPDF through go-fitz and "pure" uses the pure Go
// ledongthuc/pdf reader.
package extract
