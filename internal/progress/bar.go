// Package progress renders translation progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Bar wraps a progressbar instance for per-paragraph progress
type Bar struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// New creates a bar with the given total, writing to out (stderr if nil)
func New(total int, description string, out io.Writer) *Bar {
	if out == nil {
		out = os.Stderr
	}

	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("paragraphs"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &Bar{bar: bar, out: out}
}

// Describe updates the text shown next to the bar
func (b *Bar) Describe(description string) {
	b.bar.Describe(description)
}

// Set moves the bar to current
func (b *Bar) Set(current int) {
	_ = b.bar.Set(current)
}

// Finish completes the bar
func (b *Bar) Finish() {
	_ = b.bar.Finish()
}
