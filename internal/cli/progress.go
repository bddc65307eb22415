package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"codeberg.org/snonux/vocabtrans/internal/processor"
)

// NewProgressBar creates a stderr progress bar over total entries
func NewProgressBar(total int) processor.Progress {
	return newProgressBar(os.Stderr, total, isatty.IsTerminal(os.Stderr.Fd()))
}

// newProgressBar renders to w. Colour markup is only used when color is set,
// otherwise it would be printed literally.
func newProgressBar(w io.Writer, total int, color bool) *progressbar.ProgressBar {
	description := "translating"
	theme := progressbar.Theme{
		Saucer:        "=",
		SaucerHead:    ">",
		SaucerPadding: " ",
		BarStart:      "[",
		BarEnd:        "]",
	}
	if color {
		description = "[cyan]translating[reset]"
		theme.Saucer = "[green]=[reset]"
		theme.SaucerHead = "[green]>[reset]"
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(color),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(theme),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
