package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescDistributing = "Distributing"
	DescIndexing     = "Indexing"
	DescPlanning     = "Planning"
)

// NewProgressBar creates a consistently styled progress bar writing to w.
//
// A negative total renders a spinner; a known total shows the count and
// iterations per second. A nil w discards the output.
//
// Example:
//
//	bar := utils.NewProgressBar(os.Stderr, len(entries), utils.DescDistributing)
//	defer bar.Finish()
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}
