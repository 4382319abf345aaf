// Package clip copies share links to the system clipboard.
package clip

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported means no clipboard utility is available (e.g. a headless
// Linux box without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System writes to the OS clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Disabled always fails, forcing the displayed-link fallback.
type Disabled struct{}

func (Disabled) WriteAll(string) error { return ErrUnsupported }
