package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
)

var (
	commandStyle = color.New(color.FgCyan, color.OpBold)
	passStyle    = color.New(color.FgGreen, color.OpBold)
	failStyle    = color.New(color.FgRed, color.OpBold)
)

// Banner echoes commands and session outcomes to the user's terminal. A nil
// *Banner is valid and prints nothing.
type Banner struct {
	w       io.Writer
	prefix  string
	colored bool
}

// NewBanner creates a Banner writing to w. Colour codes are emitted only
// when colored is true.
func NewBanner(w io.Writer, prefix string, colored bool) *Banner {
	return &Banner{w: w, prefix: prefix, colored: colored}
}

// Command prints "prefix > argv...".
func (b *Banner) Command(argv []string) {
	if b == nil {
		return
	}
	b.line(commandStyle, strings.Join(argv, " "))
}

// Outcome prints a one-line summary for a finished session.
func (b *Banner) Outcome(session string, err error, elapsed time.Duration) {
	if b == nil {
		return
	}
	elapsed = elapsed.Round(time.Millisecond)
	if err != nil {
		b.line(failStyle, fmt.Sprintf("Session %s failed in %s: %v", session, elapsed, err))
		return
	}
	b.line(passStyle, fmt.Sprintf("Session %s was successful in %s.", session, elapsed))
}

func (b *Banner) line(style color.Style, msg string) {
	text := fmt.Sprintf("%s > %s", b.prefix, msg)
	if b.colored {
		text = style.Sprint(text)
	}
	fmt.Fprintln(b.w, text)
}
