package colour

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// PreviewWithText returns a colour block with text overlaid in black or white,
// whichever reads better against the sample. Width specifies how many
// characters wide the block should be; longer text is truncated.
func PreviewWithText(s Sample, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg uint8 = 255
	if Measure(s).Lightness > 0.6 {
		fg = 0
	}

	r, g, b := s.RGB8()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, r, g, b, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg + fgCode + display + ansiReset
}

// SupportsANSIColours reports whether w is a terminal that should receive colour codes.
// NO_COLOR disables colour output regardless of the terminal.
func SupportsANSIColours(w io.Writer) bool {
	if DisableColourOutput || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DisableColourOutput turns off colour output regardless of the terminal. The
// --no-color flag sets it.
var DisableColourOutput = false
