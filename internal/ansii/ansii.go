package ansii

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI is an escape sequence for plain terminal output, used before the
// full-screen view starts and after it ends.
type ANSI string

const (
	reset  ANSI = "\033[0m"
	bold   ANSI = "\033[1m"
	red    ANSI = "\033[31m"
	green  ANSI = "\033[32m"
	yellow ANSI = "\033[33m"
	blue   ANSI = "\033[34m"
)

type style struct {
	Reset ANSI
	Bold  ANSI
}

type color struct {
	Red    ANSI
	Green  ANSI
	Yellow ANSI
	Blue   ANSI
}

var (
	Styles = style{Reset: reset, Bold: bold}
	Colors = color{Red: red, Green: green, Yellow: yellow, Blue: blue}
)

// Paint wraps text in a style and resets afterwards.
func Paint(text string, style ANSI) string {
	return string(style) + text + string(Styles.Reset)
}

// GetTermSize reports the size of the terminal behind f.
func GetTermSize(f *os.File) (width int, height int, err error) {
	width, height, err = term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return width, height, nil
}

// CheckTerminal fails unless f is an interactive terminal of at least the
// given size.
func CheckTerminal(f *os.File, minWidth, minHeight int) error {
	if !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("%s is not a terminal", f.Name())
	}
	w, h, err := GetTermSize(f)
	if err != nil {
		return err
	}
	if w < minWidth || h < minHeight {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, minWidth, minHeight)
	}
	return nil
}
