package envsync

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	flagutils "github.com/temirov/envsync/internal/utils/flags"
)

const (
	unsupportedColorModeTemplateConstant = "unsupported color mode: %s"
)

// ColorMode selects whether reports are colorized.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

// ColorModeChoices lists the accepted color mode values.
var ColorModeChoices = []string{string(ColorModeAuto), string(ColorModeAlways), string(ColorModeNever)}

// ParseColorMode normalizes a configured color mode.
func ParseColorMode(value string) (ColorMode, error) {
	choice, matched := flagutils.MatchChoice(value, string(ColorModeAuto), ColorModeChoices)
	if !matched {
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, value)
	}
	return ColorMode(choice), nil
}

// TerminalDetector reports whether the writer is attached to a terminal.
type TerminalDetector func(writer io.Writer) bool

// IsTerminalWriter reports whether writer is an *os.File connected to a terminal.
func IsTerminalWriter(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// NewRenderer builds a lipgloss renderer whose color profile follows the mode.
func NewRenderer(writer io.Writer, mode ColorMode, detector TerminalDetector) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(writer)

	switch mode {
	case ColorModeAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	case ColorModeNever:
		renderer.SetColorProfile(termenv.Ascii)
	default:
		if detector == nil {
			detector = IsTerminalWriter
		}
		if detector(writer) {
			renderer.SetColorProfile(termenv.EnvColorProfile())
		} else {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}

	return renderer
}
