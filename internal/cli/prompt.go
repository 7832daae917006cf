package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
)

// Selection is a scheme and delivery mode picked from the menu.
type Selection struct {
	Scheme   string
	Delivery string
}

// menuChoices maps menu entries 1-4 to selections.
var menuChoices = [...]Selection{
	{Scheme: config.SchemeRange, Delivery: config.DeliveryImmediate},
	{Scheme: config.SchemeRange, Delivery: config.DeliveryDeferred},
	{Scheme: config.SchemeDivisor, Delivery: config.DeliveryImmediate},
	{Scheme: config.SchemeDivisor, Delivery: config.DeliveryDeferred},
}

const menuText = `Choose approach:
  1) Scheme A (range partition) + immediate printing
  2) Scheme A (range partition) + print after
  3) Scheme B (divisor-splitting, up to sqrt) + immediate printing
  4) Scheme B (divisor-splitting, up to sqrt) + print after
Enter choice (1-4): `

// isTerminal is replaced in tests.
var isTerminal = term.IsTerminal

// ShouldPrompt reports whether the interactive menu must be shown: always
// with --interactive, otherwise only when the selection is incomplete and
// fd is a terminal.
func ShouldPrompt(cfg config.AppConfig, fd int) bool {
	if cfg.Interactive {
		return true
	}
	if !cfg.NeedsSelection() || cfg.Quiet || cfg.TUI {
		return false
	}
	return isTerminal(fd)
}

// PromptSelection prints the menu to out and reads choices from in until one
// of 1-4 is entered. Invalid entries are reported on errOut. Running out of
// input is a ConfigError.
func PromptSelection(in io.Reader, out, errOut io.Writer) (Selection, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, menuText)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Selection{}, apperrors.NewConfigError("reading choice: %v", err)
			}
			fmt.Fprintln(out)
			return Selection{}, apperrors.NewConfigError("no approach chosen: input closed")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(menuChoices) {
			fmt.Fprintf(errOut, "Invalid choice. Please enter a number between 1 and %d.\n", len(menuChoices))
			continue
		}
		return menuChoices[choice-1], nil
	}
}

// ApplySelection returns cfg with the scheme and delivery of sel.
func ApplySelection(cfg config.AppConfig, sel Selection) config.AppConfig {
	cfg.Scheme = sel.Scheme
	cfg.Delivery = sel.Delivery
	return cfg
}
