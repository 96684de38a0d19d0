package ui

import "golang.org/x/term"

const defaultWidth = 80

// IsTTY reports whether the given file descriptor refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// TermWidth returns the terminal width in columns, or 80 if it cannot be determined.
func TermWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// FitWidth returns the number of samples that fit on one line of the
// terminal at fd, or 0 (no limit) when fd is not a terminal. symbolCells is
// the display width of one ramp symbol.
func FitWidth(fd uintptr, symbolCells int) int {
	if !IsTTY(fd) {
		return 0
	}
	if symbolCells < 1 {
		symbolCells = 1
	}
	return max(TermWidth(fd)/symbolCells, 1)
}
