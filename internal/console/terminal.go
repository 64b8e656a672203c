package console

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if stdin is a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalFD returns the descriptor of r when it is a terminal, or -1
func terminalFD(r io.Reader) int {
	f, ok := r.(*os.File)
	if !ok {
		return -1
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return -1
	}
	return fd
}
