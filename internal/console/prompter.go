package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/railwayapp/henvdall/internal/envsync"
	"github.com/railwayapp/henvdall/internal/validator"
)

// ErrNoInput is returned when input ends before an answer is given
var ErrNoInput = errors.New("no input available")

var _ envsync.Prompter = (*TerminalPrompter)(nil)

// TerminalPrompter asks questions on a line-oriented reader
type TerminalPrompter struct {
	in      io.Reader
	reader  *bufio.Reader
	out     io.Writer
	style   styles
	// pending holds a read abandoned by a cancelled prompt
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewTerminalPrompter creates a prompter reading answers from in and writing
// questions to out
func NewTerminalPrompter(in io.Reader, out io.Writer, noColor bool) *TerminalPrompter {
	return &TerminalPrompter{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
		style:  newStyles(lipgloss.NewRenderer(out), noColor),
	}
}

// Confirm asks a yes/no question. An empty answer means yes.
func (p *TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fmt.Fprintf(p.out, "%s %s ", p.style.bold.Render(question), p.style.dim.Render("[Y/n]"))
		answer, err := p.read(ctx, p.readLine)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, p.style.warning.Render("Please answer y or n."))
	}
}

// AskValue asks for the value of key. Sensitive keys are read without echo
// when the input is a terminal.
func (p *TerminalPrompter) AskValue(ctx context.Context, key envsync.MissingKey) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, p.prompt(key))

	if fd := terminalFD(p.in); key.Sensitive && fd >= 0 {
		value, err := p.read(ctx, func() (string, error) {
			value, err := term.ReadPassword(fd)
			return string(value), err
		})
		fmt.Fprintln(p.out)
		return value, err
	}

	return p.read(ctx, p.readLine)
}

// read runs fn in the background and returns early when ctx is done. An
// abandoned read is handed to the next call instead of starting another.
func (p *TerminalPrompter) read(ctx context.Context, fn func() (string, error)) (string, error) {
	if p.pending == nil {
		done := make(chan readResult, 1)
		go func() {
			line, err := fn()
			done <- readResult{line: line, err: err}
		}()
		p.pending = done
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-p.pending:
		p.pending = nil
		return result.line, result.err
	}
}

func (p *TerminalPrompter) prompt(key envsync.MissingKey) string {
	var b strings.Builder
	b.WriteString(p.style.key.Render(key.Key))
	if key.Hint != validator.HintNone {
		b.WriteString(" " + p.style.hint.Render("("+string(key.Hint)+")"))
	}
	if key.Example != "" {
		b.WriteString(" " + p.style.dim.Render("(example: "+key.Example+")"))
	}
	b.WriteString(": ")
	return b.String()
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned as is.
func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
