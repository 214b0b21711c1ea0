package trade

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter abstracts interactive input so the construction flow can be
// driven by a terminal or by a test script.
type Prompter interface {
	// Ask prints the prompt and returns one trimmed line of input.
	Ask(prompt string) (string, error)

	// Choose presents numbered options and returns the selected index.
	Choose(prompt string, options []string) (int, error)

	// Confirm asks a yes/no question, defaulting to no.
	Confirm(prompt string) (bool, error)
}

// TerminalPrompter implements Prompter over a line-based reader and
// writer, usually stdin/stdout.
type TerminalPrompter struct {
	writer  io.Writer
	scanner *bufio.Scanner
}

// NewTerminalPrompter creates a prompter reading from r and writing to w.
func NewTerminalPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		writer:  w,
		scanner: bufio.NewScanner(r),
	}
}

func (p *TerminalPrompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Ask prints the prompt and returns one line of input.
func (p *TerminalPrompter) Ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.writer, prompt)
	return p.readLine()
}

// Choose presents numbered options and re-prompts until a valid number
// is entered.
func (p *TerminalPrompter) Choose(prompt string, options []string) (int, error) {
	_, _ = fmt.Fprintln(p.writer, prompt)
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, opt)
	}

	for {
		_, _ = fmt.Fprint(p.writer, "> ")
		input, err := p.readLine()
		if err != nil {
			return 0, err
		}
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(options) {
			_, _ = fmt.Fprintf(p.writer, "Please enter a number between 1 and %d.\n", len(options))
			continue
		}
		return idx - 1, nil
	}
}

// Confirm asks a yes/no question. Anything other than y/yes counts as no.
func (p *TerminalPrompter) Confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprintf(p.writer, "%s [y/N] ", prompt)
	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	input = strings.ToLower(input)
	return input == "y" || input == "yes", nil
}
