package trade

import (
	"fmt"
	"strconv"
)

// ScriptPrompter implements Prompter from a fixed list of answers. It
// exists for tests that drive the interactive flow without a terminal.
type ScriptPrompter struct {
	answers []string
	pos     int
}

// NewScriptPrompter creates a prompter that replays the given answers in
// order.
func NewScriptPrompter(answers ...string) *ScriptPrompter {
	return &ScriptPrompter{answers: answers}
}

func (p *ScriptPrompter) next() (string, error) {
	if p.pos >= len(p.answers) {
		return "", fmt.Errorf("script exhausted after %d answers", len(p.answers))
	}
	answer := p.answers[p.pos]
	p.pos++
	return answer, nil
}

// Ask returns the next scripted answer.
func (p *ScriptPrompter) Ask(string) (string, error) {
	return p.next()
}

// Choose matches the next scripted answer against the option texts, or
// interprets it as a 1-based number.
func (p *ScriptPrompter) Choose(_ string, options []string) (int, error) {
	answer, err := p.next()
	if err != nil {
		return 0, err
	}
	for i, opt := range options {
		if opt == answer {
			return i, nil
		}
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(options) {
		return 0, fmt.Errorf("scripted answer %q matches no option", answer)
	}
	return idx - 1, nil
}

// Confirm interprets the next scripted answer as yes/no.
func (p *ScriptPrompter) Confirm(string) (bool, error) {
	answer, err := p.next()
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}
