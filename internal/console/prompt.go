package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator for startup values.  It owns the buffered
// reader over stdin, which the interactive loop must reuse so no input
// is lost between the prompts and the chat session.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Reader returns the buffered input for the interactive loop.
func (p *Prompter) Reader() io.Reader { return p.in }

// Ask prints label and returns the trimmed answer, or def when the
// answer is empty.  At end of input the default is returned if there is
// one, otherwise io.EOF.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err == io.EOF {
		p.eof = true
	}
	answer := strings.TrimSpace(line)
	if err != nil && (err != io.EOF || (answer == "" && def == "")) {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskValid repeats Ask until validate accepts the answer.
func (p *Prompter) AskValid(label, def string, validate func(string) error) (string, error) {
	for {
		answer, err := p.Ask(label, def)
		if err != nil {
			return "", err
		}
		if verr := validate(answer); verr != nil {
			if p.eof {
				return "", verr
			}
			fmt.Fprintf(p.out, "→ Invalid value (%v). Try again.\n", verr)
			continue
		}
		return answer, nil
	}
}
