// Package prompt collects rename values interactively.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask writes question and returns the answer without its line terminator.
// A final line without a newline is accepted; io.EOF is returned only when no
// input is left at all.
func (p *Prompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FillRenames asks for every name in pair that is still empty, in the order
// old database, old schema, new database, new schema.
func (p *Prompter) FillRenames(pair *models.RenamePair) error {
	fields := []struct {
		question string
		value    *string
	}{
		{"Enter the old database name: ", &pair.OldDatabase},
		{"Enter the old schema name: ", &pair.OldSchema},
		{"Enter the new database name: ", &pair.NewDatabase},
		{"Enter the new schema name: ", &pair.NewSchema},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		answer, err := p.Ask(f.question)
		if err != nil {
			return fmt.Errorf("failed to read answer to %q: %w", strings.TrimSpace(f.question), err)
		}
		*f.value = answer
	}
	return nil
}
