// Package prompt asks the user to confirm destructive CLI actions.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gedeza/business-consulting/core/ports"
)

// Confirmer reads a yes/no answer from in after writing the prompt to out
type Confirmer struct {
	in  *bufio.Reader
	out io.Writer

	// AssumeYes answers every prompt with yes without reading input
	AssumeYes bool
}

// New creates a confirmer over in and out
func New(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out}
}

// Confirm returns true only for "y" or "yes". End of input counts as no.
func (c *Confirmer) Confirm(prompt string) (bool, error) {
	if c.AssumeYes {
		return true, nil
	}
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, eris.Wrap(err, "prompt: write")
	}

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, eris.Wrap(err, "prompt: read")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

var _ ports.Confirmer = (*Confirmer)(nil)
