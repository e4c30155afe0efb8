package classify

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator to classify integrations, one line of input per
// prompt. Reading blocks until the operator answers; end of input resolves to
// Skip for the current and all further prompts.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	reprompt bool
}

// NewPrompter returns a prompter over the given streams. When reprompt is
// true, unrecognized input loops instead of resolving to skip; the policy is
// uniform for the whole run.
func NewPrompter(in io.Reader, out io.Writer, reprompt bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, reprompt: reprompt}
}

// Ask renders the four-option prompt for the named integration and parses one
// line of input.
func (p *Prompter) Ask(name string) (Choice, error) {
	for {
		fmt.Fprintf(p.out, "\nSelect the integration_type for %s\n", name)
		for i, t := range Types() {
			fmt.Fprintf(p.out, "  [%d] %s\n", i+1, t)
		}
		fmt.Fprintln(p.out, "  [0] skip")
		fmt.Fprint(p.out, "> ")

		line, err := p.in.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")

		choice, ok := ParseChoice(line)
		if ok || !p.reprompt || err != nil {
			return choice, nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q. Enter device, service, hub, or skip.\n", strings.TrimSpace(line))
	}
}
