// Package cli is the command line boundary of the payout tool.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sheikh-saqib/bulk-payouts/internal/config"
	"github.com/sheikh-saqib/bulk-payouts/internal/input"
	"github.com/sheikh-saqib/bulk-payouts/internal/provider/paypal"
)

const (
	ExitSuccess           = 0
	ExitPayoutFailed      = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInputError        = 4
	ExitInternalError     = 5
)

// Invocation is a parsed command line.
type Invocation struct {
	InputPath       string
	CredentialsPath string // as given; may be empty
	Mode            string
	Help            bool
}

// InvocationError reports bad command line usage. ExitCode is the process
// exit code to use; zero means ExitInvalidInvocation.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation reads `<input-file> [<credentials-file>] [--sandbox]`.
// Flags may appear anywhere; a first argument of "help" asks for usage.
func ParseInvocation(args []string) (Invocation, error) {
	if len(args) > 0 && strings.EqualFold(args[0], "help") {
		return Invocation{Help: true}, nil
	}

	fs := flag.NewFlagSet("payout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sandbox := fs.Bool("sandbox", false, "submit to the sandbox environment")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return Invocation{Help: true}, nil
			}
			return Invocation{}, invalidInvocationf("%v", err)
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	switch {
	case len(positional) == 0:
		return Invocation{}, invalidInvocationf("missing <csv file>")
	case len(positional) > 2:
		return Invocation{}, invalidInvocationf("unexpected arguments: %q", strings.Join(positional[2:], " "))
	}

	inv := Invocation{
		InputPath: positional[0],
		Mode:      paypal.ModeLive,
	}
	if len(positional) == 2 {
		inv.CredentialsPath = positional[1]
	}
	if *sandbox {
		inv.Mode = paypal.ModeSandbox
	}
	return inv, nil
}

// Usage writes the command help text.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: payout <csv file> [<credentials file>] [--sandbox]")
	fmt.Fprintf(w, "Expects columns: %s\n", strings.Join(input.Columns, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "REQUIRED Arguments")
	fmt.Fprintln(w, "<csv file>          csv file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONAL Arguments")
	fmt.Fprintln(w, "help                this message")
	fmt.Fprintf(w, "<credentials file>  credentials file DEFAULT: %s [no extension] in running directory\n", config.DefaultCredentialsPath)
	fmt.Fprintln(w, "--sandbox           sandbox to test payments DEFAULT: live")
}
