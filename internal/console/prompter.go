// Package console runs the numbered text menus that drive the ledger and the
// catalog.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// ErrInvalidNumber is returned when an answer cannot be parsed as a number.
var ErrInvalidNumber = errors.New("invalid number")

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	headingColor = color.New(color.FgCyan, color.Bold)
)

// Prompter reads one answer per line. Prompts are printed only when the input
// is an interactive terminal, so piped sessions produce clean output.
//
// Lines are scanned on a separate goroutine so a read can be abandoned when
// its context is cancelled.
type Prompter struct {
	scanner     *bufio.Scanner
	out         io.Writer
	interactive bool

	start sync.Once
	lines chan answer
}

type answer struct {
	text string
	err  error
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Prompter{
		scanner:     bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
		lines:       make(chan answer),
	}
}

func (p *Prompter) scan() {
	defer close(p.lines)
	for p.scanner.Scan() {
		p.lines <- answer{text: strings.TrimSpace(p.scanner.Text())}
	}
	if err := p.scanner.Err(); err != nil {
		p.lines <- answer{err: err}
	}
}

// Line prints prompt and returns the next trimmed line. It returns io.EOF
// once the input is exhausted and ctx.Err() as soon as ctx is done. A line
// that arrives together with the cancellation is dropped.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.interactive {
		_, _ = fmt.Fprint(p.out, prompt)
	}
	p.start.Do(func() { go p.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-p.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !ok {
			return "", io.EOF
		}
		return a.text, a.err
	}
}

// Decimal reads a decimal number.
func (p *Prompter) Decimal(ctx context.Context, prompt string) (decimal.Decimal, error) {
	s, err := p.Line(ctx, prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return d, nil
}

// Int reads a base-10 integer.
func (p *Prompter) Int(ctx context.Context, prompt string) (int, error) {
	s, err := p.Line(ctx, prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

func success(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	_, _ = failureColor.Fprintf(w, format+"\n", args...)
}

func heading(w io.Writer, title string) {
	_, _ = headingColor.Fprintln(w, title)
}
