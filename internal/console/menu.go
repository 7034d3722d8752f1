package console

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// item is one numbered menu entry. An item without a run function exits.
type item struct {
	label string
	run   func(context.Context) error
}

type menu struct {
	title   string
	items   []item
	prompt  *Prompter
	out     io.Writer
	explain func(error) string
}

// loop shows the menu and dispatches choices until the exit item is chosen
// or the input ends. Failed actions are reported and the loop continues.
// Once ctx is done the loop returns ctx.Err() without running another choice.
func (m *menu) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(m.out)
		heading(m.out, "--- "+m.title+" ---")
		for i, it := range m.items {
			_, _ = fmt.Fprintf(m.out, "%d. %s\n", i+1, it.label)
		}

		choice, err := m.prompt.Int(ctx, "Choose an option: ")
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrInvalidNumber):
			failure(m.out, "Invalid choice! Please select a valid option.")
			continue
		case err != nil:
			return err
		}
		if choice < 1 || choice > len(m.items) {
			failure(m.out, "Invalid choice! Please select a valid option.")
			continue
		}

		it := m.items[choice-1]
		if it.run == nil {
			_, _ = fmt.Fprintln(m.out, "Exiting the system. Goodbye!")
			return nil
		}
		if err := it.run(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			failure(m.out, "%s", m.explain(err))
		}
	}
}
