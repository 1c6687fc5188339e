package launch

import (
	"bufio"
	"fmt"
	"io"
)

// Pauser holds the console open for operator acknowledgment after the
// dashboard exits. It is a separate scoped operation from the child wait
// so tests (and the --no-pause flag) can substitute a no-op.
//
// The pause runs regardless of how the child ended — success, failure, or
// a spawn error — so the operator can read any error text before the
// window closes.
type Pauser interface {
	// Pause blocks until the operator acknowledges, then returns.
	Pause() error
}

// ConsolePauser prompts on Out and waits for a line on In. Reading a full
// line (rather than a single raw key) works on every terminal without
// platform-specific console mode switching.
type ConsolePauser struct {
	In  io.Reader
	Out io.Writer
}

// Pause prints the acknowledgment prompt and blocks until the operator
// presses Enter or In reaches EOF. EOF is treated as acknowledgment: a
// closed stdin (e.g. a non-interactive session) must not hang the
// launcher forever.
func (p *ConsolePauser) Pause() error {
	fmt.Fprint(p.Out, "\nPress Enter to close...")

	reader := bufio.NewReader(p.In)
	if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// NopPauser returns immediately without touching the console.
// Used by tests and the --no-pause flag.
type NopPauser struct{}

// Pause is a no-op.
func (NopPauser) Pause() error {
	return nil
}
