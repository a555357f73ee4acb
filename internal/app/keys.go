package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/orcdev/internal/engine/chain"
	"go.trai.ch/orcdev/internal/ui/style"
	"golang.org/x/term"
)

// Raw-mode byte codes for the interrupt keys.
const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// banner prints the command-loop banner once the session is live.
func (a *App) banner() {
	msg := style.Banner.Render("orcdev") + " " +
		style.Hint.Render("watching — press r to rebuild, q to quit")
	_, _ = fmt.Fprintln(a.stdout, msg)
}

// commandLoop reads single raw keystrokes from stdin and dispatches them:
// q / Ctrl-C / Ctrl-D / closed input shut the session down, r re-triggers
// the full library chain, anything else is logged as unrecognized.
func (a *App) commandLoop(ctx context.Context, ch *chain.Chain, shutdown context.CancelFunc) error {
	restore := a.enterRawMode()
	defer restore()

	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := a.stdin.Read(buf)
			if n > 0 {
				select {
				case keys <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case key, ok := <-keys:
			if !ok {
				// Closed input converges on the same shutdown path as 'q'.
				a.logger.Info("input closed, shutting down")
				shutdown()
				return nil
			}
			switch key {
			case 'q', keyCtrlC, keyCtrlD:
				a.logger.Info("shutting down")
				shutdown()
				return nil
			case 'r':
				a.logger.Info("manual reload")
				go ch.BuildLibrary(ctx)
			case '\r', '\n':
				// Stray line endings from non-raw input carry no command.
			default:
				a.logger.Warn(fmt.Sprintf("unrecognized command %q", key))
			}
		}
	}
}

// enterRawMode switches stdin to character-at-a-time, unbuffered mode when
// it is a terminal. The returned function restores the previous state.
func (a *App) enterRawMode() func() {
	f, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		a.logger.Warn("failed to switch terminal to raw mode: " + err.Error())
		return func() {}
	}
	return func() { _ = term.Restore(fd, old) }
}
