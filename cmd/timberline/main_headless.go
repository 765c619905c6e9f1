//go:build !cgo

package main

import (
	"fmt"

	"github.com/appengine-ltd/timberline/internal/termui"
	"github.com/gdamore/tcell/v2"
)

// Without cgo there is no raylib window, so the forest is drawn in the
// terminal.
func runInteractive(fe frontEnd) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	app := termui.New(screen, termui.Config{
		Session:    fe.session,
		Dispatcher: fe.dispatcher,
		Sound:      fe.sound,
	})
	return app.Run()
}
