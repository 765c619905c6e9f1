//go:build cgo

package main

import "github.com/appengine-ltd/timberline/internal/gui"

func runInteractive(fe frontEnd) error {
	app := gui.NewApp(gui.AppConfig{
		Title:      "Timberline",
		Session:    fe.session,
		Dispatcher: fe.dispatcher,
		Sound:      fe.sound,
	})
	return app.Run()
}
