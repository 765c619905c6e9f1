// Package termui is the terminal front end: a tcell map of the forest with
// keyboard movement, hold-to-chop and a command line.
package termui

import (
	"time"

	"github.com/appengine-ltd/timberline/internal/console"
	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/sound"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 50 * time.Millisecond
	// Terminals only report key presses, so a held key is one whose
	// auto-repeat arrived within this window.
	holdWindow = 250 * time.Millisecond
	maxInput   = 180
	keyHint    = "WASD/arrows move  hold E chop  F pick up/drop/deposit  Enter command  Esc quit"
)

type Config struct {
	Session    *game.Session
	Dispatcher *console.Dispatcher
	Sound      *sound.Manager
}

type App struct {
	screen     tcell.Screen
	session    *game.Session
	dispatcher *console.Dispatcher
	sound      *sound.Manager

	move      game.Vec2
	moveUntil time.Time
	chopUntil time.Time
	interact  bool
	editing   bool
	input     string
	replies   []string
	lastSnap  game.WorldSnapshot
	lastTick  time.Time
	quit      bool
}

// New wraps screen; the caller owns Init and Fini.
func New(screen tcell.Screen, cfg Config) *App {
	d := cfg.Dispatcher
	if d == nil {
		d = console.NewDispatcher(cfg.Session, nil)
	}
	return &App{
		screen:     screen,
		session:    cfg.Session,
		dispatcher: d,
		sound:      cfg.Sound,
		lastSnap:   cfg.Session.Snapshot(),
	}
}

// Run drives the world in real time until the player quits.
func (a *App) Run() error {
	a.screen.HideCursor()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(events, done)

	a.lastTick = time.Now()
	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(a.lastTick)
			a.lastTick = now
			a.update(now, dt)
			a.draw()
		}
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed.
func (a *App) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handlePress(keyPress{key: ev.Key(), r: ev.Rune()}, now)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

type keyPress struct {
	key tcell.Key
	r   rune
}

func (a *App) handlePress(k keyPress, now time.Time) {
	if a.editing {
		a.handleEditing(k)
		return
	}
	switch k.key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyEnter:
		a.editing = true
		a.input = ""
		return
	case tcell.KeyUp:
		a.hold(game.Vec2{Y: -1}, now)
		return
	case tcell.KeyDown:
		a.hold(game.Vec2{Y: 1}, now)
		return
	case tcell.KeyLeft:
		a.hold(game.Vec2{X: -1}, now)
		return
	case tcell.KeyRight:
		a.hold(game.Vec2{X: 1}, now)
		return
	}
	if k.key != tcell.KeyRune {
		return
	}
	switch k.r {
	case 'w', 'W':
		a.hold(game.Vec2{Y: -1}, now)
	case 's', 'S':
		a.hold(game.Vec2{Y: 1}, now)
	case 'a', 'A':
		a.hold(game.Vec2{X: -1}, now)
	case 'd', 'D':
		a.hold(game.Vec2{X: 1}, now)
	case 'e', 'E':
		a.chopUntil = now.Add(holdWindow)
	case 'f', 'F':
		a.interact = true
	case ':', '/':
		a.editing = true
		a.input = ""
	}
}

func (a *App) hold(dir game.Vec2, now time.Time) {
	a.move = dir
	a.moveUntil = now.Add(holdWindow)
}

func (a *App) handleEditing(k keyPress) {
	switch k.key {
	case tcell.KeyEscape:
		a.editing = false
		a.input = ""
	case tcell.KeyEnter:
		a.editing = false
		a.submit(a.input)
		a.input = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyRune:
		if k.r >= 32 && k.r <= 126 && len(a.input) < maxInput {
			a.input += string(k.r)
		}
	}
}

func (a *App) submit(line string) {
	reply := a.dispatcher.Submit(line)
	a.replies = append(a.replies, reply.Lines...)
	if len(a.replies) > 20 {
		a.replies = append([]string(nil), a.replies[len(a.replies)-20:]...)
	}
	if reply.Quit {
		a.quit = true
	}
}

// sampleInput reads the held keys at now; the interact edge is consumed.
func (a *App) sampleInput(now time.Time) game.Input {
	in := game.Input{
		Chop:     now.Before(a.chopUntil),
		Interact: a.interact,
	}
	if now.Before(a.moveUntil) {
		in.Move = a.move
	}
	a.interact = false
	return in
}

func (a *App) update(now time.Time, dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	a.session.Step(dt.Seconds(), a.sampleInput(now))
	snap := a.session.Snapshot()
	a.sound.Play(sound.CuesBetween(a.lastSnap, snap)...)
	a.lastSnap = snap
}

func (a *App) view() view {
	messages := a.session.Messages()
	if len(a.replies) > 0 {
		messages = append(append([]string(nil), messages...), a.replies[len(a.replies)-1])
	}
	hint := keyHint
	if q := a.dispatcher.Pending(); q != nil {
		hint = q.Prompt + " (Enter, then type a number)"
	}
	return view{
		snap:     a.lastSnap,
		messages: messages,
		input:    a.input,
		editing:  a.editing,
		hint:     hint,
	}
}

func (a *App) draw() {
	w, h := a.screen.Size()
	a.screen.Clear()
	blit(a.screen, compose(a.view(), w, h))
	a.screen.Show()
}
