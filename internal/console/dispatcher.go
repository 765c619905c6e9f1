// Package console routes free-form player text through the intent parser
// into world commands. Every front end shares it.
package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/parser"
)

type Reply struct {
	Lines []string
	Quit  bool
}

type Dispatcher struct {
	session    *game.Session
	parser     *parser.Parser
	lastEntity string
	pending    *parser.ClarifyQuestion
}

func NewDispatcher(s *game.Session, p *parser.Parser) *Dispatcher {
	if p == nil {
		p = parser.New()
	}
	return &Dispatcher{session: s, parser: p}
}

// Pending is the outstanding clarify question, if the last input was ambiguous.
func (d *Dispatcher) Pending() *parser.ClarifyQuestion {
	return d.pending
}

func (d *Dispatcher) Submit(line string) Reply {
	line = strings.TrimSpace(line)
	if line == "" {
		return Reply{Lines: []string{"Enter a command."}}
	}
	if d.pending != nil {
		question := d.pending
		d.pending = nil
		if intent, ok := pickOption(question, line); ok {
			return d.run(intent)
		}
	}

	intent := d.parser.Parse(ContextFor(d.session.Snapshot(), d.lastEntity), line)
	if intent.Clarify != nil {
		if len(intent.Clarify.Options) > 0 {
			d.pending = intent.Clarify
		}
		return Reply{Lines: clarifyLines(intent.Clarify)}
	}
	return d.run(intent)
}

func (d *Dispatcher) run(intent parser.Intent) Reply {
	if intent.Verb == "quit" {
		return Reply{Lines: []string{"You leave the forest."}, Quit: true}
	}
	if len(intent.Args) > 0 && isEntity(intent.Args[0]) {
		d.lastEntity = intent.Args[0]
	}
	res := d.session.ExecuteCommand(parser.IntentToCommandString(intent))
	if !res.Handled && res.Message == "" {
		return Reply{Lines: []string{"Unknown command."}}
	}
	return Reply{Lines: []string{res.Message}}
}

// ContextFor lists what the player can reach right now, for entity resolution.
func ContextFor(snap game.WorldSnapshot, lastEntity string) parser.ParseContext {
	ctx := parser.ParseContext{LastEntity: lastEntity}
	for _, t := range snap.Trees {
		if game.Distance(t.Pos, snap.Player) <= snap.Chop.InteractionDistance {
			ctx.Nearby = append(ctx.Nearby, "tree")
			break
		}
	}
	for _, l := range snap.Logs {
		if !l.Carried && game.Distance(l.Pos, snap.Player) <= snap.Carry.PickupRange {
			ctx.Nearby = append(ctx.Nearby, "log")
			break
		}
	}
	if game.Distance(snap.Dock.Pos, snap.Player) <= snap.Carry.DockRange {
		ctx.Nearby = append(ctx.Nearby, "dock")
	}
	if snap.Carrying {
		ctx.Carrying = []string{"log"}
	}
	return ctx
}

func pickOption(q *parser.ClarifyQuestion, line string) (parser.Intent, bool) {
	if q == nil || len(q.Options) == 0 {
		return parser.Intent{}, false
	}
	if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
		if n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], true
		}
		return parser.Intent{}, false
	}
	want := strings.ToLower(strings.TrimSpace(line))
	for _, opt := range q.Options {
		if opt.Verb == want || parser.IntentToCommandString(opt) == want {
			return opt, true
		}
	}
	return parser.Intent{}, false
}

func clarifyLines(q *parser.ClarifyQuestion) []string {
	lines := []string{q.Prompt}
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, parser.IntentToCommandString(opt)))
	}
	return lines
}

func isEntity(token string) bool {
	switch token {
	case "tree", "log", "dock":
		return true
	default:
		return false
	}
}
