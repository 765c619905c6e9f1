package gui

import "github.com/appengine-ltd/timberline/internal/parser"

// CommandSink accepts intents produced outside the command line, such as
// quick-action keys.
type CommandSink interface {
	EnqueueIntent(parser.Intent)
}

type intentQueue struct {
	ch chan parser.Intent
}

func newIntentQueue(size int) *intentQueue {
	if size < 1 {
		size = 16
	}
	return &intentQueue{ch: make(chan parser.Intent, size)}
}

func (q *intentQueue) EnqueueIntent(intent parser.Intent) {
	if q == nil {
		return
	}
	select {
	case q.ch <- intent:
	default:
		// Saturated; quick actions are not worth blocking the frame for.
	}
}

func (q *intentQueue) Dequeue() (parser.Intent, bool) {
	if q == nil {
		return parser.Intent{}, false
	}
	select {
	case intent := <-q.ch:
		return intent, true
	default:
		return parser.Intent{}, false
	}
}
