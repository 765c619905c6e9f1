package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// Commands lists registered canonical verbs in name order.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

// matchCommand scores every phrase against the leading tokens: exact and
// alias hits first, then single-word prefixes, then edit distance.
func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		consumed := min(len(tokens), len(phrase.tokens))
		prefix := strings.Join(tokens[:consumed], " ")

		if consumed == len(phrase.tokens) && prefix == phrase.alias {
			score, source := 1.0, "exact"
			if phrase.alias != phrase.canonical {
				score, source = 0.97, "alias"
			}
			cands = append(cands, commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias, Consumed: consumed, Score: score, Source: source})
			continue
		}

		if len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]) {
			cands = append(cands, commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias, Consumed: 1, Score: 0.9, Source: "prefix"})
			continue
		}

		cut := consumed
		compare := prefix
		if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
			cut = len(phrase.tokens)
			compare = strings.Join(tokens[:cut], " ")
		}
		if cut == 0 || len(compare) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(compare, phrase.alias)
		if dist > levenshteinLimit(len(phrase.alias)) {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, phrase.alias) {
			score += 0.04
		}
		if phrase.alias != phrase.canonical {
			score += 0.03
		}
		cands = append(cands, commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias, Consumed: cut, Score: score, Source: "lev"})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	best := cands[0]
	alts := make([]commandCandidate, 0, 3)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 3 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, MinArgs: 0, MaxArgs: 0},
		{Canonical: "look", Aliases: []string{"l", "look around", "where am i"}, MinArgs: 0, MaxArgs: 2},
		{Canonical: "status", Aliases: []string{"stats", "progress"}, MinArgs: 0, MaxArgs: 0},
		{Canonical: "chop", Aliases: []string{"cut", "fell", "cut down", "chop down", "axe"}, MinArgs: 0, MaxArgs: 2},
		{Canonical: "take", Aliases: []string{"get", "pickup", "pick up", "grab", "carry", "lift"}, MinArgs: 0, MaxArgs: 2},
		{Canonical: "drop", Aliases: []string{"put down", "discard", "release"}, MinArgs: 0, MaxArgs: 2},
		{Canonical: "deposit", Aliases: []string{"place", "repair", "stack", "load dock"}, MinArgs: 0, MaxArgs: 3},
		{Canonical: "use", Aliases: []string{"interact"}, MinArgs: 0, MaxArgs: 2},
		{Canonical: "go", Aliases: []string{"walk", "move", "head", "run"}, MinArgs: 1, MaxArgs: 2},
		{Canonical: "wait", Aliases: []string{"rest", "idle", "pause"}, MinArgs: 0, MaxArgs: 1},
		{Canonical: "quit", Aliases: []string{"exit", "bye"}, MinArgs: 0, MaxArgs: 0},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
