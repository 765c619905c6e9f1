package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, look, status, chop, take, drop, deposit, go, wait.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens = dropFillerWords(argsTokens)
	argsTokens, q := splitQuantity(argsTokens)
	intent.Quantity = q

	def, _ := p.registry.command(intent.Verb)
	resolvedArgs, clarify, argScore := resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		if def.Canonical == "go" {
			intent.Clarify.Prompt = "Which way? north, south, east or west."
		}
		intent.Confidence = 0.42
		return intent
	}
	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "look", "status":
		return Query
	default:
		return Command
	}
}

func dropFillerWords(tokens []string) []string {
	out := tokens[:0:0]
	for _, t := range tokens {
		switch t {
		case "the", "a", "an", "to", "at", "on", "for", "down", "up":
			continue
		}
		out = append(out, t)
	}
	return out
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

func resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i, token := range args {
		if isPronoun(token) {
			if strings.TrimSpace(ctx.LastEntity) == "" {
				return nil, &ClarifyQuestion{Prompt: "What does that refer to?"}, 0.4
			}
			resolved = append(resolved, normaliseInput(ctx.LastEntity))
			score -= 0.08
			continue
		}

		if def.Canonical == "go" && i == 0 {
			if mapped := mapDirection(token); mapped != "" {
				resolved = append(resolved, mapped)
				continue
			}
			matches, confidence, tie := bestMatches(token, []string{"north", "south", "east", "west"}, nil)
			if tie {
				return nil, &ClarifyQuestion{
					Prompt: "Which direction?",
					Options: []Intent{
						{Kind: Command, Verb: "go", Args: []string{matches[0]}, Confidence: confidence},
						{Kind: Command, Verb: "go", Args: []string{matches[1]}, Confidence: confidence - 0.01},
					},
				}, 0.5
			}
			if len(matches) == 1 {
				resolved = append(resolved, matches[0])
				score = min(score, confidence)
				continue
			}
			return nil, &ClarifyQuestion{Prompt: "Direction must be north, south, east or west."}, 0.4
		}

		if expectsEntity(def.Canonical, i) {
			matches, confidence, tie := resolveEntity(token, ctx, def.Canonical)
			if tie {
				return nil, &ClarifyQuestion{
					Prompt: fmt.Sprintf("Did you mean %s?", def.Canonical),
					Options: []Intent{
						{Kind: commandKind(def.Canonical), Verb: def.Canonical, Args: []string{matches[0]}, Confidence: confidence},
						{Kind: commandKind(def.Canonical), Verb: def.Canonical, Args: []string{matches[1]}, Confidence: confidence - 0.01},
					},
				}, 0.52
			}
			if len(matches) == 1 {
				resolved = append(resolved, matches[0])
				score = min(score, confidence)
				continue
			}
		}

		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

func expectsEntity(verb string, argPos int) bool {
	if argPos > 0 {
		return false
	}
	switch verb {
	case "chop", "take", "drop", "deposit", "use", "look":
		return true
	default:
		return false
	}
}

func resolveEntity(token string, ctx ParseContext, verb string) ([]string, float64, bool) {
	n := normaliseInput(token)
	if n == "" {
		return nil, 0, false
	}
	pool := mergeUnique(ctx.Nearby, ctx.Carrying)
	var boost []string
	switch verb {
	case "drop", "deposit":
		boost = ctx.Carrying
	default:
		boost = ctx.Nearby
	}
	return bestMatches(n, pool, boost)
}

func bestMatches(token string, all []string, boosted []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	boostSet := make(map[string]bool, len(boosted))
	for _, b := range boosted {
		boostSet[normaliseInput(b)] = true
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		var score float64
		switch {
		case token == cand:
			score = 1.0
		case len(token) >= 2 && strings.HasPrefix(cand, token):
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		if boostSet[cand] {
			score += 0.08
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	if len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6 {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

// inferFreeTextIntent catches sentences that do not start with a verb.
func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	switch {
	case containsAnyPhrase(n, "repair the dock", "fix the dock", "fix dock", "repair dock", "put log on dock", "log on the dock", "add a plank"):
		return makeIntent(Command, "deposit", nil, 0.86)
	case containsAnyPhrase(n, "cut down", "cut the tree", "chop the tree", "chop tree", "fell the tree", "need wood", "get wood", "i need logs"):
		return makeIntent(Command, "chop", nil, 0.84)
	case containsAnyPhrase(n, "pick up the log", "pick up log", "grab the log", "carry the log", "take the log"):
		return makeIntent(Command, "take", []string{"log"}, 0.84)
	case containsAnyPhrase(n, "put it down", "put down", "drop it", "let go"):
		return makeIntent(Command, "drop", nil, 0.8)
	case containsAnyPhrase(n, "where am i", "look around", "what is here", "what s here"):
		return makeIntent(Query, "look", nil, 0.88)
	case containsAnyPhrase(n, "how many planks", "how is the dock", "dock progress", "how many trees"):
		return makeIntent(Query, "status", nil, 0.84)
	}

	if dir := inferDirectionFromText(n); dir != "" {
		return makeIntent(Command, "go", []string{dir}, 0.86)
	}
	if containsWord(n, "wait") || containsWord(n, "rest") {
		_, q := splitQuantity(tokenise(n))
		intent := makeIntent(Command, "wait", nil, 0.78)
		intent.Quantity = q
		return intent
	}
	if containsWord(n, "chop") || containsWord(n, "axe") {
		return makeIntent(Command, "chop", nil, 0.76)
	}
	return nil
}

func inferDirectionFromText(normalised string) string {
	tokens := tokenise(normalised)
	for i, token := range tokens {
		mapped := mapDirection(token)
		if mapped == "" {
			continue
		}
		if i > 0 {
			switch tokens[i-1] {
			case "go", "walk", "head", "move", "run", "towards", "toward":
				return mapped
			}
		}
		if i == 0 && len(tokens) == 1 {
			return mapped
		}
	}
	return ""
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsWord(value, phrase) {
			return true
		}
	}
	return false
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			n := normaliseInput(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent as the plain command line the
// world command runner understands.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		if n := normaliseInput(arg); n != "" {
			args = append(args, n)
		}
	}
	if q := intent.Quantity; q != nil {
		switch q.Unit {
		case "seconds":
			args = append(args, strconv.Itoa(q.N)+"s")
		case "count":
			args = append(args, strconv.Itoa(q.N))
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
