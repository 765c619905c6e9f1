package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseQuantityToken recognises bare counts and second/minute durations.
func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	for _, suffix := range []string{"seconds", "secs", "sec", "s"} {
		if v, ok := trimmedInt(token, suffix); ok {
			return &Quantity{Raw: token, N: v, Unit: "seconds"}
		}
	}
	for _, suffix := range []string{"minutes", "mins", "min", "m"} {
		if v, ok := trimmedInt(token, suffix); ok {
			return &Quantity{Raw: token, N: v * 60, Unit: "seconds"}
		}
	}
	return nil
}

func trimmedInt(token, suffix string) (int, bool) {
	if !strings.HasSuffix(token, suffix) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSuffix(token, suffix))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "this", "one":
		return true
	default:
		return false
	}
}

func mapDirection(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "n", "north":
		return "north"
	case "s", "south":
		return "south"
	case "e", "east", "right":
		return "east"
	case "w", "west", "left":
		return "west"
	default:
		return ""
	}
}
