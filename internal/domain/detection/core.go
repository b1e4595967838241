package detection

import "github.com/okian/meetmind/internal/domain/textnorm"

const (
	minDescriptionWords = 2
	minAfterPronoun     = 3
)

var leadingScaffold = func() map[string]struct{} {
	m := map[string]struct{}{}
	for w := range fillerWords {
		m[w] = struct{}{}
	}
	for w := range personalPronouns {
		m[w] = struct{}{}
	}
	return m
}()

// ExtractCore strips conversational scaffolding and returns the actionable
// part of a sentence with its first letter capitalised.
func ExtractCore(text string) string {
	ws := split(text)
	if i := firstVerb(ws, 0, false); i >= 0 {
		ws = ws[i:]
	} else {
		for _, p := range conversationalPrefixes {
			if seqAt(ws, 0, p) {
				ws = ws[len(p):]
				break
			}
		}
	}
	ws = trimLeading(ws, leadingScaffold)
	if len(ws) > 0 && ws[0].norm == "to" {
		ws = ws[1:]
	}
	if len(ws) > 0 && (ws[0].norm == "that" || ws[0].norm == "which") {
		ws = ws[1:]
	}
	return textnorm.Capitalize(join(ws))
}

// TooVague reports whether a description lacks enough content to act on.
func TooVague(description string) bool {
	ws := split(description)
	if len(ws) < minDescriptionWords {
		return true
	}
	if startsVague(ws) {
		if !hasVerb(ws[1:], true) {
			return true
		}
		if len(ws)-1 < minAfterPronoun {
			return true
		}
	}
	return isPlaceholder(ws)
}
