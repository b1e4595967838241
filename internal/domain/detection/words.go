package detection

import "strings"

const edgePunct = ".,!?;:\"()'"

type word struct {
	raw  string
	norm string
}

func split(text string) []word {
	fields := strings.Fields(text)
	out := make([]word, 0, len(fields))
	for _, f := range fields {
		n := strings.ToLower(strings.Trim(f, edgePunct))
		if n == "" {
			continue
		}
		out = append(out, word{raw: strings.Trim(f, `.,!?;:"()`), norm: n})
	}
	return out
}

func join(ws []word) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.raw
	}
	return strings.Join(parts, " ")
}

func in(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}

func seqAt(ws []word, i int, seq []string) bool {
	if i+len(seq) > len(ws) {
		return false
	}
	for k, s := range seq {
		if ws[i+k].norm != s {
			return false
		}
	}
	return true
}

// verbAt reports the action verb starting at ws[i].
func verbAt(ws []word, i int, inflected bool) (verbPhrase, bool) {
	for _, v := range verbTable {
		if v.inflected && !inflected {
			continue
		}
		if seqAt(ws, i, v.parts) {
			return v, true
		}
	}
	return verbPhrase{}, false
}

// firstVerb returns the index of the first action verb at or after from.
func firstVerb(ws []word, from int, inflected bool) int {
	for i := from; i < len(ws); i++ {
		if _, ok := verbAt(ws, i, inflected); ok {
			return i
		}
	}
	return -1
}

func hasVerb(ws []word, inflected bool) bool {
	return firstVerb(ws, 0, inflected) >= 0
}

// phraseAt returns the end index of an action phrase starting at ws[i].
func phraseAt(ws []word, i int) (int, bool) {
	for _, p := range actionPhrases {
		if seqAt(ws, i, p) {
			return i + len(p), true
		}
	}
	return 0, false
}

func hasPhrase(ws []word) bool {
	for i := range ws {
		if _, ok := phraseAt(ws, i); ok {
			return true
		}
	}
	return false
}

func startsVague(ws []word) bool {
	return len(ws) > 0 && in(vaguePronouns, ws[0].norm)
}

// isPlaceholder reports whether ws carries no content beyond pronouns,
// modals and generic verbs such as "do it".
func isPlaceholder(ws []word) bool {
	for _, w := range ws {
		switch {
		case in(placeholderWords, w.norm),
			in(modalWords, w.norm),
			in(personalPronouns, w.norm),
			isFunctionWord(w.norm):
			continue
		default:
			return false
		}
	}
	return true
}

var extraFunctionWords = set("the", "a", "an", "for", "of", "on", "in", "with", "up", "please", "you", "me", "us")

func isFunctionWord(w string) bool {
	return in(extraFunctionWords, w)
}

func trimLeading(ws []word, drop map[string]struct{}) []word {
	for len(ws) > 0 && in(drop, ws[0].norm) {
		ws = ws[1:]
	}
	return ws
}
