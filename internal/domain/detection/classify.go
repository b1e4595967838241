package detection

import (
	"strings"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
)

const (
	minTaskWords = 3
	intentWindow = 15
	vagueLookout = 3
)

// rule is one acceptance check. Rules run in order and the first hit wins.
type rule func(ws []word) bool

var acceptRules = []rule{
	imperativeOpener,
	modalWithVerb,
	delegation,
	intentBeforeVerb,
}

// IsTask reports whether free text reads as an action item.
func IsTask(text string) bool {
	ws := split(text)
	return classify(text, ws, len(ws))
}

// IsTaskSentence reports whether a transcript sentence reads as an action
// item. The short sentence check counts its tokens when it carries any.
func IsTaskSentence(s model.Sentence) bool {
	text := s.Text()
	ws := split(text)
	n := len(ws)
	if len(s.Tokens) > 0 {
		n = len(s.Tokens)
	}
	return classify(text, ws, n)
}

func classify(text string, ws []word, tokens int) bool {
	if rejected(text, ws, tokens) {
		return false
	}
	for _, r := range acceptRules {
		if r(ws) {
			return true
		}
	}
	return false
}

func rejected(text string, ws []word, tokens int) bool {
	if tokens < minTaskWords {
		return true
	}
	norm := textnorm.Normalize(text)
	for _, h := range nonTaskHints {
		if textnorm.ContainsWord(norm, h) {
			return true
		}
	}
	if startsVague(ws) {
		return !hasVerb(ws[1:], true) || isPlaceholder(ws[1:])
	}
	return false
}

func imperativeOpener(ws []word) bool {
	_, ok := verbAt(ws, 0, false)
	return ok
}

func modalWithVerb(ws []word) bool {
	for i := range ws {
		end, ok := phraseAt(ws, i)
		if !ok {
			continue
		}
		rest := ws[end:]
		if startsVague(rest) {
			look := rest[1:]
			if len(look) > vagueLookout {
				look = look[:vagueLookout]
			}
			if !hasVerb(look, true) {
				continue
			}
		}
		if hasVerb(rest, true) {
			return true
		}
	}
	return false
}

func delegation(ws []word) bool {
	for _, opener := range delegationOpeners {
		if seqAt(ws, 0, opener) {
			return !isPlaceholder(ws[len(opener):])
		}
	}
	return false
}

func intentBeforeVerb(ws []word) bool {
	norm := make([]string, len(ws))
	offsets := make([]int, len(ws))
	pos := 0
	for i, w := range ws {
		norm[i] = w.norm
		offsets[i] = pos
		pos += len(w.norm) + 1
	}
	line := strings.Join(norm, " ")
	for i := range ws {
		if _, ok := verbAt(ws, i, false); !ok {
			continue
		}
		window := line[max(0, offsets[i]-intentWindow):offsets[i]]
		for _, iw := range intentWords {
			if textnorm.ContainsWord(window, iw) {
				return true
			}
		}
	}
	return false
}
