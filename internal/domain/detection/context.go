package detection

import (
	"strings"

	"github.com/okian/meetmind/internal/domain/model"
)

const (
	contextWindow   = 5
	scoreTaskLike   = 15
	scoreVerb       = 10
	scorePhrase     = 5
	acceptThreshold = 10
)

func donorScore(s model.Sentence) int {
	ws := split(s.Text())
	score := 0
	if IsTaskSentence(s) {
		score += scoreTaskLike
	}
	if hasPhrase(ws) {
		score += scorePhrase
	}
	if hasVerb(ws, true) {
		score += scoreVerb
	}
	return score
}

// donorFragment returns the donor's words from its first action verb on.
func donorFragment(ws []word) []word {
	if i := firstVerb(ws, 0, false); i >= 0 {
		return trimLeading(ws[i:], vaguePronouns)
	}
	if i := firstVerb(ws, 0, true); i >= 0 {
		return trimLeading(ws[i:], vaguePronouns)
	}
	for i := range ws {
		if end, ok := phraseAt(ws, i); ok {
			return trimLeading(ws[end:], vaguePronouns)
		}
	}
	return trimLeading(ws, vaguePronouns)
}

// ResolveContext rewrites sentences[idx] when it opens with a vague pronoun
// by splicing in the action of the best preceding sentence. The original
// text is returned when no donor scores high enough.
func ResolveContext(sentences []model.Sentence, idx int) (string, bool) {
	if idx < 0 || idx >= len(sentences) {
		return "", false
	}
	text := sentences[idx].Text()
	ws := split(text)
	if !startsVague(ws) {
		return text, false
	}

	best, bestScore := -1, 0
	for i := idx - 1; i >= 0 && i >= idx-contextWindow; i-- {
		if s := donorScore(sentences[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < acceptThreshold {
		return text, false
	}

	donor := donorFragment(split(sentences[best].Text()))
	rest := trimLeading(ws[1:], modalWords)
	if len(rest) > 0 && in(placeholderVerbs, rest[0].norm) {
		rest = rest[1:]
	}
	if len(donor) > 0 && len(rest) > 0 && donor[len(donor)-1].norm == rest[0].norm {
		rest = rest[1:]
	}
	merged := append(append([]word{}, donor...), rest...)
	if len(merged) == 0 {
		return text, false
	}
	return strings.TrimSpace(join(merged)), true
}
