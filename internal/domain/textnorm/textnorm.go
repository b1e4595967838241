// Package textnorm holds the text normalisation helpers shared by every stage.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	wordRe      = regexp.MustCompile(`\b\w+\b`)
	edgePunct   = ".,!?;:\"()'"
	stopWords   = map[string]struct{}{}
	stopWordSrc = []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
		"been", "being", "have", "has", "had", "do", "does", "did", "will",
		"would", "should", "could", "may", "might", "must", "can", "this",
		"that", "these", "those", "it", "its", "we", "you", "they", "he", "she",
	}
)

func init() {
	for _, w := range stopWordSrc {
		stopWords[w] = struct{}{}
	}
}

// Normalize lowercases, collapses runs of whitespace and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Words splits normalised text on whitespace and trims edge punctuation.
// Tokens that were only punctuation are dropped.
func Words(s string) []string {
	fields := strings.Fields(Normalize(s))
	out := fields[:0]
	for _, f := range fields {
		if w := strings.Trim(f, edgePunct); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Keywords returns the lowercase word tokens of at least minLen characters
// that are not stop words, in order of appearance.
func Keywords(s string, minLen int) []string {
	var out []string
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if utf8.RuneCountInString(w) < minLen {
			continue
		}
		if IsStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// IsStopWord reports whether w is a common English function word.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Dedupe removes repeated strings, keeping first occurrences in order.
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// DedupeFold is Dedupe with case-insensitive comparison.
func DedupeFold(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// WordBoundary compiles a case-insensitive whole-word matcher for phrase.
func WordBoundary(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// ContainsWord reports whether phrase occurs in s as whole words.
// Both sides are compared case-insensitively.
func ContainsWord(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	ls, lp := strings.ToLower(s), strings.ToLower(phrase)
	from := 0
	for {
		i := strings.Index(ls[from:], lp)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(lp)
		if boundaryBefore(ls, start) && boundaryAfter(ls, end) {
			return true
		}
		from = start + 1
	}
}

// isWordRune reports whether r is a word character.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

// AtBoundary reports whether s[start:end] is not glued to neighbouring word characters.
func AtBoundary(s string, start, end int) bool {
	return boundaryBefore(s, start) && boundaryAfter(s, end)
}
