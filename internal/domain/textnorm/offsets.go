package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Offsets maps byte positions of a normalised string back to its source.
type Offsets struct {
	start []int
	end   []int
}

// NormalizeOffsets returns Normalize(s) together with the byte mapping
// back into s.
func NormalizeOffsets(s string) (string, Offsets) {
	var b strings.Builder
	b.Grow(len(s))
	o := Offsets{start: make([]int, 0, len(s)), end: make([]int, 0, len(s))}
	gap := -1
	for i, r := range s {
		_, w := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if gap < 0 && b.Len() > 0 {
				gap = i
			}
			continue
		}
		if gap >= 0 {
			b.WriteByte(' ')
			o.start = append(o.start, gap)
			o.end = append(o.end, i)
			gap = -1
		}
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			o.start = append(o.start, i)
			o.end = append(o.end, i+w)
		}
	}
	return b.String(), o
}

// Span converts the normalised range [i, j) into a range of the source.
// Out of range positions are clamped.
func (o Offsets) Span(i, j int) (int, int) {
	n := len(o.start)
	if n == 0 {
		return 0, 0
	}
	i = max(0, min(i, n-1))
	if j <= i {
		return o.start[i], o.start[i]
	}
	j = min(j, n)
	return o.start[i], o.end[j-1]
}
