package detection

import (
	"sort"
	"strings"
)

// Imperative verbs common in engineering meetings. Multi-word verbs are
// space separated.
var actionVerbs = []string{
	"fix", "update", "design", "implement", "create", "write", "test",
	"refactor", "review", "deploy", "configure", "set up", "setup",
	"optimize", "add", "remove", "check", "investigate", "analyze",
	"resolve", "handle", "build", "prepare", "send", "schedule",
	"document", "migrate", "clean up", "follow up", "look into", "finish",
	"complete", "merge", "do",
}

var irregularForms = map[string][]string{
	"do":    {"does", "did", "doing", "done"},
	"write": {"wrote", "written"},
	"send":  {"sent"},
	"build": {"built"},
	"set":   {"setting"},
}

var actionPhrases = [][]string{
	{"need", "to"}, {"needs", "to"}, {"should"}, {"must"}, {"let's"}, {"lets"},
	{"have", "to"}, {"has", "to"}, {"we", "will"}, {"we'll"}, {"plan", "to"},
	{"make", "sure", "to"}, {"ensure", "that"}, {"going", "to"},
}

var nonTaskHints = []string{
	"we discussed", "we talked about", "we already", "as we know",
	"remember that", "we decided", "we agreed", "was discussed",
}

var delegationOpeners = [][]string{
	{"can", "you"}, {"will", "you"}, {"could", "you"}, {"would", "you"}, {"please"},
}

var intentWords = []string{"to", "will", "gonna", "please", "need", "should", "must", "going", "plan", "try"}

var vaguePronouns = set("this", "that", "it", "these", "those")

// Dropped from the front of a vague sentence before it is spliced after a donor.
var modalWords = set(
	"should", "must", "will", "would", "could", "can", "shall", "need",
	"needs", "to", "be", "been", "get", "gets", "have", "has", "also", "please",
)

var placeholderWords = set(
	"do", "done", "doing", "handle", "handled", "it", "this", "that",
	"these", "those", "stuff", "thing", "things",
)

// Verbs a donor replaces when splicing ("this should be done by X").
var placeholderVerbs = set("do", "done", "doing", "handle", "handled", "handling")

var personalPronouns = set(
	"i", "we", "you", "they", "he", "she", "someone", "somebody", "anyone",
	"everyone", "us", "me",
)

var fillerWords = set(
	"so", "okay", "ok", "well", "um", "uh", "also", "and", "then", "just",
	"basically", "actually", "really", "now", "yeah", "right", "the", "a", "an",
)

// Sorted longest first by init.
var conversationalPrefixes = [][]string{
	{"i", "think", "we", "should"}, {"maybe", "we", "should"}, {"we", "need", "to"},
	{"we", "should"}, {"we", "must"}, {"we", "have", "to"}, {"let's"}, {"lets"},
	{"can", "you"}, {"could", "you"}, {"will", "you"}, {"would", "you"},
	{"please"}, {"i", "think"}, {"we", "will"}, {"we'll"}, {"someone", "should"},
	{"somebody", "needs", "to"}, {"make", "sure", "to"}, {"ensure", "that"},
	{"plan", "to"}, {"need", "to"}, {"have", "to"}, {"going", "to"},
}

type verbPhrase struct {
	base      string
	parts     []string
	inflected bool
}

var verbTable = buildVerbTable()

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func inflections(v string) []string {
	forms := []string{v + "s", v + "ed", v + "ing"}
	if strings.HasSuffix(v, "e") {
		forms = append(forms, v+"d", v[:len(v)-1]+"ing")
	}
	for _, suf := range []string{"s", "x", "sh", "ch"} {
		if strings.HasSuffix(v, suf) {
			forms = append(forms, v+"es")
			break
		}
	}
	return append(forms, irregularForms[v]...)
}

func buildVerbTable() []verbPhrase {
	var out []verbPhrase
	for _, v := range actionVerbs {
		parts := strings.Fields(v)
		out = append(out, verbPhrase{base: v, parts: parts})
		for _, f := range inflections(parts[0]) {
			p := append([]string{f}, parts[1:]...)
			out = append(out, verbPhrase{base: v, parts: p, inflected: true})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].parts) > len(out[j].parts) })
	return out
}

func init() {
	sort.SliceStable(conversationalPrefixes, func(i, j int) bool {
		return len(conversationalPrefixes[i]) > len(conversationalPrefixes[j])
	})
}
