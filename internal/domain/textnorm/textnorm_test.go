package textnorm_test

import (
	"testing"

	"github.com/okian/meetmind/internal/domain/textnorm"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given messy text", t, func() {
		So(textnorm.Normalize("  Fix   the\tLogin\nBug  "), ShouldEqual, "fix the login bug")
		So(textnorm.Normalize(""), ShouldEqual, "")
	})
}

func TestNormalizeOffsets(t *testing.T) {
	Convey("Given messy text", t, func() {
		raw := "  Fix   the\tLogin\nBug  "
		norm, offs := textnorm.NormalizeOffsets(raw)

		Convey("Then the text matches Normalize", func() {
			So(norm, ShouldEqual, textnorm.Normalize(raw))
		})

		Convey("Then a normalised span maps back to the raw word", func() {
			start, end := offs.Span(8, 13)
			So(norm[8:13], ShouldEqual, "login")
			So(raw[start:end], ShouldEqual, "Login")
		})

		Convey("Then out of range spans are clamped", func() {
			start, end := offs.Span(14, 99)
			So(raw[start:end], ShouldEqual, "Bug")
		})
	})

	Convey("Given multi-byte text", t, func() {
		raw := "Ärger  ÜBER Straße"
		norm, offs := textnorm.NormalizeOffsets(raw)
		So(norm, ShouldEqual, textnorm.Normalize(raw))
		i := len("ärger ")
		start, end := offs.Span(i, i+len("über"))
		So(raw[start:end], ShouldEqual, "ÜBER")
	})

	Convey("Given empty text", t, func() {
		norm, offs := textnorm.NormalizeOffsets("   ")
		So(norm, ShouldBeEmpty)
		start, end := offs.Span(0, 1)
		So(start, ShouldEqual, 0)
		So(end, ShouldEqual, 0)
	})
}

func TestWords(t *testing.T) {
	Convey("Given a sentence with punctuation", t, func() {
		words := textnorm.Words("Hey, can you (please) fix it?!")

		Convey("Then edge punctuation is trimmed", func() {
			So(words, ShouldResemble, []string{"hey", "can", "you", "please", "fix", "it"})
		})

		Convey("Then a lone punctuation token disappears", func() {
			So(textnorm.Words("fix - it"), ShouldResemble, []string{"fix", "-", "it"})
			So(textnorm.Words("fix ... it"), ShouldResemble, []string{"fix", "it"})
		})
	})
}

func TestKeywords(t *testing.T) {
	Convey("Given a description", t, func() {
		kw := textnorm.Keywords("Update the database schema for the API", 3)

		Convey("Then stop words and short words are dropped", func() {
			So(kw, ShouldResemble, []string{"update", "database", "schema", "api"})
		})
	})
}

func TestContainsWord(t *testing.T) {
	Convey("Given whole-word lookups", t, func() {
		So(textnorm.ContainsWord("This is urgent now", "urgent"), ShouldBeTrue)
		So(textnorm.ContainsWord("nonurgent stuff", "urgent"), ShouldBeFalse)
		So(textnorm.ContainsWord("it depends on task 2", "depends on"), ShouldBeTrue)
		So(textnorm.ContainsWord("afterwards", "after"), ShouldBeFalse)
		So(textnorm.ContainsWord("anything", ""), ShouldBeFalse)
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given helper functions", t, func() {
		So(textnorm.Capitalize("fix it"), ShouldEqual, "Fix it")
		So(textnorm.Capitalize(""), ShouldEqual, "")
		So(textnorm.Dedupe([]string{"a", "b", "a"}), ShouldResemble, []string{"a", "b"})
		So(textnorm.DedupeFold([]string{"API", "api", "Db"}), ShouldResemble, []string{"API", "Db"})
		So(textnorm.WordBoundary("c++").MatchString("we use c++ daily"), ShouldBeFalse)
		So(textnorm.WordBoundary("react").MatchString("React app"), ShouldBeTrue)
	})
}
