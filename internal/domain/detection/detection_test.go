package detection_test

import (
	"testing"

	"github.com/okian/meetmind/internal/domain/detection"
	"github.com/okian/meetmind/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sentences(texts ...string) []model.Sentence {
	out := make([]model.Sentence, len(texts))
	for i, t := range texts {
		out[i] = model.Sentence{ID: i + 1, RawText: t}
	}
	return out
}

func TestIsTask(t *testing.T) {
	Convey("Given sentences from a meeting", t, func() {
		cases := []struct {
			text string
			want bool
		}{
			{"Fix the login bug by tomorrow", true},
			{"We need to fix the API bug.", true},
			{"Please review the pull request", true},
			{"Mohit will deploy the new build tonight", true},
			{"We discussed the roadmap yesterday", false},
			{"We already fixed the cache", false},
			{"Fix it", false},
			{"Can you do this", false},
			{"The weather was nice today", false},
		}
		for _, c := range cases {
			Convey(c.text, func() {
				So(detection.IsTask(c.text), ShouldEqual, c.want)
			})
		}
	})

	Convey("Given the same sentence twice", t, func() {
		s := "This should be done by Sakshi by Friday."
		So(detection.IsTask(s), ShouldEqual, detection.IsTask(s))
	})
}

func TestIsTaskSentence(t *testing.T) {
	Convey("Given sentences that carry preprocessed tokens", t, func() {
		Convey("When the tokens are fewer than three", func() {
			s := model.Sentence{ID: 1, RawText: "Deploy the build", Tokens: []string{"deploy", "build"}}
			So(detection.IsTask(s.RawText), ShouldBeTrue)
			So(detection.IsTaskSentence(s), ShouldBeFalse)
		})

		Convey("When punctuation tokens lift the count to three", func() {
			s := model.Sentence{ID: 1, RawText: "Deploy staging!", Tokens: []string{"deploy", "staging", "!"}}
			So(detection.IsTask(s.RawText), ShouldBeFalse)
			So(detection.IsTaskSentence(s), ShouldBeTrue)
		})

		Convey("When there are no tokens the words are counted", func() {
			s := model.Sentence{ID: 1, RawText: "Deploy the build"}
			So(detection.IsTaskSentence(s), ShouldBeTrue)
		})
	})

	Convey("Given a detector over a tokenised sentence too short to be a task", t, func() {
		in := []model.Sentence{{ID: 1, RawText: "Deploy the build", Tokens: []string{"deploy", "build"}}}
		So(detection.New().Detect(in), ShouldBeEmpty)
	})
}

func TestExtractCore(t *testing.T) {
	Convey("Given conversational sentences", t, func() {
		So(detection.ExtractCore("So we need to update the docs"), ShouldEqual, "Update the docs")
		So(detection.ExtractCore("I think we should refactor the payment module"), ShouldEqual, "Refactor the payment module")
		So(detection.ExtractCore("Fix the login bug by tomorrow"), ShouldEqual, "Fix the login bug by tomorrow")
	})
}

func TestTooVague(t *testing.T) {
	Convey("Given short or placeholder descriptions", t, func() {
		So(detection.TooVague("Fix"), ShouldBeTrue)
		So(detection.TooVague("Do it"), ShouldBeTrue)
		So(detection.TooVague("This thing"), ShouldBeTrue)
		So(detection.TooVague("Fix the login bug"), ShouldBeFalse)
	})
}

func TestResolveContext(t *testing.T) {
	Convey("Given a vague sentence after an actionable one", t, func() {
		in := sentences("We need to fix the API bug.", "This should be done by Sakshi by Friday.")

		Convey("Then the action of the earlier sentence is spliced in", func() {
			text, ok := detection.ResolveContext(in, 1)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "fix the API bug by Sakshi by Friday")
		})

		Convey("Then a sentence that is not vague is left alone", func() {
			text, ok := detection.ResolveContext(in, 0)
			So(ok, ShouldBeFalse)
			So(text, ShouldEqual, "We need to fix the API bug.")
		})
	})

	Convey("Given a vague sentence with no usable donor", t, func() {
		in := sentences("Lunch was great.", "This should be done by Friday.")
		_, ok := detection.ResolveContext(in, 1)
		So(ok, ShouldBeFalse)
	})
}

func TestDetect(t *testing.T) {
	Convey("Given a single actionable sentence", t, func() {
		tasks := detection.New().Detect(sentences("Fix the login bug by tomorrow"))

		Convey("Then one task is produced from it", func() {
			So(tasks, ShouldHaveLength, 1)
			So(tasks[0].ID, ShouldEqual, 1)
			So(tasks[0].Description, ShouldStartWith, "Fix the login bug")
			src, ok := tasks[0].SourceID()
			So(ok, ShouldBeTrue)
			So(src, ShouldEqual, 1)
		})
	})

	Convey("Given a task followed by a vague follow-up", t, func() {
		tasks := detection.New().Detect(sentences("We need to fix the API bug.", "This should be done by Sakshi by Friday."))

		Convey("Then the follow-up carries the earlier action", func() {
			So(tasks, ShouldHaveLength, 2)
			So(tasks[0].Description, ShouldEqual, "Fix the API bug")
			So(tasks[1].Description, ShouldEqual, "Fix the API bug by Sakshi by Friday")
			So(*tasks[1].SourceSentenceID, ShouldEqual, 2)
		})
	})

	Convey("Given a starting id", t, func() {
		in := sentences(
			"Update the onboarding docs",
			"We discussed the budget",
			"Please deploy the hotfix to staging",
			"Write tests for the parser",
		)
		tasks := detection.New(detection.WithStartID(10)).Detect(in)

		Convey("Then ids increase from it without gaps", func() {
			So(tasks, ShouldHaveLength, 3)
			for i, task := range tasks {
				So(task.ID, ShouldEqual, 10+i)
			}
			So(*tasks[1].SourceSentenceID, ShouldEqual, 3)
		})
	})

	Convey("Given no actionable sentences", t, func() {
		tasks := detection.New().Detect(sentences("Thanks everyone", "See you next week"))
		So(tasks, ShouldBeEmpty)
		So(tasks, ShouldNotBeNil)
	})
}
