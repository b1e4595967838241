package entities_test

import (
	"testing"

	"github.com/okian/meetmind/internal/domain/entities"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var team = model.Team{Members: []model.TeamMember{
	{Name: "Sakshi", Role: "Backend Developer"},
	{Name: "Mohit", Role: "Frontend Developer"},
	{Name: "Ana Lee", Role: "QA Engineer"},
	{Name: "J", Role: "Intern"},
}}

func texts(es []model.Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Text
	}
	return out
}

func sentences(in ...string) []model.Sentence {
	out := make([]model.Sentence, len(in))
	for i, t := range in {
		out[i] = model.Sentence{ID: i + 1, RawText: t}
	}
	return out
}

func TestPersons(t *testing.T) {
	x := entities.New(team)

	Convey("Given a sentence naming a member", t, func() {
		got := x.Persons(sentences("This should be done by Sakshi by Friday."), 0)
		So(got, ShouldHaveLength, 1)
		So(got[0].Text, ShouldEqual, "Sakshi")
		So(got[0].Type, ShouldEqual, types.EntityPerson)
		So(got[0].Start, ShouldEqual, 23)
		So(got[0].End, ShouldEqual, 29)
	})

	Convey("Given a name glued into a longer word", t, func() {
		So(x.Persons(sentences("Mohitify the build pipeline"), 0), ShouldBeEmpty)
	})

	Convey("Given a multi-word name split by a hyphen", t, func() {
		So(texts(x.Persons(sentences("Ana-Lee reviews the schema"), 0)), ShouldResemble, []string{"Ana Lee"})
	})

	Convey("Given a sentence with no names but named neighbours", t, func() {
		in := sentences("Mohit will deploy the service.", "Ana Lee reviews the schema.", "We need to fix the cache.")
		So(texts(x.Persons(in, 2)), ShouldResemble, []string{"Mohit", "Ana Lee"})
	})

	Convey("Given the only mention far behind the sentence", t, func() {
		in := sentences("Sakshi owns billing.", "Lunch was good.", "The demo went fine.", "Nothing else.", "Update the invoices.")
		So(texts(x.Persons(in, 4)), ShouldResemble, []string{"Sakshi"})
	})

	Convey("Given a one-letter roster name", t, func() {
		So(x.Persons(sentences("J will test it"), 0), ShouldBeEmpty)
	})
}

func TestTechnical(t *testing.T) {
	Convey("Given text with skill keywords and known phrases", t, func() {
		So(texts(entities.Technical("Update the API endpoint and the dashboard")), ShouldResemble, []string{"API design", "dashboard"})
		So(texts(entities.Technical("Fix the login bug by tomorrow")), ShouldContain, "login bug")
	})

	Convey("Given text with nothing technical", t, func() {
		So(entities.Technical("Book the team lunch"), ShouldBeEmpty)
	})
}

func TestTimes(t *testing.T) {
	Convey("Given text with several time expressions", t, func() {
		got := entities.Times("Ship it by Friday or next week tonight")
		So(texts(got), ShouldResemble, []string{"next week", "tonight", "Friday", "by friday"})
		for _, e := range got {
			So(e.Type, ShouldEqual, types.EntityTime)
		}
	})

	Convey("Given a word containing a time word", t, func() {
		So(entities.Times("Review the todays-report"), ShouldBeEmpty)
	})
}

func TestEnrich(t *testing.T) {
	Convey("Given a task from a sentence about a login bug", t, func() {
		src := 1
		task := model.NewTask(1, "Fix the login bug by tomorrow")
		task.SourceSentenceID = &src
		orphan := model.NewTask(2, "Write docs")

		entities.New(team).Enrich([]*model.Task{task, orphan}, sentences("Fix the login bug by tomorrow"))

		Convey("Then the lists are filled from the sentence", func() {
			So(task.TechnicalTerms, ShouldContain, "login bug")
			So(task.TimeExpressions, ShouldResemble, []string{"tomorrow"})
			So(task.MentionedPeople, ShouldBeEmpty)
		})

		Convey("Then tasks without a source keep empty lists", func() {
			So(orphan.TechnicalTerms, ShouldBeEmpty)
			So(orphan.TimeExpressions, ShouldBeEmpty)
		})
	})
}

func TestOffsets(t *testing.T) {
	Convey("Given a sentence with capitals and repeated spaces", t, func() {
		raw := "Please  ask SAKSHI to fix the   React component by Friday"
		got := entities.New(team).ForSentence(sentences(raw), 0)

		Convey("Then every entity span slices the raw sentence", func() {
			spans := map[string]string{}
			for _, en := range got {
				spans[en.Text] = raw[en.Start:en.End]
			}
			So(spans["Sakshi"], ShouldEqual, "SAKSHI")
			So(spans["React"], ShouldEqual, "React")
			So(spans["Friday"], ShouldEqual, "Friday")
		})
	})
}
