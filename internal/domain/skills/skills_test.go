package skills_test

import (
	"testing"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/skills"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInfer(t *testing.T) {
	Convey("Given task descriptions", t, func() {
		Convey("When keywords for several skills appear", func() {
			got := skills.Infer("Update the React component and the database query")

			Convey("Then skills come out in dictionary order without duplicates", func() {
				So(got, ShouldResemble, []string{"React", "Databases"})
			})
		})

		Convey("When a word is a near miss of a skill name", func() {
			got := skills.Infer("Improve automaton coverage")

			Convey("Then the fuzzy pass recovers it", func() {
				So(got, ShouldContain, "Automation")
			})
		})

		Convey("When a keyword only appears inside a longer word", func() {
			got := skills.Infer("Build the guide")

			Convey("Then it is not matched", func() {
				So(got, ShouldNotContain, "Frontend")
			})
		})

		Convey("When nothing technical is mentioned", func() {
			So(skills.Infer("Call the vendor"), ShouldBeEmpty)
		})
	})
}

func TestSimilarity(t *testing.T) {
	Convey("Given two strings", t, func() {
		So(skills.Similarity("React", "react"), ShouldEqual, 1.0)
		So(skills.Similarity("database", "databases"), ShouldBeGreaterThanOrEqualTo, skills.FuzzyThreshold)
		So(skills.Similarity("cat", "figma"), ShouldBeLessThan, 0.5)
	})
}

func TestEnrich(t *testing.T) {
	Convey("Given tasks with and without skills", t, func() {
		a := model.NewTask(1, "Fix the API endpoint")
		b := model.NewTask(2, "Fix the API endpoint")
		b.RequiredSkills = []string{"Testing"}
		skills.Enrich([]*model.Task{a, b})

		Convey("Then only empty ones are filled", func() {
			So(a.RequiredSkills, ShouldResemble, []string{"API design"})
			So(b.RequiredSkills, ShouldResemble, []string{"Testing"})
		})
	})
}

func TestRankMembers(t *testing.T) {
	Convey("Given a roster", t, func() {
		members := []model.TeamMember{
			{Name: "Bob", Skills: []string{"JavaScript"}},
			{Name: "Alice", Skills: []string{"React", "JavaScript"}},
			{Name: "Carol", Skills: []string{"Figma"}},
		}

		Convey("When skills are required", func() {
			ranked := skills.RankMembers([]string{"React", "JavaScript"}, members)

			Convey("Then members are ordered by coverage", func() {
				So(ranked[0].Member.Name, ShouldEqual, "Alice")
				So(ranked[0].Score, ShouldEqual, 1.0)
				So(ranked[1].Member.Name, ShouldEqual, "Bob")
				So(ranked[1].Score, ShouldEqual, 0.5)
				So(ranked[2].Score, ShouldEqual, 0.0)
			})
		})

		Convey("When no skills are required", func() {
			ranked := skills.RankMembers(nil, members)

			Convey("Then everyone scores zero in roster order", func() {
				So(len(ranked), ShouldEqual, 3)
				So(ranked[0].Member.Name, ShouldEqual, "Bob")
				for _, r := range ranked {
					So(r.Score, ShouldEqual, 0.0)
				}
			})
		})
	})
}
