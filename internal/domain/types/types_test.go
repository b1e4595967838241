package types_test

import (
	"encoding/json"
	"sort"
	"testing"

	types "github.com/okian/meetmind/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPriority(t *testing.T) {
	Convey("Given the priority levels", t, func() {
		Convey("Then their string forms match the wire format", func() {
			So(types.PriorityCritical.String(), ShouldEqual, "critical")
			So(types.PriorityHigh.String(), ShouldEqual, "high")
			So(types.PriorityMedium.String(), ShouldEqual, "medium")
			So(types.PriorityLow.String(), ShouldEqual, "low")
			So(types.PriorityUnset.String(), ShouldEqual, "")
		})

		Convey("Then critical outranks everything else", func() {
			So(types.PriorityCritical.MoreUrgentThan(types.PriorityHigh), ShouldBeTrue)
			So(types.PriorityHigh.MoreUrgentThan(types.PriorityMedium), ShouldBeTrue)
			So(types.PriorityMedium.MoreUrgentThan(types.PriorityLow), ShouldBeTrue)
			So(types.PriorityLow.MoreUrgentThan(types.PriorityCritical), ShouldBeFalse)
		})

		Convey("Then an unset priority ranks as medium", func() {
			So(types.PriorityUnset.Rank(), ShouldEqual, types.PriorityMedium.Rank())
			So(types.PriorityUnset.Valid(), ShouldBeFalse)
		})

		Convey("When sorting by rank", func() {
			ps := []types.Priority{types.PriorityLow, types.PriorityCritical, types.PriorityMedium, types.PriorityHigh}
			sort.Slice(ps, func(i, j int) bool { return ps[i].Rank() < ps[j].Rank() })

			Convey("Then the order is critical, high, medium, low", func() {
				So(ps, ShouldResemble, []types.Priority{types.PriorityCritical, types.PriorityHigh, types.PriorityMedium, types.PriorityLow})
			})
		})
	})
}

func TestParsePriority(t *testing.T) {
	Convey("Given priority strings", t, func() {
		Convey("When parsing known values in any case", func() {
			p, err := types.ParsePriority(" HIGH ")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, types.PriorityHigh)
		})

		Convey("When parsing an unknown value", func() {
			_, err := types.ParsePriority("blocker")
			So(err, ShouldWrap, types.ErrUnknownPriority)
		})
	})
}

func TestPriorityJSON(t *testing.T) {
	Convey("Given a struct carrying a priority", t, func() {
		type holder struct {
			P types.Priority `json:"p"`
		}

		Convey("When marshalling", func() {
			b, err := json.Marshal(holder{P: types.PriorityCritical})
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"p":"critical"}`)
		})

		Convey("When unmarshalling", func() {
			var h holder
			So(json.Unmarshal([]byte(`{"p":"low"}`), &h), ShouldBeNil)
			So(h.P, ShouldEqual, types.PriorityLow)
		})

		Convey("When unmarshalling garbage", func() {
			var h holder
			So(json.Unmarshal([]byte(`{"p":"someday"}`), &h), ShouldNotBeNil)
		})
	})
}
