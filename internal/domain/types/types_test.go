package types_test

import (
	"encoding/json"
	"testing"

	"github.com/revline/explore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeedPageRendering(t *testing.T) {
	Convey("Given a feed page", t, func() {
		Convey("When the page has no next cursor", func() {
			page := types.FeedPage{Cars: []types.FeedCar{}}
			raw, err := json.Marshal(page)

			Convey("Then next_cursor renders as an explicit null", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"next_cursor":null`)
				So(string(raw), ShouldContainSubstring, `"has_more":false`)
			})
		})

		Convey("When a ranked entry carries no view count", func() {
			raw, err := json.Marshal(types.FeedCar{
				Car:        types.Car{ID: "c1", Make: "Nissan", Model: "Skyline", Year: 1999},
				Owner:      types.Owner{Name: "Aiko"},
				Score:      0.91,
				IsTrending: true,
			})

			Convey("Then the trending-only field stays off the wire", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, "view_count")
				So(string(raw), ShouldContainSubstring, `"is_trending":true`)
			})
		})

		Convey("When a trending entry carries no score", func() {
			raw, err := json.Marshal(types.FeedCar{
				Car:       types.Car{ID: "c1", Make: "Nissan", Model: "Skyline", Year: 1999},
				Owner:     types.Owner{Name: "Aiko"},
				ViewCount: 42,
			})

			Convey("Then the ranked-only fields stay off the wire", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, `"score"`)
				So(string(raw), ShouldContainSubstring, `"view_count":42`)
			})
		})
	})
}
