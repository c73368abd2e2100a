package identity_test

import (
	"testing"

	identity "github.com/revline/explore/internal/domain/identity"
	"github.com/revline/explore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOwnerIndex(t *testing.T) {
	Convey("Given owners with issuer-qualified token identifiers", t, func() {
		owners := []model.Owner{
			{ID: "u1", TokenIdentifier: "oauth|abc123", Username: "driver_one"},
			{ID: "u2", TokenIdentifier: "google|xyz789", Username: "driver_two"},
			{ID: "u3", TokenIdentifier: "plainid", Username: "driver_three"},
			{ID: "u4", TokenIdentifier: ""},
		}
		idx := identity.NewOwnerIndex(owners)

		Convey("When resolving by the full token identifier", func() {
			o, ok := idx.Resolve("oauth|abc123")
			So(ok, ShouldBeTrue)
			So(o.Username, ShouldEqual, "driver_one")
		})

		Convey("When resolving by the bare subject segment", func() {
			o, ok := idx.Resolve("abc123")
			So(ok, ShouldBeTrue)
			So(o.Username, ShouldEqual, "driver_one")

			o, ok = idx.Resolve("xyz789")
			So(ok, ShouldBeTrue)
			So(o.Username, ShouldEqual, "driver_two")
		})

		Convey("When the identifier has no separator", func() {
			o, ok := idx.Resolve("plainid")
			So(ok, ShouldBeTrue)
			So(o.Username, ShouldEqual, "driver_three")
		})

		Convey("When the reference matches nothing", func() {
			_, ok := idx.Resolve("stranger")
			So(ok, ShouldBeFalse)
		})

		Convey("When an owner has an empty token identifier", func() {
			_, ok := idx.Resolve("")
			So(ok, ShouldBeFalse)
		})

		Convey("When the subject itself contains a separator", func() {
			multi := identity.NewOwnerIndex([]model.Owner{
				{ID: "u5", TokenIdentifier: "oauth|tenant|deep", Username: "nested"},
			})

			Convey("Then only the first separator splits", func() {
				o, ok := multi.Resolve("tenant|deep")
				So(ok, ShouldBeTrue)
				So(o.Username, ShouldEqual, "nested")
			})
		})
	})
}
