package feed_test

import (
	"fmt"
	"testing"
	"time"

	feed "github.com/revline/explore/internal/domain/feed"
	"github.com/revline/explore/internal/domain/model"
	scoring "github.com/revline/explore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func premiumOwner(id, username string) model.Owner {
	return model.Owner{
		ID:              id,
		TokenIdentifier: "oauth|" + id,
		Username:        username,
		Role:            model.RolePremium,
	}
}

func publishedCar(id, ownerID, mk, mdl string, ageDays int) model.Car {
	created := testNow.AddDate(0, 0, -ageDays)
	return model.Car{
		ID:          id,
		UserID:      ownerID,
		Make:        mk,
		Model:       mdl,
		IsPublished: true,
		CreatedAt:   created,
		AddedAt:     created,
	}
}

func recentViews(carID string, n int) []model.AnalyticsEvent {
	events := make([]model.AnalyticsEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, model.AnalyticsEvent{
			Type:      model.EventCarView,
			CarID:     carID,
			CreatedAt: testNow.Add(-time.Duration(i+1) * time.Minute),
		})
	}
	return events
}

// garage builds n published cars under one premium owner, each a distinct
// make so diversity does not reorder them, with view counts descending in
// index order so car-0 ranks first.
func garage(n int) ([]model.Car, []model.Owner, []model.AnalyticsEvent) {
	owners := []model.Owner{premiumOwner("user-1", "driver_one")}
	cars := make([]model.Car, 0, n)
	var events []model.AnalyticsEvent
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("car-%d", i)
		cars = append(cars, publishedCar(id, "user-1", fmt.Sprintf("Make%d", i), "GT", 1))
		events = append(events, recentViews(id, (n-i)*3)...)
	}
	return cars, owners, events
}

func TestRanked(t *testing.T) {
	Convey("Given a garage of ranked cars", t, func() {
		scorer := scoring.New()
		cars, owners, events := garage(5)

		Convey("When requesting the first page", func() {
			page := feed.Ranked(cars, owners, events, scorer, testNow, 2, "")

			Convey("Then cars come back by descending score with a cursor", func() {
				So(page.Cars, ShouldHaveLength, 2)
				So(page.Cars[0].Car.ID, ShouldEqual, "car-0")
				So(page.Cars[1].Car.ID, ShouldEqual, "car-1")
				So(page.NextCursor, ShouldEqual, "car-1")
				So(page.HasMore, ShouldBeTrue)
				So(page.Eligible, ShouldEqual, 5)
			})

			Convey("And following the cursor walks the whole feed without repeats", func() {
				seen := map[string]bool{}
				for _, sc := range page.Cars {
					seen[sc.Car.ID] = true
				}
				cursor := page.NextCursor
				pages := 1
				for cursor != "" && pages < 10 {
					next := feed.Ranked(cars, owners, events, scorer, testNow, 2, cursor)
					for _, sc := range next.Cars {
						So(seen[sc.Car.ID], ShouldBeFalse)
						seen[sc.Car.ID] = true
					}
					cursor = next.NextCursor
					pages++
				}
				So(len(seen), ShouldEqual, 5)
			})
		})

		Convey("When the last page comes back short", func() {
			page := feed.Ranked(cars, owners, events, scorer, testNow, 2, "car-3")

			Convey("Then no cursor is issued and hasMore is false", func() {
				So(page.Cars, ShouldHaveLength, 1)
				So(page.Cars[0].Car.ID, ShouldEqual, "car-4")
				So(page.NextCursor, ShouldBeEmpty)
				So(page.HasMore, ShouldBeFalse)
			})
		})

		Convey("When the page boundary lands exactly on the end", func() {
			page := feed.Ranked(cars, owners, events, scorer, testNow, 5, "")

			Convey("Then a cursor is issued even though nothing follows", func() {
				So(page.Cars, ShouldHaveLength, 5)
				So(page.NextCursor, ShouldEqual, "car-4")
				So(page.HasMore, ShouldBeFalse)

				next := feed.Ranked(cars, owners, events, scorer, testNow, 5, page.NextCursor)
				So(next.Cars, ShouldBeEmpty)
				So(next.NextCursor, ShouldBeEmpty)
			})
		})

		Convey("When the cursor references a car no longer in the feed", func() {
			page := feed.Ranked(cars, owners, events, scorer, testNow, 2, "gone-car")

			Convey("Then the feed restarts from the top", func() {
				So(page.Cars, ShouldHaveLength, 2)
				So(page.Cars[0].Car.ID, ShouldEqual, "car-0")
			})
		})

		Convey("When the limit is not positive", func() {
			cars20, owners20, events20 := garage(30)
			page := feed.Ranked(cars20, owners20, events20, scorer, testNow, 0, "")

			Convey("Then the default page size applies", func() {
				So(page.Cars, ShouldHaveLength, feed.DefaultPageSize)
			})
		})

		Convey("When unpublished and free-tier cars are mixed in", func() {
			freeOwner := model.Owner{
				ID:              "user-free",
				TokenIdentifier: "oauth|user-free",
				Username:        "free_rider",
				Role:            model.RoleFree,
			}
			draft := publishedCar("car-draft", "user-1", "Audi", "RS6", 1)
			draft.IsPublished = false
			orphan := publishedCar("car-orphan", "user-missing", "Lotus", "Elise", 1)
			freeCar := publishedCar("car-free", "user-free", "Toyota", "Supra", 1)

			all := append(append([]model.Car{}, cars...), draft, orphan, freeCar)
			page := feed.Ranked(all, append(owners, freeOwner), events, scorer, testNow, 20, "")

			Convey("Then none of them surface", func() {
				So(page.Cars, ShouldHaveLength, 5)
				for _, sc := range page.Cars {
					So(sc.Car.ID, ShouldNotEqual, "car-draft")
					So(sc.Car.ID, ShouldNotEqual, "car-orphan")
					So(sc.Car.ID, ShouldNotEqual, "car-free")
				}
			})
		})

		Convey("When a car references its owner by bare subject", func() {
			bare := publishedCar("car-bare", "user-1", "Koenigsegg", "CC850", 1)
			page := feed.Ranked(append(cars, bare), owners, events, scorer, testNow, 20, "")

			Convey("Then the dual-key owner index still resolves it", func() {
				ids := make([]string, 0, len(page.Cars))
				for _, sc := range page.Cars {
					ids = append(ids, sc.Car.ID)
				}
				So(ids, ShouldContain, "car-bare")
			})
		})

		Convey("When candidates tie on score", func() {
			tied := []model.Car{
				publishedCar("tie-a", "user-1", "SameMake", "A", 1),
				publishedCar("tie-b", "user-1", "SameMake", "B", 1),
				publishedCar("tie-c", "user-1", "SameMake", "C", 1),
			}
			page := feed.Ranked(tied, owners, nil, scorer, testNow, 3, "")

			Convey("Then scan order is preserved among equals", func() {
				// tie-a takes the diversity bonus; b and c tie exactly.
				So(page.Cars[0].Car.ID, ShouldEqual, "tie-a")
				So(page.Cars[1].Car.ID, ShouldEqual, "tie-b")
				So(page.Cars[2].Car.ID, ShouldEqual, "tie-c")
			})
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a searchable garage", t, func() {
		owners := []model.Owner{
			premiumOwner("user-1", "skyline_fan"),
			premiumOwner("user-2", "muscle_marcus"),
		}
		cars := []model.Car{
			publishedCar("car-1", "user-1", "Nissan", "Skyline GT-R", 1),
			publishedCar("car-2", "user-1", "Mazda", "RX-7", 1),
			publishedCar("car-3", "user-2", "Ford", "Mustang GT", 1),
		}
		cars[0].Year = 1999
		cars[1].Year = 1994
		cars[2].Year = 2021

		Convey("When searching by make", func() {
			m := feed.Search(cars, owners, "nissan", 20)
			So(m.Cars, ShouldHaveLength, 1)
			So(m.Cars[0].Car.ID, ShouldEqual, "car-1")
			So(m.HasMore, ShouldBeFalse)
		})

		Convey("When searching by model substring", func() {
			m := feed.Search(cars, owners, "gt", 20)

			Convey("Then both GT-badged cars match in scan order", func() {
				So(m.Cars, ShouldHaveLength, 2)
				So(m.Cars[0].Car.ID, ShouldEqual, "car-1")
				So(m.Cars[1].Car.ID, ShouldEqual, "car-3")
			})
		})

		Convey("When searching by year", func() {
			m := feed.Search(cars, owners, "199", 20)

			Convey("Then the year digits match as substrings", func() {
				So(m.Cars, ShouldHaveLength, 2)
			})
		})

		Convey("When searching by owner username", func() {
			m := feed.Search(cars, owners, "MARCUS", 20)
			So(m.Cars, ShouldHaveLength, 1)
			So(m.Cars[0].Car.ID, ShouldEqual, "car-3")
		})

		Convey("When the query has surrounding whitespace", func() {
			m := feed.Search(cars, owners, "  mazda  ", 20)
			So(m.Cars, ShouldHaveLength, 1)
		})

		Convey("When nothing matches", func() {
			m := feed.Search(cars, owners, "lamborghini", 20)
			So(m.Cars, ShouldBeEmpty)
			So(m.HasMore, ShouldBeFalse)
		})

		Convey("When matches exceed the limit", func() {
			m := feed.Search(cars, owners, "", 2)

			Convey("Then the empty query matches everything and truncates", func() {
				So(m.Cars, ShouldHaveLength, 2)
				So(m.HasMore, ShouldBeTrue)
			})
		})
	})
}

func TestFiltered(t *testing.T) {
	Convey("Given a filterable garage", t, func() {
		owners := []model.Owner{premiumOwner("user-1", "driver_one")}
		cars := []model.Car{
			publishedCar("car-1", "user-1", "Nissan", "Skyline GT-R", 1),
			publishedCar("car-2", "user-1", "Ford", "Mustang GT", 1),
			publishedCar("car-3", "user-1", "Ford", "Focus RS", 1),
		}
		cars[0].Year = 1999
		cars[0].PowerHp = "276 hp"
		cars[1].Year = 2021
		cars[1].PowerHp = "450hp (tuned)"
		cars[2].Year = 2017
		cars[2].PowerHp = "stock"

		Convey("When filtering by make", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{Make: "ford"}, 20)
			So(m.Cars, ShouldHaveLength, 2)
		})

		Convey("When the make filter is the all sentinel", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{Make: "All"}, 20)
			So(m.Cars, ShouldHaveLength, 3)
		})

		Convey("When filtering by year range", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{MinYear: 2000, MaxYear: 2020}, 20)
			So(m.Cars, ShouldHaveLength, 1)
			So(m.Cars[0].Car.ID, ShouldEqual, "car-3")
		})

		Convey("When filtering by minimum horsepower", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{MinHp: 300}, 20)

			Convey("Then the parsed hp fields clear the bar and unparseable ones fail it", func() {
				So(m.Cars, ShouldHaveLength, 1)
				So(m.Cars[0].Car.ID, ShouldEqual, "car-2")
			})
		})

		Convey("When filtering by maximum horsepower", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{MaxHp: 300}, 20)

			Convey("Then the unparseable field counts as zero and passes", func() {
				So(m.Cars, ShouldHaveLength, 2)
				So(m.Cars[0].Car.ID, ShouldEqual, "car-1")
				So(m.Cars[1].Car.ID, ShouldEqual, "car-3")
			})
		})

		Convey("When filters combine", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{Make: "ford", MinHp: 300}, 20)
			So(m.Cars, ShouldHaveLength, 1)
			So(m.Cars[0].Car.ID, ShouldEqual, "car-2")
		})

		Convey("When no criteria are set", func() {
			m := feed.Filtered(cars, owners, feed.Criteria{}, 20)
			So(m.Cars, ShouldHaveLength, 3)
		})
	})
}

func TestParseHp(t *testing.T) {
	Convey("Given free-text horsepower fields", t, func() {
		Convey("Then the first integer run wins", func() {
			So(feed.ParseHp("326 hp"), ShouldEqual, 326)
			So(feed.ParseHp("450hp (tuned to 500)"), ShouldEqual, 450)
			So(feed.ParseHp("~300"), ShouldEqual, 300)
		})

		Convey("Then unparseable fields come back as zero", func() {
			So(feed.ParseHp(""), ShouldEqual, 0)
			So(feed.ParseHp("stock"), ShouldEqual, 0)
			So(feed.ParseHp("plenty"), ShouldEqual, 0)
		})
	})
}

func TestTrending(t *testing.T) {
	Convey("Given a garage with skewed recent views", t, func() {
		owners := []model.Owner{premiumOwner("user-1", "driver_one")}
		cars := []model.Car{
			publishedCar("car-a", "user-1", "Nissan", "Skyline", 1),
			publishedCar("car-b", "user-1", "Mazda", "RX-7", 1),
			publishedCar("car-c", "user-1", "Ford", "Mustang", 1),
		}
		var events []model.AnalyticsEvent
		events = append(events, recentViews("car-a", 10)...)
		events = append(events, recentViews("car-b", 5)...)
		events = append(events, recentViews("car-c", 2)...)

		Convey("When requesting the leaderboard", func() {
			top := feed.Trending(cars, owners, events, testNow, 10)

			Convey("Then cars rank by recent view volume with counts attached", func() {
				So(top, ShouldHaveLength, 3)
				So(top[0].Car.ID, ShouldEqual, "car-a")
				So(top[0].ViewCount, ShouldEqual, 10)
				So(top[1].Car.ID, ShouldEqual, "car-b")
				So(top[2].Car.ID, ShouldEqual, "car-c")
			})
		})

		Convey("When views fall outside the trailing window", func() {
			stale := []model.AnalyticsEvent{{
				Type:      model.EventCarView,
				CarID:     "car-c",
				CreatedAt: testNow.AddDate(0, 0, -8),
			}}
			top := feed.Trending(cars, owners, append(events, stale...), testNow, 10)

			Convey("Then they do not count", func() {
				So(top[2].ViewCount, ShouldEqual, 2)
			})
		})

		Convey("When a viewed car was deleted", func() {
			dangling := recentViews("car-gone", 50)
			top := feed.Trending(cars, owners, append(events, dangling...), testNow, 10)

			Convey("Then the dangling entry is skipped silently", func() {
				So(top, ShouldHaveLength, 3)
				So(top[0].Car.ID, ShouldEqual, "car-a")
			})
		})

		Convey("When the top entries are crowded out by ineligible cars", func() {
			draft := publishedCar("car-draft", "user-1", "Audi", "RS6", 1)
			draft.IsPublished = false
			hot := recentViews("car-draft", 100)
			top := feed.Trending(append(cars, draft), owners, append(events, hot...), testNow, 2)

			Convey("Then the overfetch window still fills the page with eligible cars", func() {
				So(top, ShouldHaveLength, 2)
				So(top[0].Car.ID, ShouldEqual, "car-a")
				So(top[1].Car.ID, ShouldEqual, "car-b")
			})
		})

		Convey("When the limit is not positive", func() {
			top := feed.Trending(cars, owners, events, testNow, 0)

			Convey("Then the default leaderboard size applies", func() {
				So(len(top), ShouldBeLessThanOrEqualTo, feed.DefaultTrendingSize)
			})
		})

		Convey("When there are no recent views at all", func() {
			top := feed.Trending(cars, owners, nil, testNow, 10)
			So(top, ShouldBeEmpty)
		})
	})
}
