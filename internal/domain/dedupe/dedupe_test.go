package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/revline/explore/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording events", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the event is new", func() {
				seen := d.SeenAndRecord(context.Background(), "event-1")

				Convey("Then it should not have been seen before", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the same event is recorded twice", func() {
				first := d.SeenAndRecord(context.Background(), "event-1")
				second := d.SeenAndRecord(context.Background(), "event-1")

				Convey("Then only the retry reports seen", func() {
					So(first, ShouldBeFalse)
					So(second, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When unrecording an event", func() {
			d := dedupe.NewInMemoryDeduper()
			_ = d.SeenAndRecord(context.Background(), "event-1")
			d.Unrecord(context.Background(), "event-1")

			Convey("Then the id can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(context.Background(), "event-1"), ShouldBeFalse)
			})
		})

		Convey("When the bounded cache overflows", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 5; i++ {
				_ = d.SeenAndRecord(context.Background(), fmt.Sprintf("event-%d", i))
			}

			Convey("Then the oldest ids are evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				// event-0 and event-1 evicted; recording them again is fresh
				So(d.SeenAndRecord(context.Background(), "event-0"), ShouldBeFalse)
				So(d.SeenAndRecord(context.Background(), "event-4"), ShouldBeTrue)
			})
		})

		Convey("When many goroutines record concurrently", func() {
			d := dedupe.NewInMemoryDeduper()
			var wg sync.WaitGroup
			var mu sync.Mutex
			fresh := 0

			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						if !d.SeenAndRecord(context.Background(), fmt.Sprintf("event-%d", i)) {
							mu.Lock()
							fresh++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then each id is fresh exactly once", func() {
				So(fresh, ShouldEqual, 100)
				So(d.Size(), ShouldEqual, 100)
			})
		})
	})
}
