package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/okian/talentdesk/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a key is new", func() {
			seen := d.SeenAndRecord(ctx, "session-1")

			Convey("Then it is recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key repeats", func() {
			d.SeenAndRecord(ctx, "session-1")
			seen := d.SeenAndRecord(ctx, "session-1")

			Convey("Then it is reported as seen once", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key is unrecorded", func() {
			d.SeenAndRecord(ctx, "session-1")
			d.Unrecord(ctx, "session-1")
			d.Unrecord(ctx, "never-seen")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "session-1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := range 4 {
			d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
		}

		Convey("Then the oldest key is evicted first", func() {
			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord(ctx, "k3"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "k1"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "k0"), ShouldBeFalse)
		})

		Convey("Then unrecording the middle key keeps the order intact", func() {
			d.Unrecord(ctx, "k2")
			d.SeenAndRecord(ctx, "k4")
			d.SeenAndRecord(ctx, "k5")
			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord(ctx, "k1"), ShouldBeFalse)
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := range 20000 {
			d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
		}
		So(d.Size(), ShouldEqual, 20000)
	})

	Convey("Given concurrent submissions of the same key", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var fresh atomic.Int32
		var wg sync.WaitGroup
		for range 64 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "same") {
					fresh.Add(1)
				}
			}()
		}
		wg.Wait()

		So(fresh.Load(), ShouldEqual, 1)
	})
}
