package locale

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNegotiate(t *testing.T) {
	Convey("Given Accept-Language values", t, func() {
		So(Negotiate("ar-JO,ar;q=0.9,en;q=0.5", English).Code, ShouldEqual, "ar")
		So(Negotiate("en-GB", Arabic).Code, ShouldEqual, "en")
		So(Negotiate("ar", English).Direction, ShouldEqual, RTL)
		So(Negotiate("", Arabic).Code, ShouldEqual, "ar")
		So(Negotiate("ja", Arabic).Code, ShouldEqual, "ar")
	})
}

func TestContext(t *testing.T) {
	Convey("Given a context", t, func() {
		ctx := context.Background()
		So(FromContext(ctx).Code, ShouldEqual, "en")
		So(FromContext(WithLocale(ctx, Arabic)).Direction, ShouldEqual, RTL)
	})
}

func TestLabels(t *testing.T) {
	Convey("Given the label table", t, func() {
		So(English.Label("stage.shortlisted"), ShouldEqual, "Shortlisted")
		So(Arabic.Label("stage.hired"), ShouldEqual, "تم التوظيف")
		So(Arabic.Label("missing.key"), ShouldEqual, "missing.key")

		Convey("Every English key has an Arabic translation", func() {
			for k := range labels["en"] {
				_, ok := labels["ar"][k]
				So(ok, ShouldBeTrue)
			}
			So(len(Arabic.Labels()), ShouldEqual, len(labels["en"]))
		})

		l, ok := Lookup(" AR ")
		So(ok, ShouldBeTrue)
		So(l.Code, ShouldEqual, "ar")
		_, ok = Lookup("fr")
		So(ok, ShouldBeFalse)
	})
}
