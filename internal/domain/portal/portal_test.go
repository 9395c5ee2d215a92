package portal

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApply(t *testing.T) {
	Convey("Given default settings", t, func() {
		s := Defaults()

		Convey("Valid changes return a new value and leave the original alone", func() {
			next, err := s.Apply(SectionBranding, "primaryColor", "#AABBCC")
			So(err, ShouldBeNil)
			So(next.Branding.PrimaryColor, ShouldEqual, "#aabbcc")
			So(s.Branding.PrimaryColor, ShouldEqual, "#1f6feb")
		})

		Convey("Numbers arrive as JSON floats", func() {
			next, err := s.Apply(SectionLayout, "jobsPerPage", float64(25))
			So(err, ShouldBeNil)
			So(next.Layout.JobsPerPage, ShouldEqual, 25)
		})

		Convey("Bools accept strings", func() {
			next, err := s.Apply(SectionLayout, "showSalary", "true")
			So(err, ShouldBeNil)
			So(next.Layout.ShowSalary, ShouldBeTrue)
		})

		Convey("Unknown sections and keys are rejected", func() {
			_, err := s.Apply("footer", "text", "x")
			So(errors.Is(err, ErrUnknownSetting), ShouldBeTrue)
			_, err = s.Apply(SectionSocial, "myspace", "x")
			So(errors.Is(err, ErrUnknownSetting), ShouldBeTrue)
		})

		Convey("Bad values are rejected", func() {
			cases := []struct {
				section, key string
				value        any
			}{
				{SectionBranding, "primaryColor", "blue"},
				{SectionBranding, "companyName", 42},
				{SectionLayout, "jobsPerPage", float64(0)},
				{SectionLayout, "jobsPerPage", float64(101)},
				{SectionLayout, "jobsPerPage", 2.5},
				{SectionLayout, "template", "brutalist"},
				{SectionLayout, "enableSearch", "maybe"},
			}
			for _, c := range cases {
				_, err := s.Apply(c.section, c.key, c.value)
				So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
			}
		})
	})
}

func TestConsole(t *testing.T) {
	Convey("Given a console", t, func() {
		c := NewConsole(WithSaveNotice(3 * time.Second))
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

		Convey("Apply marks it dirty and a failed apply keeps state", func() {
			_, err := c.Apply(SectionContent, "headline", "Work with us")
			So(err, ShouldBeNil)
			So(c.Dirty(), ShouldBeTrue)
			_, err = c.Apply(SectionLayout, "template", "nope")
			So(err, ShouldNotBeNil)
			So(c.Settings().Content.Headline, ShouldEqual, "Work with us")
			So(c.Settings().Layout.Template, ShouldEqual, TemplateModern)
		})

		Convey("Save shows the notice for three seconds", func() {
			So(c.SavedAt(now), ShouldBeFalse)
			until := c.Save(now)
			So(until.Equal(now.Add(3*time.Second)), ShouldBeTrue)
			So(c.Dirty(), ShouldBeFalse)
			So(c.SavedAt(now.Add(2999*time.Millisecond)), ShouldBeTrue)
			So(c.SavedAt(now.Add(3*time.Second)), ShouldBeFalse)
		})
	})
}
