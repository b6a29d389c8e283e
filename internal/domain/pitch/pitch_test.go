package pitch_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gaffer/internal/domain/pitch"
)

func TestToPixel(t *testing.T) {
	Convey("Given a measured pitch rectangle", t, func() {
		rect := pitch.Rect{W: 680, H: 1050}
		const marker = 40.0

		Convey("When projecting the pitch center", func() {
			p := pitch.ToPixel(34, 52.5, rect, marker)

			Convey("Then the marker center lands on the rectangle center", func() {
				So(p.Valid, ShouldBeTrue)
				So(p.X+marker/2, ShouldAlmostEqual, rect.W/2, 0.0001)
				So(p.Y+marker/2, ShouldAlmostEqual, rect.H/2, 0.0001)
			})
		})

		Convey("When projecting the origin corner", func() {
			p := pitch.ToPixel(0, 0, rect, marker)
			So(p.Valid, ShouldBeTrue)
			So(p.X, ShouldEqual, 0)
			So(p.Y, ShouldEqual, 0)
		})

		Convey("When projecting the far corner", func() {
			p := pitch.ToPixel(pitch.WidthMeters, pitch.LengthMeters, rect, marker)

			Convey("Then the marker footprint stays inside the rectangle", func() {
				So(p.X, ShouldAlmostEqual, rect.W-marker, 0.0001)
				So(p.Y, ShouldAlmostEqual, rect.H-marker, 0.0001)
			})
		})

		Convey("When the meter coordinates overshoot the pitch", func() {
			p := pitch.ToPixel(200, -50, rect, marker)

			Convey("Then both axes clamp to the usable track", func() {
				So(p.X, ShouldBeBetweenOrEqual, 0, rect.W-marker)
				So(p.Y, ShouldBeBetweenOrEqual, 0, rect.H-marker)
			})
		})

		Convey("When sampling a grid of positions", func() {
			Convey("Then every point stays within bounds", func() {
				for mx := -10.0; mx <= 80.0; mx += 7.3 {
					for my := -10.0; my <= 120.0; my += 11.1 {
						p := pitch.ToPixel(mx, my, rect, marker)
						So(p.Valid, ShouldBeTrue)
						So(p.X, ShouldBeBetweenOrEqual, 0, rect.W-marker)
						So(p.Y, ShouldBeBetweenOrEqual, 0, rect.H-marker)
					}
				}
			})
		})

		Convey("When projecting the same input twice", func() {
			a := pitch.ToPixel(20, 30, rect, marker)
			b := pitch.ToPixel(20, 30, rect, marker)

			Convey("Then the result does not drift", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When a recentering offset is applied", func() {
			plain := pitch.ToPixel(30, 50, rect, marker)
			shifted := pitch.ToPixelOffset(30, 50, rect, marker, 4, -5)
			equivalent := pitch.ToPixel(34, 45, rect, marker)

			Convey("Then the offset shifts the input meters, not the pixels", func() {
				So(shifted, ShouldResemble, equivalent)
				So(shifted.X, ShouldNotAlmostEqual, plain.X, 0.0001)
			})
		})
	})

	Convey("Given an unmeasured rectangle", t, func() {
		Convey("When any dimension is zero or negative", func() {
			Convey("Then the zero sentinel comes back", func() {
				for _, rect := range []pitch.Rect{{}, {W: 680}, {H: 1050}, {W: -1, H: 400}} {
					p := pitch.ToPixel(34, 52.5, rect, 40)
					So(p, ShouldResemble, pitch.Point{})
					So(p.Valid, ShouldBeFalse)
				}
			})
		})
	})

	Convey("Given a marker wider than the rectangle", t, func() {
		p := pitch.ToPixel(34, 52.5, pitch.Rect{W: 20, H: 20}, 40)

		Convey("Then the position collapses to the origin instead of going negative", func() {
			So(p.Valid, ShouldBeTrue)
			So(p.X, ShouldEqual, 0)
			So(p.Y, ShouldEqual, 0)
		})
	})
}
