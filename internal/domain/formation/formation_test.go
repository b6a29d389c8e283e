package formation_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/pitch"
)

func TestGet(t *testing.T) {
	Convey("Given the formation catalog", t, func() {
		Convey("When fetching a known key", func() {
			f, err := formation.Get("4-4-2")

			So(err, ShouldBeNil)
			So(f.Key, ShouldEqual, "4-4-2")
			So(f.Name, ShouldNotBeEmpty)
			So(f.Slots, ShouldHaveLength, 11)
		})

		Convey("When fetching an unknown key", func() {
			_, err := formation.Get("9-9-9")

			So(err, ShouldEqual, formation.ErrNotFound)
		})

		Convey("When fetching the default", func() {
			f := formation.Default()

			So(f.Key, ShouldEqual, formation.DefaultKey)
			So(f.Slots, ShouldHaveLength, 11)
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given the catalog key list", t, func() {
		keys := formation.Keys()

		Convey("Then it is sizable and every key resolves", func() {
			So(len(keys), ShouldBeGreaterThanOrEqualTo, 20)
			for _, key := range keys {
				_, err := formation.Get(key)
				So(err, ShouldBeNil)
			}
		})

		Convey("Then mutating the returned slice does not touch the catalog", func() {
			keys[0] = "tampered"
			So(formation.Keys()[0], ShouldNotEqual, "tampered")
		})
	})
}

func TestCatalogShape(t *testing.T) {
	Convey("Given every formation in the catalog", t, func() {
		for _, key := range formation.Keys() {
			f, err := formation.Get(key)
			So(err, ShouldBeNil)

			Convey("Then "+key+" has eleven uniquely keyed slots with a goalkeeper", func() {
				So(f.Slots, ShouldHaveLength, 11)

				seen := make(map[string]bool, len(f.Slots))
				hasGK := false
				for _, s := range f.Slots {
					So(seen[s.Key], ShouldBeFalse)
					seen[s.Key] = true
					if strings.Contains(s.Key, "GK") {
						hasGK = true
					}
					So(s.X, ShouldBeBetweenOrEqual, 0, pitch.WidthMeters)
					So(s.Y, ShouldBeBetweenOrEqual, 0, pitch.LengthMeters)
				}
				So(hasGK, ShouldBeTrue)
			})
		}
	})
}

func TestSlotLookup(t *testing.T) {
	Convey("Given a formation", t, func() {
		f := formation.Default()

		Convey("When looking up an existing slot", func() {
			s, ok := f.Slot("GK")

			So(ok, ShouldBeTrue)
			So(s.Key, ShouldEqual, "GK")
		})

		Convey("When looking up a missing slot", func() {
			_, ok := f.Slot("QB")

			So(ok, ShouldBeFalse)
		})

		Convey("When listing slot keys", func() {
			keys := f.SlotKeys()

			So(keys, ShouldHaveLength, len(f.Slots))
			So(keys[0], ShouldEqual, f.Slots[0].Key)
		})
	})
}
