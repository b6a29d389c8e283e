package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gaffer/internal/adapters/store"
)

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		ID:          "snap-1",
		Formation:   "4-3-3",
		Starters:    map[string]int{"GK": 1, "ST": 7},
		Substitutes: []int{9, 10},
		SavedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a FileStore over a temp directory", t, func() {
		dir := t.TempDir()
		s, err := store.NewFileStore(dir)
		So(err, ShouldBeNil)

		Convey("When saving and loading a snapshot", func() {
			So(s.Save(ctx, "Arsenal", sampleSnapshot()), ShouldBeNil)
			got, err := s.Load(ctx, "Arsenal")

			So(err, ShouldBeNil)
			So(got, ShouldResemble, sampleSnapshot())
		})

		Convey("When loading a team that was never saved", func() {
			_, err := s.Load(ctx, "Nowhere FC")

			Convey("Then the miss is the ErrNotFound sentinel", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the stored file is corrupt", func() {
			path := filepath.Join(dir, "arsenal.json")
			So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)
			_, err := s.Load(ctx, "Arsenal")

			Convey("Then the corruption reads as ErrNotFound with a cause", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "corrupt")
			})
		})

		Convey("When saving twice for the same team", func() {
			So(s.Save(ctx, "Arsenal", sampleSnapshot()), ShouldBeNil)
			second := sampleSnapshot()
			second.Formation = "4-4-2"
			So(s.Save(ctx, "Arsenal", second), ShouldBeNil)

			got, err := s.Load(ctx, "Arsenal")
			So(err, ShouldBeNil)
			So(got.Formation, ShouldEqual, "4-4-2")
		})

		Convey("When the team name needs sanitizing", func() {
			So(s.Save(ctx, "FC Sankt Göran!", sampleSnapshot()), ShouldBeNil)

			Convey("Then the same messy key loads it back", func() {
				got, err := s.Load(ctx, "FC Sankt Göran!")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "snap-1")
			})
		})
	})

	Convey("Given an unusable data directory", t, func() {
		_, err := store.NewFileStore(filepath.Join(string(os.PathSeparator), "dev", "null", "nested"))

		Convey("Then construction fails with ErrPersist", func() {
			So(errors.Is(err, store.ErrPersist), ShouldBeTrue)
		})
	})
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a MemStore", t, func() {
		s := store.NewMemStore()

		Convey("When saving and loading", func() {
			So(s.Save(ctx, "Arsenal", sampleSnapshot()), ShouldBeNil)
			got, err := s.Load(ctx, "arsenal")

			Convey("Then keys are case-insensitive via sanitizing", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, sampleSnapshot())
			})
		})

		Convey("When loading an absent team", func() {
			_, err := s.Load(ctx, "Nowhere FC")
			So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
		})
	})
}
