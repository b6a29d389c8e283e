package config_test

import (
	"context"
	"testing"

	"github.com/okian/gaffer/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("GAFFER_CONFIG", "")

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.DefaultFormation, ShouldEqual, "4-3-3")
				So(cfg.DataDir, ShouldEqual, "data")
				So(cfg.MaxSubstitutes, ShouldEqual, 7)
			})
		})

		Convey("When overriding via environment variables", func() {
			t.Setenv("GAFFER_ADDR", ":7001")
			t.Setenv("GAFFER_DEFAULT_FORMATION", "4-4-2")
			t.Setenv("GAFFER_LOG_LEVEL", "debug")

			cfg, err := config.Load(context.Background())

			Convey("Then env values should win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7001")
				So(cfg.DefaultFormation, ShouldEqual, "4-4-2")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})

		Convey("When the address is forced empty", func() {
			t.Setenv("GAFFER_ADDR", "")

			Convey("Then validation rejects the config", func() {
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestNewDefaults(t *testing.T) {
	Convey("Given defaults from New", t, func() {
		cfg := config.New(context.Background())

		Convey("Then form weights should be sane", func() {
			So(cfg.FormGoalWeight, ShouldBeGreaterThan, 0)
			So(cfg.FormAssistWeight, ShouldBeGreaterThan, 0)
			So(cfg.FormMinutesFull, ShouldBeGreaterThan, 0)
			So(cfg.RosterTimeoutMS, ShouldBeGreaterThan, 0)
		})
	})
}
