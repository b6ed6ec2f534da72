package config_test

import (
	"context"
	"testing"

	"github.com/okian/nora/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Mobile, convey.ShouldBeFalse)
			convey.So(cfg.SeedCatalog, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "nora")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "core")
			convey.So(cfg.HTTPLatencyBuckets, convey.ShouldBeEmpty)
			convey.So(cfg.MaxRosterSize, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
