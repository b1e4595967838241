package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/meetmind/internal/adapters/roster"
	"github.com/okian/meetmind/internal/config"
	"github.com/okian/meetmind/pkg/logger"
)

func TestNewService(t *testing.T) {
	convey.Convey("Given configuration with a roster file", t, func() {
		path := filepath.Join(t.TempDir(), "team.yaml")
		err := os.WriteFile(path, []byte("members:\n  - name: Sakshi\n    role: Backend Developer\n    skills: [Backend]\n"), 0o600)
		convey.So(err, convey.ShouldBeNil)

		cfg := config.New()
		cfg.TeamFile = path
		cfg.Timezone = "Asia/Kolkata"

		convey.Convey("When the service is built", func() {
			svc, err := newService(cfg, logger.Nop())

			convey.Convey("Then it carries the roster", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.Team().Names(), convey.ShouldResemble, []string{"Sakshi"})
			})
		})

		convey.Convey("When the roster file is missing", func() {
			cfg.TeamFile = filepath.Join(t.TempDir(), "none.yaml")
			_, err := newService(cfg, logger.Nop())
			convey.So(errors.Is(err, roster.ErrInvalidRoster), convey.ShouldBeTrue)
		})

		convey.Convey("When the timezone is unknown", func() {
			cfg.Timezone = "Mars/Olympus"
			_, err := newService(cfg, logger.Nop())
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestHTTPServer(t *testing.T) {
	convey.Convey("Given a server built from defaults", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc, err := newService(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(ctx, cfg, svc, logger.Nop())
		convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)

		ts := httptest.NewServer(srv.Handler)
		defer ts.Close()

		convey.Convey("Then every route answers", func() {
			for _, path := range []string{"/healthz", "/stats", "/team", "/openapi.yaml", "/api-docs"} {
				resp, err := http.Get(ts.URL + path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				_ = resp.Body.Close()
			}
		})

		convey.Convey("Then a transcript can be extracted", func() {
			body := `{"sentences":[{"id":1,"raw_text":"We need to update the docs."}]}`
			resp, err := http.Post(ts.URL+"/extract", "application/json", strings.NewReader(body))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Then updating system metrics does not panic", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}
