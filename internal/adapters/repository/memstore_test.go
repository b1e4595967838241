package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/meetmind/internal/adapters/repository"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)

	Convey("Given a store with a pending job", t, func() {
		s := repository.NewMemoryStore(repository.WithClock(func() time.Time { return fixed }))
		So(s.Create(ctx, "job-1", fixed), ShouldBeNil)

		rec, err := s.Get(ctx, "job-1")
		So(err, ShouldBeNil)
		So(rec.Status, ShouldEqual, model.JobPending)

		Convey("When it is created again", func() {
			So(errors.Is(s.Create(ctx, "job-1", fixed), repository.ErrExists), ShouldBeTrue)
		})

		Convey("When it runs to completion", func() {
			So(s.Start(ctx, "job-1"), ShouldBeNil)
			res := pipeline.Result{HasCycles: true, ExecutionOrder: []int{}}
			So(s.Complete(ctx, "job-1", res), ShouldBeNil)

			Convey("Then the result and timestamps are stored", func() {
				rec, err := s.Get(ctx, "job-1")
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.JobDone)
				So(rec.Result, ShouldNotBeNil)
				So(rec.Result.HasCycles, ShouldBeTrue)
				So(*rec.StartedAt, ShouldEqual, fixed)
				So(*rec.FinishedAt, ShouldEqual, fixed)
			})

			Convey("Then it cannot fail afterwards", func() {
				So(errors.Is(s.Fail(ctx, "job-1", errors.New("late")), repository.ErrInvalidStatus), ShouldBeTrue)
			})
		})

		Convey("When it fails", func() {
			So(s.Start(ctx, "job-1"), ShouldBeNil)
			So(s.Fail(ctx, "job-1", errors.New("boom")), ShouldBeNil)

			rec, _ := s.Get(ctx, "job-1")
			So(rec.Status, ShouldEqual, model.JobFailed)
			So(rec.Error, ShouldEqual, "boom")
			So(rec.Result, ShouldBeNil)
		})

		Convey("When completing a job that never started", func() {
			So(errors.Is(s.Complete(ctx, "job-1", pipeline.Result{}), repository.ErrInvalidStatus), ShouldBeTrue)
		})

		Convey("When it is deleted", func() {
			So(s.Delete(ctx, "job-1"), ShouldBeNil)
			So(s.Count(ctx), ShouldEqual, 0)
			So(s.Delete(ctx, "job-1"), ShouldBeNil)
			So(s.Create(ctx, "job-1", time.Now()), ShouldBeNil)
		})

		Convey("When asking for an unknown job", func() {
			_, err := s.Get(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Start(ctx, "nope"), repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store capped at two records", t, func() {
		s := repository.NewMemoryStore(repository.WithMaxRecords(2))
		now := time.Now()
		So(s.Create(ctx, "done-1", now), ShouldBeNil)
		So(s.Start(ctx, "done-1"), ShouldBeNil)
		So(s.Complete(ctx, "done-1", pipeline.Result{}), ShouldBeNil)
		So(s.Create(ctx, "pending-1", now), ShouldBeNil)
		So(s.Create(ctx, "pending-2", now), ShouldBeNil)

		Convey("Then the finished job is dropped first", func() {
			So(s.Count(ctx), ShouldEqual, 2)
			_, err := s.Get(ctx, "done-1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then unfinished jobs are never dropped", func() {
			So(s.Create(ctx, "pending-3", now), ShouldBeNil)
			So(s.Count(ctx), ShouldEqual, 3)
			counts := s.CountByStatus(ctx)
			So(counts[model.JobPending], ShouldEqual, 3)
			So(counts[model.JobDone], ShouldEqual, 0)
		})
	})
}

func TestMemoryStoreConcurrent(t *testing.T) {
	Convey("Given concurrent job lifecycles", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("job-%d", i)
				_ = s.Create(ctx, id, time.Now())
				_ = s.Start(ctx, id)
				_ = s.Complete(ctx, id, pipeline.Result{})
			}(i)
		}
		wg.Wait()
		So(s.CountByStatus(ctx)[model.JobDone], ShouldEqual, 50)
	})
}
