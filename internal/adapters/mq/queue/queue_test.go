package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/meetmind/internal/adapters/mq/queue"
	"github.com/okian/meetmind/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func job(id string) model.Job {
	return model.Job{ID: id, Sentences: []model.Sentence{{ID: 1, RawText: "Fix the login bug"}}}
}

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with capacity two", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		So(q.Len(ctx), ShouldEqual, 0)

		Convey("When a job is enqueued and dequeued", func() {
			So(q.Enqueue(ctx, job("a")), ShouldBeNil)
			So(q.Len(ctx), ShouldEqual, 1)
			got := <-q.Dequeue(ctx)

			Convey("Then the same job comes out", func() {
				So(got.ID, ShouldEqual, "a")
				So(got.Sentences, ShouldHaveLength, 1)
			})
		})

		Convey("When the queue is full", func() {
			So(q.Enqueue(ctx, job("a")), ShouldBeNil)
			So(q.Enqueue(ctx, job("b")), ShouldBeNil)
			err := q.Enqueue(ctx, job("c"))

			Convey("Then the job is rejected with backpressure", func() {
				So(errors.Is(err, queue.ErrQueueFull), ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(errors.Is(q.Enqueue(cctx, job("a")), context.Canceled), ShouldBeTrue)
		})

		Convey("When the queue is closed with a job waiting", func() {
			So(q.Enqueue(ctx, job("a")), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
			So(q.IsClosed(), ShouldBeTrue)
			So(errors.Is(q.Enqueue(ctx, job("b")), queue.ErrQueueClosed), ShouldBeTrue)

			Convey("Then the waiting job is still delivered and the channel closes", func() {
				ch := q.Dequeue(ctx)
				first, ok := <-ch
				So(ok, ShouldBeTrue)
				So(first.ID, ShouldEqual, "a")
				select {
				case _, ok := <-ch:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					So("dequeue channel not closed", ShouldBeEmpty)
				}
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

func TestInMemoryQueueConcurrent(t *testing.T) {
	Convey("Given producers and consumers sharing a queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		const producers, perProducer = 4, 50

		var consumed sync.Map
		var cwg sync.WaitGroup
		for i := 0; i < 3; i++ {
			cwg.Add(1)
			go func() {
				defer cwg.Done()
				for j := range q.Dequeue(ctx) {
					consumed.Store(j.ID, true)
				}
			}()
		}

		var pwg sync.WaitGroup
		for p := 0; p < producers; p++ {
			pwg.Add(1)
			go func(p int) {
				defer pwg.Done()
				for i := 0; i < perProducer; i++ {
					for q.Enqueue(ctx, job(fmt.Sprintf("%d-%d", p, i))) != nil {
						time.Sleep(time.Millisecond)
					}
				}
			}(p)
		}
		pwg.Wait()
		So(q.Close(), ShouldBeNil)
		cwg.Wait()

		Convey("Then every job is consumed once the queue drains", func() {
			n := 0
			consumed.Range(func(_, _ any) bool { n++; return true })
			So(n, ShouldEqual, producers*perProducer)
		})
	})
}

func TestDequeueCancelled(t *testing.T) {
	Convey("Given a consumer that stops reading", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		ctx, cancel := context.WithCancel(context.Background())
		_ = q.Dequeue(ctx)

		So(q.Enqueue(context.Background(), job("held")), ShouldBeNil)
		So(eventually(func() bool { return q.Len(context.Background()) == 0 }), ShouldBeTrue)

		Convey("When its context is cancelled", func() {
			cancel()

			Convey("Then the held job goes back on the queue", func() {
				So(eventually(func() bool { return q.Len(context.Background()) == 1 }), ShouldBeTrue)
			})

			Convey("Then Flush returns it and closes the queue", func() {
				flushCtx, done := context.WithTimeout(context.Background(), time.Second)
				defer done()
				left := q.Flush(flushCtx)
				So(left, ShouldHaveLength, 1)
				So(left[0].ID, ShouldEqual, "held")
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
