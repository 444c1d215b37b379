package batch_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/okian/clipmark/internal/adapters/batch"
	"github.com/okian/clipmark/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func TestQueue(t *testing.T) {
	convey.Convey("Given a queue with capacity 2", t, func() {
		ctx := context.Background()
		q := batch.NewQueue(batch.WithCapacity(2))

		convey.Convey("When it is filled", func() {
			convey.So(q.Enqueue(ctx, batch.Job{Index: 0, Name: "a.csv"}), convey.ShouldBeNil)
			convey.So(q.Enqueue(ctx, batch.Job{Index: 1, Name: "b.csv"}), convey.ShouldBeNil)

			convey.Convey("Then a third job is refused", func() {
				convey.So(errors.Is(q.Enqueue(ctx, batch.Job{Index: 2}), batch.ErrQueueFull), convey.ShouldBeTrue)
				convey.So(q.Len(), convey.ShouldEqual, 2)
			})

			convey.Convey("Then closing still delivers pending jobs in order", func() {
				convey.So(q.Close(), convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)

				var names []string
				for j := range q.Dequeue(ctx) {
					names = append(names, j.Name)
				}
				convey.So(names, convey.ShouldResemble, []string{"a.csv", "b.csv"})
			})
		})

		convey.Convey("When it is closed", func() {
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then enqueue fails and a second close is a no-op", func() {
				convey.So(errors.Is(q.Enqueue(ctx, batch.Job{}), batch.ErrQueueClosed), convey.ShouldBeTrue)
				convey.So(q.Close(), convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		ctx := context.Background()

		convey.Convey("When every job succeeds", func() {
			var mu sync.Mutex
			seen := map[string]bool{}
			pool := batch.NewPool(batch.HandlerFunc(func(_ context.Context, j batch.Job) error {
				mu.Lock()
				defer mu.Unlock()
				seen[j.Name] = true
				return nil
			}), batch.WithWorkers(3))

			names := []string{"a.csv", "b.csv", "c.csv", "d.csv", "e.csv"}
			results, err := pool.Run(ctx, names)

			convey.Convey("Then each input is handled once and results keep input order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results, convey.ShouldHaveLength, 5)
				for i, r := range results {
					convey.So(r.Err, convey.ShouldBeNil)
					convey.So(r.Job.Name, convey.ShouldEqual, names[i])
					convey.So(r.Job.Index, convey.ShouldEqual, i)
				}
				convey.So(seen, convey.ShouldHaveLength, 5)
			})
		})

		convey.Convey("When one job fails", func() {
			boom := errors.New("bad file")
			pool := batch.NewPool(batch.HandlerFunc(func(_ context.Context, j batch.Job) error {
				if j.Name == "bad.csv" {
					return boom
				}
				return nil
			}), batch.WithWorkers(3))

			results, err := pool.Run(ctx, []string{"ok.csv", "bad.csv", "fine.csv"})

			convey.Convey("Then only that result carries the error", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results[0].Err, convey.ShouldBeNil)
				convey.So(errors.Is(results[1].Err, boom), convey.ShouldBeTrue)
				convey.So(results[2].Err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the batch is empty", func() {
			var calls atomic.Int32
			pool := batch.NewPool(batch.HandlerFunc(func(context.Context, batch.Job) error {
				calls.Add(1)
				return nil
			}))
			results, err := pool.Run(ctx, nil)

			convey.So(err, convey.ShouldBeNil)
			convey.So(results, convey.ShouldBeEmpty)
			convey.So(calls.Load(), convey.ShouldEqual, 0)
		})

		convey.Convey("When the context is cancelled before the run", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			pool := batch.NewPool(batch.HandlerFunc(func(context.Context, batch.Job) error { return nil }), batch.WithWorkers(1))
			_, err := pool.Run(cctx, []string{"a.csv"})

			convey.Convey("Then the cancellation is reported", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}
