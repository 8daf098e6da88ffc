package dispatch_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gamestudio/website/internal/dispatch"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	Convey("Given a queue with room for two jobs", t, func() {
		q := dispatch.NewQueue(2)
		noop := dispatch.Job{Kind: "test", Run: func(context.Context) {}}

		Convey("The third job is dropped", func() {
			So(q.Enqueue(noop), ShouldBeNil)
			So(q.Enqueue(noop), ShouldBeNil)
			So(q.Enqueue(noop), ShouldEqual, dispatch.ErrFull)
			So(q.Len(), ShouldEqual, 2)
			So(q.Cap(), ShouldEqual, 2)
		})

		Convey("A closed queue rejects jobs and can be closed twice", func() {
			q.Close()
			q.Close()
			So(q.IsClosed(), ShouldBeTrue)
			So(q.Enqueue(noop), ShouldEqual, dispatch.ErrClosed)
		})
	})

	Convey("A non-positive capacity falls back to the default", t, func() {
		So(dispatch.NewQueue(0).Cap(), ShouldBeGreaterThan, 0)
	})
}

func TestPool(t *testing.T) {
	Convey("Given a running pool", t, func() {
		q := dispatch.NewQueue(16)
		pool := dispatch.NewPool(q, 3)
		pool.Start(context.Background())

		Convey("Shutdown drains every queued job", func() {
			var ran atomic.Int32
			for i := 0; i < 10; i++ {
				So(q.Enqueue(dispatch.Job{Kind: "count", Run: func(context.Context) { ran.Add(1) }}), ShouldBeNil)
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			So(pool.Shutdown(ctx), ShouldBeNil)
			So(ran.Load(), ShouldEqual, 10)
		})

		Convey("A panicking job does not stop its worker", func() {
			var ran atomic.Int32
			So(q.Enqueue(dispatch.Job{Kind: "boom", Run: func(context.Context) { panic("boom") }}), ShouldBeNil)
			So(q.Enqueue(dispatch.Job{Kind: "after", Run: func(context.Context) { ran.Add(1) }}), ShouldBeNil)

			So(pool.Shutdown(context.Background()), ShouldBeNil)
			So(ran.Load(), ShouldEqual, 1)
		})

		Convey("Jobs get a live context with a deadline", func() {
			deadline := make(chan bool, 1)
			So(q.Enqueue(dispatch.Job{Kind: "ctx", Run: func(ctx context.Context) {
				_, ok := ctx.Deadline()
				deadline <- ok && ctx.Err() == nil
			}}), ShouldBeNil)

			So(pool.Shutdown(context.Background()), ShouldBeNil)
			So(<-deadline, ShouldBeTrue)
		})
	})

	Convey("Shutdown gives up when ctx expires", t, func() {
		q := dispatch.NewQueue(1)
		pool := dispatch.NewPool(q, 1)
		pool.Start(context.Background())

		release := make(chan struct{})
		So(q.Enqueue(dispatch.Job{Kind: "slow", Run: func(context.Context) { <-release }}), ShouldBeNil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		So(pool.Shutdown(ctx), ShouldNotBeNil)
		close(release)
	})
}
