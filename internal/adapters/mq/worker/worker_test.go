package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/talentdesk/internal/adapters/mq/queue"
	"github.com/okian/talentdesk/internal/adapters/mq/worker"
	"github.com/okian/talentdesk/internal/domain/model"
	logging "github.com/okian/talentdesk/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logging.Init()
}

type failingDeliverer struct {
	mu    sync.Mutex
	calls int
}

func (f *failingDeliverer) Deliver(context.Context, worker.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("smtp down")
}

func (f *failingDeliverer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func notification(i int) worker.Notification {
	return worker.Notification{
		ID:          fmt.Sprintf("n-%d", i),
		Kind:        model.NotifyInterviewInvite,
		CandidateID: fmt.Sprintf("cand-%d", i%2),
		To:          "someone@example.com",
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestOutbox(t *testing.T) {
	convey.Convey("Given an outbox with a limit", t, func() {
		o := worker.NewOutbox(3)
		ctx := context.Background()
		for i := range 5 {
			convey.So(o.Deliver(ctx, notification(i)), convey.ShouldBeNil)
		}

		convey.Convey("Then only the newest are kept, newest first", func() {
			convey.So(o.Len(), convey.ShouldEqual, 3)
			list := o.List("")
			convey.So(list[0].ID, convey.ShouldEqual, "n-4")
			convey.So(list[2].ID, convey.ShouldEqual, "n-2")
		})

		convey.Convey("Then listing by candidate filters", func() {
			for _, n := range o.List("cand-1") {
				convey.So(n.CandidateID, convey.ShouldEqual, "cand-1")
			}
			convey.So(len(o.List("cand-1")), convey.ShouldEqual, 1)
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool over a real queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		q := queue.NewInMemoryQueue(queue.WithCapacity(50))
		out := worker.NewOutbox(0)
		p := worker.NewPool(3, q, out)
		p.Start(ctx)

		convey.Convey("When notifications are queued", func() {
			for i := range 20 {
				convey.So(q.Enqueue(ctx, notification(i)), convey.ShouldBeTrue)
			}

			convey.Convey("Then every one reaches the outbox with a delivery time", func() {
				convey.So(waitFor(func() bool { return out.Len() == 20 }), convey.ShouldBeTrue)
				for _, n := range out.List("") {
					convey.So(n.DeliveredAt.IsZero(), convey.ShouldBeFalse)
				}
				convey.So(p.Shutdown(ctx), convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the pool shuts down with pending items", func() {
			for i := range 5 {
				q.Enqueue(ctx, notification(i))
			}
			convey.So(p.Shutdown(ctx), convey.ShouldBeNil)

			convey.Convey("Then the queue is drained first", func() {
				convey.So(out.Len(), convey.ShouldEqual, 5)
			})
		})
	})

	convey.Convey("Given a rate-limited pool", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		out := worker.NewOutbox(0)
		p := worker.NewPool(2, q, out, worker.WithRate(20, 1))
		p.Start(ctx)

		start := time.Now()
		for i := range 5 {
			q.Enqueue(ctx, notification(i))
		}
		convey.So(waitFor(func() bool { return out.Len() == 5 }), convey.ShouldBeTrue)

		convey.Convey("Then deliveries are spaced by the limiter", func() {
			convey.So(time.Since(start) >= 150*time.Millisecond, convey.ShouldBeTrue)
			convey.So(p.Size(), convey.ShouldEqual, 2)
			convey.So(p.Shutdown(ctx), convey.ShouldBeNil)
		})
	})
}

func TestWorkerErrors(t *testing.T) {
	convey.Convey("Given a worker whose deliverer fails", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		d := &failingDeliverer{}
		w := worker.NewInMemoryWorker(q, d, worker.WithName("failing"))
		go w.Run(ctx)

		q.Enqueue(ctx, notification(1))
		q.Enqueue(ctx, notification(2))

		convey.Convey("Then it keeps consuming after errors", func() {
			convey.So(waitFor(func() bool { return d.count() == 2 }), convey.ShouldBeTrue)
			convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			<-w.Done()
		})
	})

	convey.Convey("Given a worker whose context is cancelled", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, worker.NewOutbox(0))
		go w.Run(ctx)
		cancel()

		convey.So(waitFor(func() bool {
			select {
			case <-w.Done():
				return true
			default:
				return false
			}
		}), convey.ShouldBeTrue)
	})
}
