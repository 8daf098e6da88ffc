package consent_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamestudio/website/internal/consent"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func received(sub consent.Subscription) []consent.Status {
	var out []consent.Status
	for {
		select {
		case s := <-sub:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestStore(t *testing.T) {
	Convey("Given a store over empty storage", t, func() {
		clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
		storage := consent.NewMemoryStorage(nil)
		store := consent.NewStore(storage, consent.WithClock(clock.Now))

		Convey("The visitor starts pending", func() {
			So(store.Status(), ShouldEqual, consent.Pending)
			So(store.IsValid(), ShouldBeFalse)
		})

		Convey("When the visitor accepts with two subscribers", func() {
			first := store.Subscribe()
			second := store.Subscribe()
			store.Accept()

			Convey("Then the status is accepted and both are notified exactly once", func() {
				So(store.Status(), ShouldEqual, consent.Accepted)
				So(received(first), ShouldResemble, []consent.Status{consent.Accepted})
				So(received(second), ShouldResemble, []consent.Status{consent.Accepted})
			})

			Convey("Then the record is persisted with a timestamp", func() {
				status, _ := storage.Get(consent.KeyStatus)
				ts, _ := storage.Get(consent.KeyTimestamp)
				So(status, ShouldEqual, "accepted")
				So(ts, ShouldEqual, "2025-03-01T12:00:00Z")
				So(store.IsValid(), ShouldBeTrue)
			})

			Convey("And accepts again, no further transition is published", func() {
				So(received(first), ShouldHaveLength, 1)
				store.Accept()
				So(received(first), ShouldBeEmpty)
			})

			Convey("And then declines, subscribers see the change", func() {
				_ = received(first)
				store.Decline()
				So(received(first), ShouldResemble, []consent.Status{consent.Declined})
				So(store.Status(), ShouldEqual, consent.Declined)
			})
		})

		Convey("When an unsubscribed listener is closed", func() {
			sub := store.Subscribe()
			store.Unsubscribe(sub)
			store.Accept()
			_, open := <-sub
			So(open, ShouldBeFalse)
		})

		Convey("When the decision is more than a year old", func() {
			store.Accept()
			sub := store.Subscribe()
			clock.now = clock.now.Add(consent.MaxAge + time.Hour)

			Convey("Then IsValid is false and the next read resets to pending", func() {
				So(store.IsValid(), ShouldBeFalse)
				So(store.Status(), ShouldEqual, consent.Pending)
				So(received(sub), ShouldResemble, []consent.Status{consent.Pending})

				status, _ := storage.Get(consent.KeyStatus)
				So(status, ShouldBeEmpty)
			})
		})

		Convey("When the decision is exactly within a year", func() {
			store.Decline()
			clock.now = clock.now.Add(consent.MaxAge - time.Minute)
			So(store.IsValid(), ShouldBeTrue)
			So(store.Status(), ShouldEqual, consent.Declined)
		})

		Convey("When reset after a decision", func() {
			store.Accept()
			sub := store.Subscribe()
			store.Reset()
			So(store.Status(), ShouldEqual, consent.Pending)
			So(received(sub), ShouldResemble, []consent.Status{consent.Pending})
		})
	})

	Convey("Given storage seeded with a garbage record", t, func() {
		storage := consent.NewMemoryStorage(map[string]string{
			consent.KeyStatus:    "accepted",
			consent.KeyTimestamp: "yesterday",
		})
		store := consent.NewStore(storage)

		So(store.Status(), ShouldEqual, consent.Pending)
		_, ok := store.Record()
		So(ok, ShouldBeFalse)
	})

	Convey("Given storage that is disabled", t, func() {
		store := consent.NewStore(consent.DisabledStorage{})
		sub := store.Subscribe()

		Convey("Accepting is absorbed and the visitor has no consent", func() {
			store.Accept()
			So(store.Status(), ShouldEqual, consent.Pending)
			So(store.IsValid(), ShouldBeFalse)
			So(received(sub), ShouldBeEmpty)
		})
	})
}

func TestCookies(t *testing.T) {
	Convey("Given a written consent record", t, func() {
		rec := consent.Record{Status: consent.Accepted, DecidedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
		w := httptest.NewRecorder()
		consent.WriteCookies(w, rec, true)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			So(c.MaxAge, ShouldEqual, int(consent.MaxAge/time.Second))
			So(c.Secure, ShouldBeTrue)
			req.AddCookie(c)
		}

		Convey("Reading it back seeds a store with the same decision", func() {
			values := consent.CookieValues(req)
			So(values[consent.KeyStatus], ShouldEqual, "accepted")

			store := consent.NewStore(consent.NewMemoryStorage(values),
				consent.WithClock(func() time.Time { return rec.DecidedAt.Add(time.Hour) }))
			got, ok := store.Record()
			So(ok, ShouldBeTrue)
			So(got.Status, ShouldEqual, consent.Accepted)
			So(got.DecidedAt.Equal(rec.DecidedAt), ShouldBeTrue)
		})
	})

	Convey("Clearing cookies expires both", t, func() {
		w := httptest.NewRecorder()
		consent.ClearCookies(w, false)
		cookies := w.Result().Cookies()
		So(cookies, ShouldHaveLength, 2)
		for _, c := range cookies {
			So(c.MaxAge, ShouldBeLessThan, 0)
		}
	})
}
