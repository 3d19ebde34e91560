package feeds

import (
	"context"
	"log/slog"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// Publisher receives rendered documents.
type Publisher interface {
	Publish(name, contentType string, body []byte)
}

// Feeds keeps the published calendar and roster in step with the store.
type Feeds struct {
	Store     *viewstate.Store
	Publisher Publisher
	Clock     Clock
}

// Watch republishes the booking calendar every time the shared bookings
// change, until ctx is done or the returned function is called.
func (f *Feeds) Watch(ctx context.Context) func() {
	unsubscribe := f.Store.Subscribe(func(c viewstate.Change) {
		if c.Field != viewstate.FieldBookings || ctx.Err() != nil {
			return
		}
		if err := f.PublishCalendar(ctx, f.Store.SharedBookings()); err != nil {
			slog.Error(config.ErrICalEncode,
				slog.String(config.LogKeyComponent, config.CompFeeds),
				slog.String(config.LogKeyError, err.Error()))
		}
	})
	stop := context.AfterFunc(ctx, unsubscribe)
	return func() {
		stop()
		unsubscribe()
	}
}

// PublishCalendar renders bookings and hands the calendar to the publisher.
func (f *Feeds) PublishCalendar(ctx context.Context, bookings []datefilter.Record) error {
	clock := f.Clock
	if clock == nil {
		clock = RealClock{}
	}
	data, err := BuildCalendar(ctx, clock, bookings)
	if err != nil {
		return err
	}
	f.Publisher.Publish(config.CalendarDocumentName, config.MimeTextCalendar, data)
	return nil
}

// PublishRoster renders stylists and hands the roster to the publisher.
func (f *Feeds) PublishRoster(ctx context.Context, stylists []datefilter.Record) error {
	data, err := BuildRoster(ctx, stylists)
	if err != nil {
		return err
	}
	f.Publisher.Publish(config.RosterDocumentName, config.MimeVCard, data)
	return nil
}
