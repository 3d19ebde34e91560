// Package feeds renders salon records into interoperable documents:
// an iCalendar feed of bookings and a vCard roster of stylists.
package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

// Clock abstracts time.Now() for deterministic DTSTAMP values.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// stableUID derives a UID that survives refreshes for the same record.
func stableUID(kind string, r datefilter.Record, fallback string) string {
	key := r.ID()
	if key == "" {
		key = fallback
	}
	return uuid.NewSHA1(uidNamespace, []byte(kind+"/"+key)).String()
}

// BuildCalendar converts bookings into an iCalendar document, one event per
// booking with a parsable date. An empty feed is still a valid calendar.
func BuildCalendar(ctx context.Context, clock Clock, bookings []datefilter.Record) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	stamp := clock.Now().UTC()
	skipped := 0

	for i, b := range bookings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start, ok := bookingStart(b)
		if !ok {
			skipped++
			slog.Debug(config.MsgSkippedBooking,
				slog.String(config.LogKeyComponent, config.CompFeeds),
				slog.String(config.LogKeyID, b.ID()))
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID,
			stableUID(config.ResourceBookings, b, strconv.Itoa(i)), config.ICalDomain))
		event.Props.SetDateTime(config.PropDTStamp, stamp)
		event.Props.SetDateTime(config.PropDTStart, start)
		event.Props.SetDateTime(config.PropDTEnd, start.Add(bookingDuration(b)))
		event.Props.SetText(config.PropSummary, bookingSummary(b))
		if stylist := b.Label(config.FieldStylist); stylist != "" {
			event.Props.SetText(config.PropDescription, stylist)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	slog.Info(config.MsgCalendarBuilt,
		slog.String(config.LogKeyComponent, config.CompFeeds),
		slog.Int(config.LogKeyCount, len(cal.Children)),
		slog.Int(config.LogKeySkipped, skipped),
	)

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// bookingStart combines the booking date with its optional "HH:MM" time.
func bookingStart(b datefilter.Record) (time.Time, bool) {
	day, ok := datefilter.ParseDate(b, config.FieldDate)
	if !ok {
		return time.Time{}, false
	}
	if clock, err := time.Parse(config.LayoutBookingTime, b.String(config.FieldTime)); err == nil {
		day = time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	}
	return day, true
}

// bookingDuration reads "duration" in minutes, defaulting to one hour.
func bookingDuration(b datefilter.Record) time.Duration {
	var minutes float64
	switch v := b[config.FieldDuration].(type) {
	case json.Number:
		minutes, _ = v.Float64()
	case float64:
		minutes = v
	case int:
		minutes = float64(v)
	case string:
		minutes, _ = strconv.ParseFloat(v, 64)
	}
	if minutes <= 0 {
		return config.DefaultBookingDuration
	}
	return time.Duration(minutes * float64(time.Minute))
}

func bookingSummary(b datefilter.Record) string {
	service := b.Label(config.FieldService)
	if service == "" {
		service = config.FallbackService
	}
	customer := b.String(config.FieldCustomer)
	if customer == "" {
		customer = config.FallbackCustomer
	}
	return fmt.Sprintf(config.FormatBookingSummary, service, customer)
}
