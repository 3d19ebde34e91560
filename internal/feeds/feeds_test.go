package feeds_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/feeds"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time { return m.CurrentTime }

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(name, contentType string, body []byte) {
	m.Called(name, contentType, body)
}

var fixedNow = MockClock{CurrentTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

func decodeEvents(t *testing.T, data []byte) []ical.Event {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal.Events()
}

func TestBuildCalendar(t *testing.T) {
	bookings := []datefilter.Record{
		{
			"_id":          "b1",
			"date":         "2025-06-03",
			"time":         "14:30",
			"customerName": "Jane",
			"service":      map[string]any{"_id": "s1", "name": "Balayage"},
			"stylist":      "Ana",
			"duration":     json.Number("90"),
		},
		{"_id": "b2", "date": "2025-06-04T10:00:00Z"},
		{"_id": "b3", "customerName": "No date"},
	}

	data, err := feeds.BuildCalendar(context.Background(), fixedNow, bookings)
	require.NoError(t, err)

	events := decodeEvents(t, data)
	require.Len(t, events, 2, "undated bookings are skipped")

	first := events[0]
	summary, err := first.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Balayage - Jane", summary)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC), start)

	end, err := first.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, end.Sub(start))

	second, err := events[1].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, config.FallbackService+" - "+config.FallbackCustomer, second)
}

func TestBuildCalendar_StableUIDs(t *testing.T) {
	bookings := []datefilter.Record{{"_id": "b1", "date": "2025-06-03"}}

	a, err := feeds.BuildCalendar(context.Background(), fixedNow, bookings)
	require.NoError(t, err)
	b, err := feeds.BuildCalendar(context.Background(), MockClock{CurrentTime: fixedNow.CurrentTime.Add(time.Hour)}, bookings)
	require.NoError(t, err)

	uidA, _ := decodeEvents(t, a)[0].Props.Text(config.PropUID)
	uidB, _ := decodeEvents(t, b)[0].Props.Text(config.PropUID)
	assert.Equal(t, uidA, uidB)
	assert.True(t, strings.HasSuffix(uidA, "@"+config.ICalDomain))
}

func TestBuildCalendar_EmptyIsStub(t *testing.T) {
	data, err := feeds.BuildCalendar(context.Background(), fixedNow, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestBuildCalendar_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := feeds.BuildCalendar(ctx, fixedNow, []datefilter.Record{{"date": "2025-01-01"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildRoster(t *testing.T) {
	stylists := []datefilter.Record{
		{"_id": "st1", "name": "Ana", "phone": "+33 6 00 00 00 00", "email": "ana@example.com", "specialty": "Color"},
		{"_id": "st2"},
	}

	data, err := feeds.BuildRoster(context.Background(), stylists)
	require.NoError(t, err)

	dec := vcard.NewDecoder(bytes.NewReader(data))
	var cards []vcard.Card
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		cards = append(cards, card)
	}

	require.Len(t, cards, 2)
	assert.Equal(t, "Ana", cards[0].PreferredValue(vcard.FieldFormattedName))
	assert.Equal(t, "ana@example.com", cards[0].PreferredValue(vcard.FieldEmail))
	assert.Equal(t, "Color", cards[0].PreferredValue(vcard.FieldTitle))
	assert.Equal(t, config.VCardVersion, cards[0].Value(vcard.FieldVersion))
	assert.Equal(t, config.FallbackName, cards[1].PreferredValue(vcard.FieldFormattedName))
	assert.NotEqual(t, cards[0].Value(vcard.FieldUID), cards[1].Value(vcard.FieldUID))
}

func TestFeeds_WatchPublishesOnBookingChange(t *testing.T) {
	store := viewstate.NewStore()
	pub := new(MockPublisher)
	pub.On("Publish", config.CalendarDocumentName, config.MimeTextCalendar, mock.Anything).Once()

	f := &feeds.Feeds{Store: store, Publisher: pub, Clock: fixedNow}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := f.Watch(ctx)

	store.SetFilter(viewstate.AllTime) // unrelated change
	store.SetSharedBookings([]datefilter.Record{{"_id": "b1", "date": "2025-06-03"}})
	pub.AssertExpectations(t)

	stop()
	store.SetSharedBookings(nil)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestFeeds_PublishRoster(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", config.RosterDocumentName, config.MimeVCard, mock.Anything).Once()

	f := &feeds.Feeds{Store: viewstate.NewStore(), Publisher: pub}
	require.NoError(t, f.PublishRoster(context.Background(), []datefilter.Record{{"name": "Bo"}}))
	pub.AssertExpectations(t)
}
