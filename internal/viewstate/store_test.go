package viewstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

func row(kv ...any) ExportRow {
	r := make(ExportRow, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		r = append(r, Cell{Label: kv[i].(string), Value: kv[i+1]})
	}
	return r
}

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()

	assert.Equal(t, DefaultView, s.ActiveView())
	assert.Equal(t, AllTime, s.Filter())
	assert.Empty(t, s.ExportRows())
	assert.Equal(t, []int{}, s.AvailableYears())
	assert.Empty(t, s.SharedBookings())
}

func TestStore_RowsAreKeyedByView(t *testing.T) {
	s := NewStore()
	s.SetActiveView("/expenses")

	s.SetExportRows("/expenses", []ExportRow{row("Amount", 100)})
	// A background page must not clobber the active page's rows.
	s.SetExportRows("/stylists", []ExportRow{row("Name", "Ana"), row("Name", "Bo")})

	require.Len(t, s.ExportRows(), 1)
	assert.Len(t, s.ExportRowsFor("/stylists"), 2)

	s.SetActiveView("/stylists")
	assert.Len(t, s.ExportRows(), 2)
}

func TestStore_LastWriterWins(t *testing.T) {
	s := NewStore()
	s.SetAvailableYears(DefaultView, []int{2024, 2023})
	s.SetAvailableYears(DefaultView, []int{2022})
	assert.Equal(t, []int{2022}, s.AvailableYears())

	s.SetFilter(FilterSpec{Kind: datefilter.KindYear, Value: "2024"})
	s.SetFilter(FilterSpec{Kind: datefilter.KindMonth, Value: "2024-02"})
	assert.Equal(t, FilterSpec{Kind: datefilter.KindMonth, Value: "2024-02"}, s.Filter())
}

func TestStore_GettersReturnCopies(t *testing.T) {
	s := NewStore()
	rows := []ExportRow{row("Amount", 1)}
	s.SetExportRows(DefaultView, rows)
	rows[0][0].Value = 999

	got := s.ExportRows()
	assert.Equal(t, 1, got[0][0].Value, "store must not alias caller slices")

	got[0][0].Value = 5
	assert.Equal(t, 1, s.ExportRows()[0][0].Value, "getters must not expose internal slices")

	years := []int{2024}
	s.SetAvailableYears(DefaultView, years)
	years[0] = 1900
	assert.Equal(t, []int{2024}, s.AvailableYears())
}

func TestStore_EmptyKindNormalized(t *testing.T) {
	s := NewStore()
	s.SetFilter(FilterSpec{})
	assert.Equal(t, datefilter.KindAll, s.Filter().Kind)
}

func TestStore_SubscribeNotifiesEveryWrite(t *testing.T) {
	s := NewStore()
	var got []Change
	unsubscribe := s.Subscribe(func(c Change) { got = append(got, c) })

	s.SetActiveView("/bookings")
	s.SetFilter(FilterSpec{Kind: datefilter.KindYear, Value: "2024"})
	s.SetExportRows("/bookings", nil)
	s.SetAvailableYears("/bookings", []int{2024})
	s.SetSharedBookings([]datefilter.Record{{"date": "2024-01-01"}})

	assert.Equal(t, []Change{
		{Field: FieldActiveView, View: "/bookings"},
		{Field: FieldFilter},
		{Field: FieldExportRows, View: "/bookings"},
		{Field: FieldYears, View: "/bookings"},
		{Field: FieldBookings},
	}, got)

	unsubscribe()
	unsubscribe() // idempotent
	s.SetFilter(AllTime)
	assert.Len(t, got, 5, "no notification after unsubscribe")
}

func TestStore_SubscribersRunInOrder(t *testing.T) {
	s := NewStore()
	var order []string
	s.Subscribe(func(Change) { order = append(order, "first") })
	s.Subscribe(func(Change) { order = append(order, "second") })

	s.SetFilter(AllTime)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_ListenerMayWriteBack(t *testing.T) {
	s := NewStore()
	s.Subscribe(func(c Change) {
		if c.Field == FieldFilter {
			// Would deadlock if listeners ran under the lock.
			s.SetAvailableYears(s.ActiveView(), []int{2030})
		}
	})

	s.SetFilter(FilterSpec{Kind: datefilter.KindYear, Value: "2030"})
	assert.Equal(t, []int{2030}, s.AvailableYears())
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := NewStore()
	var mu sync.Mutex
	count := 0
	s.Subscribe(func(Change) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetExportRows("/expenses", []ExportRow{row("n", i)})
			_ = s.ExportRowsFor("/expenses")
			s.SetFilter(FilterSpec{Kind: datefilter.KindYear, Value: "2024"})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 40, count)
	assert.Len(t, s.ExportRowsFor("/expenses"), 1)
}

func TestFilterSpec(t *testing.T) {
	assert.False(t, AllTime.Complete())
	assert.False(t, FilterSpec{Kind: datefilter.KindMonth}.Complete())
	assert.True(t, FilterSpec{Kind: datefilter.KindMonth, Value: "2024-01"}.Complete())

	records := []datefilter.Record{{"date": "2024-01-15"}, {"date": "2023-01-15"}}
	assert.Len(t, FilterSpec{}.Apply(records, "date"), 2)
	assert.Len(t, FilterSpec{Kind: datefilter.KindYear, Value: "2023"}.Apply(records, "date"), 1)
}

func TestExportRow(t *testing.T) {
	r := row("Name", "Ana", "Amount", 12.5)

	assert.Equal(t, []string{"Name", "Amount"}, r.Labels())
	v, ok := r.Get("Amount")
	require.True(t, ok)
	assert.Equal(t, 12.5, v)
	_, ok = r.Get("Missing")
	assert.False(t, ok)
}
