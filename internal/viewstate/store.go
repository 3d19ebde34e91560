package viewstate

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

// Store is the application-wide view state.
// Rows and years are kept per view so a page that is not active cannot
// overwrite what the active page will export. Last writer wins per slot.
type Store struct {
	mu       sync.RWMutex
	active   string
	filter   FilterSpec
	rows     map[string][]ExportRow
	years    map[string][]int
	bookings []datefilter.Record

	subMu     sync.Mutex
	nextSub   int
	listeners []listener

	log *slog.Logger
}

type listener struct {
	id int
	fn func(Change)
}

// NewStore creates an empty store: all-time filter, default view active.
func NewStore() *Store {
	return &Store{
		active: DefaultView,
		filter: AllTime,
		rows:   make(map[string][]ExportRow),
		years:  make(map[string][]int),
		log:    slog.With(slog.String(config.LogKeyComponent, config.CompStore)),
	}
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it. Listeners are called synchronously, in registration order,
// outside the store lock so they may read or write the store.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
		})
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	snapshot := slices.Clone(s.listeners)
	s.subMu.Unlock()

	for _, l := range snapshot {
		l.fn(c)
	}
}

// SetActiveView marks view as the page the user is looking at.
func (s *Store) SetActiveView(view string) {
	s.mu.Lock()
	s.active = view
	s.mu.Unlock()

	s.log.Debug(config.MsgViewChanged, slog.String(config.LogKeyView, view))
	s.notify(Change{Field: FieldActiveView, View: view})
}

// SetExportRows replaces the rows view would export.
func (s *Store) SetExportRows(view string, rows []ExportRow) {
	s.mu.Lock()
	s.rows[view] = cloneRows(rows)
	s.mu.Unlock()

	s.log.Debug(config.MsgRowsRegistered,
		slog.String(config.LogKeyView, view),
		slog.Int(config.LogKeyCount, len(rows)),
	)
	s.notify(Change{Field: FieldExportRows, View: view})
}

// SetAvailableYears replaces the selectable years of view.
func (s *Store) SetAvailableYears(view string, years []int) {
	s.mu.Lock()
	s.years[view] = slices.Clone(years)
	s.mu.Unlock()

	s.notify(Change{Field: FieldYears, View: view})
}

// SetFilter replaces the filter applied to every page.
func (s *Store) SetFilter(spec FilterSpec) {
	if spec.Kind == "" {
		spec.Kind = datefilter.KindAll
	}

	s.mu.Lock()
	s.filter = spec
	s.mu.Unlock()

	s.log.Debug(config.MsgFilterChanged,
		slog.String(config.LogKeyKind, string(spec.Kind)),
		slog.String(config.LogKeyValue, spec.Value),
	)
	s.notify(Change{Field: FieldFilter})
}

// SetSharedBookings replaces the booking list published by the bookings page.
func (s *Store) SetSharedBookings(records []datefilter.Record) {
	s.mu.Lock()
	s.bookings = slices.Clone(records)
	s.mu.Unlock()

	s.notify(Change{Field: FieldBookings})
}

// ActiveView returns the id of the active view.
func (s *Store) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Filter returns the current filter.
func (s *Store) Filter() FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// ExportRows returns a copy of the active view's rows.
func (s *Store) ExportRows() []ExportRow {
	return s.ExportRowsFor(s.ActiveView())
}

// ExportRowsFor returns a copy of the rows registered by view.
func (s *Store) ExportRowsFor(view string) []ExportRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.rows[view])
}

// AvailableYears returns a copy of the active view's years.
func (s *Store) AvailableYears() []int {
	return s.AvailableYearsFor(s.ActiveView())
}

// AvailableYearsFor returns a copy of the years registered by view.
func (s *Store) AvailableYearsFor(view string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.years[view])
	if out == nil {
		out = []int{}
	}
	return out
}

// SharedBookings returns a copy of the shared booking list.
func (s *Store) SharedBookings() []datefilter.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

func cloneRows(rows []ExportRow) []ExportRow {
	if rows == nil {
		return nil
	}
	out := make([]ExportRow, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
