package pages

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// Lister fetches a backend collection.
type Lister interface {
	List(ctx context.Context, resource string) ([]datefilter.Record, error)
}

// View is the controller of one mounted page. It fetches the page records,
// applies the shared filter and registers the result in the store.
type View struct {
	Def    Definition
	Store  *viewstate.Store
	Source Lister

	// OnUpdate runs after the visible records changed. It may be called
	// from any goroutine.
	OnUpdate func()

	// OnRecords receives every freshly fetched, unfiltered collection.
	OnRecords func(def Definition, records []datefilter.Record)

	mu          sync.Mutex
	generation  uint64
	seq         uint64 // recompute counter
	mounted     bool
	records     []datefilter.Record
	visible     []datefilter.Record
	unsubscribe func()

	log *slog.Logger
}

// NewView creates an unmounted controller for def.
func NewView(def Definition, store *viewstate.Store, source Lister) *View {
	return &View{
		Def:    def,
		Store:  store,
		Source: source,
		log: slog.With(
			slog.String(config.LogKeyComponent, config.CompPages),
			slog.String(config.LogKeyView, def.Route),
		),
	}
}

// Mount starts listening to the store and loads the page.
// Mounting twice is a no-op.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return nil
	}
	v.mounted = true
	v.mu.Unlock()

	unsubscribe := v.Store.Subscribe(func(c viewstate.Change) {
		switch {
		case c.Field == viewstate.FieldFilter:
			v.recompute()
		case c.Field == viewstate.FieldBookings && v.Def.Derive != nil:
			v.derive()
		}
	})

	v.mu.Lock()
	v.unsubscribe = unsubscribe
	v.mu.Unlock()

	v.log.Debug(config.MsgPageMounted)
	return v.Refresh(ctx)
}

// Unmount stops listening; any fetch still in flight is discarded.
func (v *View) Unmount() {
	v.mu.Lock()
	v.mounted = false
	v.generation++
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	v.log.Debug(config.MsgPageUnmounted)
}

// Mounted reports whether the view is live.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// Refresh reloads the page. Derived pages rebuild from the shared bookings;
// others fetch their collection. A result arriving after an unmount or a
// newer refresh is dropped.
func (v *View) Refresh(ctx context.Context) error {
	if v.Def.Derive != nil {
		v.derive()
		return nil
	}

	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	records, err := v.Source.List(ctx, v.Def.Resource)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrPageFetch, err)
	}

	v.mu.Lock()
	if !v.mounted || gen != v.generation {
		v.mu.Unlock()
		v.log.Debug(config.MsgPageStale)
		return nil
	}
	v.records = records
	v.mu.Unlock()

	v.log.Info(config.MsgPageLoaded,
		slog.String(config.LogKeyResource, v.Def.Resource),
		slog.Int(config.LogKeyCount, len(records)),
	)

	if v.OnRecords != nil {
		v.OnRecords(v.Def, records)
	}
	if v.Def.PublishesBookings {
		v.Store.SetSharedBookings(records)
	}
	v.recompute()
	return nil
}

func (v *View) derive() {
	records := v.Def.Derive(v.Store.SharedBookings())

	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.records = records
	v.mu.Unlock()

	v.recompute()
}

// recompute filters the loaded records and registers rows and years.
// A registration that was overtaken by a newer recompute, or by a filter
// change, is redone so the store always ends with rows matching its filter.
func (v *View) recompute() {
	for {
		v.mu.Lock()
		if !v.mounted {
			v.mu.Unlock()
			return
		}
		v.seq++
		seq := v.seq
		records := v.records
		v.mu.Unlock()

		filter := v.Store.Filter()
		visible := filter.Apply(records, v.Def.DateField)
		v.register(seq, records, visible)

		if v.current(seq) && v.Store.Filter() == filter {
			break
		}
		v.log.Debug(config.MsgPageRecompute)
	}

	if v.OnUpdate != nil {
		v.OnUpdate()
	}
}

// register publishes one recompute result, skipping the steps a newer
// recompute already superseded.
func (v *View) register(seq uint64, records, visible []datefilter.Record) {
	v.mu.Lock()
	if seq != v.seq {
		v.mu.Unlock()
		return
	}
	v.visible = visible
	v.mu.Unlock()

	v.Store.SetAvailableYears(v.Def.Route, datefilter.AvailableYears(records, v.Def.DateField))
	if !v.current(seq) {
		return
	}
	v.Store.SetExportRows(v.Def.Route, ExportRows(v.Def.Columns, visible))
}

func (v *View) current(seq uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return seq == v.seq
}

// Visible returns the records passing the current filter.
func (v *View) Visible() []datefilter.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.visible)
}

// Total sums the page's total field over the visible records.
func (v *View) Total() (decimal.Decimal, bool) {
	if v.Def.TotalField == "" {
		return decimal.Zero, false
	}
	return Total(v.Visible(), v.Def.TotalField), true
}
