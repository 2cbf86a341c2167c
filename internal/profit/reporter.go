package profit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/upstream"
)

// ErrBadGroupBy rejects grouping values outside raw/daily/weekly/monthly.
var ErrBadGroupBy = errors.New("unknown grouping")

// Reporter owns the profit page state for one console session: the
// current grouping and filters, plus the last successfully loaded report
// and statistics. A failed reload keeps the previous data rendered, same
// as the other page controllers.
type Reporter struct {
	mu       sync.Mutex
	store    Store
	notifier *notify.Center
	groupBy  string
	filters  Filters
	report   Report
	stats    Statistics
	products []ProductOption
	loaded   bool
}

func NewReporter(store Store, notifier *notify.Center, now time.Time) *Reporter {
	return &Reporter{
		store:    store,
		notifier: notifier,
		groupBy:  enum.GroupByDaily,
		filters:  DefaultFilters(now),
	}
}

// LoadProducts fills the product filter dropdown. Called once per page
// visit, before the first Load.
func (r *Reporter) LoadProducts(ctx context.Context) error {
	products, err := r.store.Products(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.products = products
	r.mu.Unlock()
	return nil
}

// Load fetches the report and statistics for the current grouping and
// filters. The statistics endpoint only understands the date range, so
// the product filter is not forwarded to it.
func (r *Reporter) Load(ctx context.Context) error {
	r.mu.Lock()
	groupBy := r.groupBy
	filters := r.filters
	r.mu.Unlock()

	report, err := r.store.Transactions(ctx, groupBy, filters)
	if err != nil {
		return r.loadFailed(err)
	}
	stats, err := r.store.Statistics(ctx, Filters{StartDate: filters.StartDate, EndDate: filters.EndDate})
	if err != nil {
		return r.loadFailed(err)
	}

	r.mu.Lock()
	r.report = report
	r.stats = stats
	r.loaded = true
	r.mu.Unlock()
	return nil
}

func (r *Reporter) loadFailed(err error) error {
	if !errors.Is(err, upstream.ErrSessionExpired) {
		r.notifier.Error(fmt.Sprintf("Failed to load data: %s", userMessage(err)))
	}
	return err
}

// SetGroupBy switches the grouping and reloads. Unknown values are
// rejected before any network call.
func (r *Reporter) SetGroupBy(ctx context.Context, groupBy string) error {
	switch groupBy {
	case enum.GroupByRaw, enum.GroupByDaily, enum.GroupByWeekly, enum.GroupByMonthly:
	default:
		return fmt.Errorf("%w %q", ErrBadGroupBy, groupBy)
	}

	r.mu.Lock()
	r.groupBy = groupBy
	r.mu.Unlock()
	return r.Load(ctx)
}

// SetFilters replaces the date range and product filter and reloads.
func (r *Reporter) SetFilters(ctx context.Context, f Filters) error {
	r.mu.Lock()
	r.filters = f
	r.mu.Unlock()
	return r.Load(ctx)
}

// ClearFilters drops every filter and reloads.
func (r *Reporter) ClearFilters(ctx context.Context) error {
	return r.SetFilters(ctx, Filters{})
}

// State returns the current grouping, filters, report and statistics for
// rendering.
func (r *Reporter) State() (string, Filters, Report, Statistics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groupBy, r.filters, r.report, r.stats
}

// Products returns the cached filter dropdown entries.
func (r *Reporter) Products() []ProductOption {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ProductOption, len(r.products))
	copy(out, r.products)
	return out
}

// Loaded reports whether at least one reload has succeeded.
func (r *Reporter) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

func userMessage(err error) string {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return upErr.Message
	}
	return "network error, please try again"
}
