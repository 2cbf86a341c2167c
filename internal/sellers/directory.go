package sellers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/shared"
	"github.com/landahan-pos/console/internal/upstream"
)

const perPage = 6

// Store defines the backend calls the seller pages need.
type Store interface {
	Overview(ctx context.Context) ([]Seller, error)
	Create(ctx context.Context, in Input) error
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
	UploadPhoto(ctx context.Context, id int64, filename string, photo io.Reader) error
}

// Query selects, orders and pages the cached overview list.
type Query struct {
	Search string
	Status string
	SortBy string
	Page   int
}

// Page is one rendered page of the seller grid.
type Page struct {
	Sellers    []Seller
	Pagination shared.Pagination
}

// Directory owns the seller page state for one console session. Like the
// inventory list, the cached overview is replaced wholesale on every
// successful reload and left untouched on failure; filtering, sorting and
// pagination happen locally against the cache.
type Directory struct {
	mu       sync.Mutex
	store    Store
	notifier *notify.Center
	sellers  []Seller
	loaded   bool
	now      func() time.Time
}

func NewDirectory(store Store, notifier *notify.Center) *Directory {
	return &Directory{store: store, notifier: notifier, now: time.Now}
}

// Load refreshes the overview list from the backend.
func (d *Directory) Load(ctx context.Context) error {
	sellers, err := d.store.Overview(ctx)
	if err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			d.notifier.Error("Failed to load sellers. Please try again later.")
		}
		return err
	}

	d.mu.Lock()
	d.sellers = sellers
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// Loaded reports whether at least one reload has succeeded.
func (d *Directory) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

// List applies the query to the cached overview: case-insensitive search
// over name/email/phone, status filter, sort, then a fixed-size page.
func (d *Directory) List(q Query) Page {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	var filtered []Seller
	for _, s := range d.sellers {
		if !s.matches(q.Search) {
			continue
		}
		if q.Status != "" && s.Status(now) != q.Status {
			continue
		}
		filtered = append(filtered, s)
	}

	sortSellers(filtered, q.SortBy)

	p := shared.NewPagination(q.Page, perPage, len(filtered))
	start, end := p.Bounds()
	page := make([]Seller, end-start)
	copy(page, filtered[start:end])
	return Page{Sellers: page, Pagination: p}
}

// Get looks a seller up in the cache by id.
func (d *Directory) Get(id int64) (Seller, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.sellers {
		if s.ID == id {
			return s, true
		}
	}
	return Seller{}, false
}

// Create adds a seller and reloads the overview.
func (d *Directory) Create(ctx context.Context, in Input) error {
	if err := d.store.Create(ctx, in); err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			d.notifier.Error(fmt.Sprintf("Failed to add seller: %s", userMessage(err)))
		}
		return err
	}
	d.notifier.Success("Seller added successfully!")
	return d.Load(ctx)
}

// Update saves seller details, then optionally uploads a replacement
// photo, then reloads. A failed photo upload still leaves the detail
// update in place upstream; the user sees the upload error and can retry
// from the edit form.
func (d *Directory) Update(ctx context.Context, id int64, in Input, photoName string, photo io.Reader) error {
	if err := d.store.Update(ctx, id, in); err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			d.notifier.Error(fmt.Sprintf("Update failed: %s", userMessage(err)))
		}
		return err
	}

	if photo != nil {
		if err := d.store.UploadPhoto(ctx, id, photoName, photo); err != nil {
			if !errors.Is(err, upstream.ErrSessionExpired) {
				d.notifier.Error("Update failed: Failed to upload photo.")
			}
			return err
		}
	}

	d.notifier.Success("Seller updated successfully!")
	return d.Load(ctx)
}

// Delete removes a seller and reloads the overview.
func (d *Directory) Delete(ctx context.Context, id int64) error {
	if err := d.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			d.notifier.Error(fmt.Sprintf("Delete failed: %s", userMessage(err)))
		}
		return err
	}
	d.notifier.Success("Seller deleted successfully.")
	return d.Load(ctx)
}

// sortSellers orders in place: name ascending, everything else the
// overview offers descending.
func sortSellers(list []Seller, sortBy string) {
	switch sortBy {
	case enum.SortByName:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	case enum.SortByRevenue:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TotalRevenue.GreaterThan(list[j].TotalRevenue)
		})
	case enum.SortByTransactions:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TransactionsCount > list[j].TransactionsCount
		})
	case enum.SortByQuantity:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TotalQuantity > list[j].TotalQuantity
		})
	}
}

func userMessage(err error) string {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return upErr.Message
	}
	return "network error, please try again"
}
