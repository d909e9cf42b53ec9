package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.CatalogBrowser = (*Catalog)(nil)

// Catalog owns the filter state and the displayed product list.
//
// Every query mutation bumps a generation counter and launches one
// fetch stamped with it. A response is applied only while its stamp
// is still current, so late responses for superseded queries are
// dropped instead of cancelled.
type Catalog struct {
	provider port.CatalogProvider
	tracker  port.EventsTracker
	view     port.CatalogView
	clientID string

	mu         sync.Mutex
	generation uint64
	query      domain.CatalogQuery
	categories []domain.Category
	state      domain.CatalogState

	wg sync.WaitGroup
}

func NewCatalog(
	provider port.CatalogProvider,
	tracker port.EventsTracker,
	view port.CatalogView,
	clientID string,
) *Catalog {
	return &Catalog{
		provider: provider,
		tracker:  tracker,
		view:     view,
		clientID: clientID,
	}
}

// Initialize fetches the category reference list once, then runs an
// unfiltered product fetch through the regular generation path.
func (c *Catalog) Initialize(ctx context.Context) error {
	const op = "Catalog.Initialize"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cs, err := c.provider.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	c.categories = cs
	gen, q := c.beginFetchLocked()
	c.mu.Unlock()

	c.render()
	c.launchFetch(ctx, gen, q)
	return nil
}

// SetTerm replaces the free-text term and re-fetches.
func (c *Catalog) SetTerm(ctx context.Context, term string) {
	c.mu.Lock()
	c.query.Term = term
	gen, q := c.beginFetchLocked()
	c.mu.Unlock()

	c.render()
	c.track(ctx, domain.BrowseEvent{Type: domain.EventSearch, Term: term, Category: q.Category})
	c.launchFetch(ctx, gen, q)
}

// SetCategory replaces the category selector and re-fetches. The
// "all" slug clears the constraint.
func (c *Catalog) SetCategory(ctx context.Context, slug string) {
	if slug == domain.CategoryAll {
		slug = ""
	}

	c.mu.Lock()
	c.query.Category = slug
	gen, q := c.beginFetchLocked()
	c.mu.Unlock()

	c.render()
	c.track(ctx, domain.BrowseEvent{Type: domain.EventFilter, Term: q.Term, Category: slug})
	c.launchFetch(ctx, gen, q)
}

// Snapshot returns a copy of the current view state.
func (c *Catalog) Snapshot() domain.CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Catalog) Categories() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	cs := make([]domain.Category, len(c.categories))
	copy(cs, c.categories)
	return cs
}

// Close waits for in-flight fetches to settle.
func (c *Catalog) Close() {
	c.wg.Wait()
}

func (c *Catalog) beginFetchLocked() (uint64, domain.CatalogQuery) {
	c.generation++
	c.state.Phase = domain.PhaseLoading
	c.state.Query = c.query
	return c.generation, c.query
}

func (c *Catalog) launchFetch(ctx context.Context, gen uint64, q domain.CatalogQuery) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ps, err := c.provider.FetchProducts(ctx, q)
		c.apply(gen, ps, err)
	}()
}

func (c *Catalog) apply(gen uint64, ps []domain.Product, err error) {
	const op = "Catalog.apply"
	log := slog.With("op", op)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		log.Debug("discarded stale catalog response",
			"generation", gen, "current", c.generation)
		return
	}

	c.state.Phase = domain.PhaseReady
	if err != nil {
		c.state.Products = nil
		c.state.Err = true
		c.mu.Unlock()
		log.Warn("catalog fetch failed", "err", err)
		c.render()
		return
	}

	c.state.Products = ps
	c.state.Err = false
	c.mu.Unlock()

	c.render()
}

func (c *Catalog) snapshotLocked() domain.CatalogState {
	snap := c.state
	snap.Products = make([]domain.Product, len(c.state.Products))
	copy(snap.Products, c.state.Products)
	return snap
}

// SetView attaches the view during wiring, before any fetch runs.
// Needed because the inbound adapter and the catalog reference each
// other.
func (c *Catalog) SetView(v port.CatalogView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

func (c *Catalog) render() {
	c.mu.Lock()
	view := c.view
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if view == nil {
		return
	}
	view.RenderCatalog(snap)
}

func (c *Catalog) track(ctx context.Context, evt domain.BrowseEvent) {
	const op = "Catalog.track"

	if c.tracker == nil {
		return
	}

	evt.EventID = uuid.NewString()
	evt.ClientID = c.clientID
	evt.At = time.Now().UTC()

	if err := c.tracker.TrackEvent(ctx, evt); err != nil {
		slog.Warn("failed to track browse event", "op", op, "err", err)
	}
}
