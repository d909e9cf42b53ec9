package port

import (
	"context"

	"github.com/techcart/storefront/internal/core/domain"
)

type CatalogProvider interface {
	FetchCategories(context.Context) ([]domain.Category, error)
	FetchProducts(context.Context, domain.CatalogQuery) ([]domain.Product, error)
}

type CartGateway interface {
	CreateCartItem(ctx context.Context, req domain.CartRequest, token string) error
}

type AuthGateway interface {
	RegisterUser(ctx context.Context, username, email, password string) error
	LoginUser(ctx context.Context, username, password string) (token string, err error)
}

// SessionStorage holds at most one opaque bearer token. Get reports
// absence via ok, not an error.
type SessionStorage interface {
	Get() (token string, ok bool, err error)
	Set(token string) error
}

type EventsTracker interface {
	TrackEvent(context.Context, domain.BrowseEvent) error
}

// CatalogView receives accepted catalog state updates. Stale fetch
// responses never reach it.
type CatalogView interface {
	RenderCatalog(domain.CatalogState)
}

type CatalogBrowser interface {
	Initialize(context.Context) error
	SetTerm(ctx context.Context, term string)
	SetCategory(ctx context.Context, slug string)
	Snapshot() domain.CatalogState
	Categories() []domain.Category
}

type CartAdder interface {
	AddToCart(ctx context.Context, productID, quantity int) error
}

type Authenticator interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	Mode() domain.AuthMode
	SwitchMode(domain.AuthMode)
}
