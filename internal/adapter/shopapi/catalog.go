package shopapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
	"github.com/techcart/storefront/pkg/retry"
)

var _ port.CatalogProvider = (*Client)(nil)

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "Client.FetchCategories"

	cs, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]Category, error) {
		var cs []Category
		err := c.getJSON(ctx, "/categories", nil, &cs)
		return cs, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toDomainCategories(cs), nil
}

// FetchProducts sends the current filter state as query parameters.
// Empty parameters are omitted from the request.
func (c *Client) FetchProducts(
	ctx context.Context, q domain.CatalogQuery,
) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	query := url.Values{}
	if q.Term != "" {
		query.Set("q", q.Term)
	}
	if q.Category != "" && q.Category != domain.CategoryAll {
		query.Set("category", q.Category)
	}

	ps, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]Product, error) {
		var ps []Product
		err := c.getJSON(ctx, "/products", query, &ps)
		return ps, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toDomainProducts(ps), nil
}
