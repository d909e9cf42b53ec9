package shopapi

import (
	"context"
	"fmt"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.CartGateway = (*Client)(nil)

// CreateCartItem issues the cart mutation carrying the bearer token.
// The caller guarantees the token is present.
func (c *Client) CreateCartItem(
	ctx context.Context, req domain.CartRequest, token string,
) error {
	const op = "Client.CreateCartItem"

	item := CartItem{ProductID: req.ProductID, Quantity: req.Quantity}
	resp, err := c.postJSON(ctx, "/cart", item, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer drainClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%s: %w", op, StatusError{resp.StatusCode})
	}
	return nil
}
