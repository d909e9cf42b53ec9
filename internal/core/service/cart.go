package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.CartAdder = (*Cart)(nil)

// Cart performs the gated add-to-cart mutation. The session check is
// local: without a stored token no request leaves the process.
type Cart struct {
	gateway  port.CartGateway
	session  port.SessionStorage
	tracker  port.EventsTracker
	clientID string
}

func NewCart(
	gateway port.CartGateway,
	session port.SessionStorage,
	tracker port.EventsTracker,
	clientID string,
) Cart {
	return Cart{gateway, session, tracker, clientID}
}

func (c Cart) AddToCart(ctx context.Context, productID, quantity int) error {
	const op = "Cart.AddToCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token, ok, err := c.session.Get()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}

	if quantity < 1 {
		quantity = 1
	}

	req := domain.CartRequest{ProductID: productID, Quantity: quantity}
	if err := c.gateway.CreateCartItem(ctx, req, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.track(ctx, productID)
	return nil
}

func (c Cart) track(ctx context.Context, productID int) {
	const op = "Cart.track"

	if c.tracker == nil {
		return
	}

	evt := domain.BrowseEvent{
		EventID:   uuid.NewString(),
		ClientID:  c.clientID,
		Type:      domain.EventCartAdd,
		ProductID: productID,
		At:        time.Now().UTC(),
	}

	if err := c.tracker.TrackEvent(ctx, evt); err != nil {
		slog.Warn("failed to track cart event", "op", op, "err", err)
	}
}
