package domain

// CartRequest is ephemeral: constructed, sent, discarded. Cart
// contents live only on the server.
type CartRequest struct {
	ProductID int
	Quantity  int
}
