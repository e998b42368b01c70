package domain

// OrderStatus is the server-owned state of an order. This layer never
// computes a status locally, it only displays the current one and triggers
// transitions through backend calls. Transitions are monotonic and
// backend-enforced.
type OrderStatus string

const (
	OrderStatusOrdered          OrderStatus = "ordered"
	OrderStatusAccepted         OrderStatus = "accepted"
	OrderStatusPaymentRequested OrderStatus = "paymentRequested"
	OrderStatusPaymentConfirmed OrderStatus = "paymentConfirmed"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusCompleted        OrderStatus = "completed"
)

var statusRank = map[OrderStatus]int{
	OrderStatusOrdered:          0,
	OrderStatusAccepted:         1,
	OrderStatusPaymentRequested: 2,
	OrderStatusPaymentConfirmed: 3,
	OrderStatusCompleted:        4,
	OrderStatusCancelled:        5,
}

// IsValid reports whether the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether the order reached a final state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

// The Can* helpers mirror the backend state machine so a plausibility check
// can run before spending a wallet signature. They are advisory only: the
// legality of a transition is decided by the backend, and local state is
// always re-fetched afterwards.

func (o *Order) CanAccept() bool {
	return o.Status == OrderStatusOrdered
}

func (o *Order) CanRequestPayment() bool {
	return o.Status == OrderStatusAccepted
}

func (o *Order) CanConfirmPayment() bool {
	return o.Status == OrderStatusPaymentRequested
}

func (o *Order) CanRollback() bool {
	return o.Status == OrderStatusPaymentConfirmed
}

func (o *Order) CanSettle() bool {
	return o.Status == OrderStatusPaymentConfirmed
}

func (o *Order) CanCancel() bool {
	return !o.Status.IsTerminal()
}
