package domain

// ActionKind identifies one of the mutating actions a seller can perform on
// an order row.
type ActionKind string

const (
	ActionAccept         ActionKind = "accept"
	ActionCancel         ActionKind = "cancel"
	ActionRequestPayment ActionKind = "requestPayment"
	ActionConfirmPayment ActionKind = "confirmPayment"
	ActionRollback       ActionKind = "rollback"
	ActionSettle         ActionKind = "settle"
	ActionToggleAudio    ActionKind = "toggleAudio"
)

// ActionState is the in-flight state of an action keyed by order id,
// replacing index-based busy flags.
type ActionState string

const (
	ActionStateIdle    ActionState = "idle"
	ActionStatePending ActionState = "pending"
	ActionStateError   ActionState = "error"
)
