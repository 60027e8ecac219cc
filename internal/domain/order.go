package domain

// OrderStatus is set to paid at creation; later transitions are handled elsewhere.
type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "paid"
)

// Order-related domain errors.
var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}

	ErrInvalidSignature = &Error{Code: EUNAUTHORIZED, Message: "Webhook signature verification failed"}

	ErrMissingAccountContext = &Error{Code: EINVALID, Message: "Account id missing from checkout session metadata"}

	ErrCartGone = &Error{Code: EGONE, Message: "Cart is empty or no longer available"}

	ErrAmountMismatch = &Error{Code: EPAYMENT, Message: "Charged amount does not match cart total"}

	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Insufficient stock for one or more items"}
)

// FulfillmentStage is a state of the payment-confirmation pipeline.
type FulfillmentStage string

const (
	StageReceived     FulfillmentStage = "received"
	StageValidated    FulfillmentStage = "validated"
	StageCommitted    FulfillmentStage = "committed"
	StageSideEffected FulfillmentStage = "side_effected"
	StageLogged       FulfillmentStage = "logged"
	StageRejected     FulfillmentStage = "rejected"
)

// FulfillmentStatus is the terminal result reported to the webhook caller.
type FulfillmentStatus string

const (
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	FulfillmentDuplicate FulfillmentStatus = "duplicate"
	FulfillmentIgnored   FulfillmentStatus = "ignored"
	FulfillmentRejected  FulfillmentStatus = "rejected"
)

// RejectReason names why a confirmation was rejected.
type RejectReason string

const (
	RejectInvalidSignature      RejectReason = "invalid_signature"
	RejectMissingAccountContext RejectReason = "missing_account_context"
	RejectCartGone              RejectReason = "cart_gone"
	RejectAmountMismatch        RejectReason = "amount_mismatch"
	RejectInsufficientStock     RejectReason = "insufficient_stock"
)

// ReasonFor maps a pipeline rejection error to its reason. The second
// result is false for errors that are not business rejections.
func ReasonFor(err error) (RejectReason, bool) {
	switch err {
	case ErrInvalidSignature:
		return RejectInvalidSignature, true
	case ErrMissingAccountContext:
		return RejectMissingAccountContext, true
	case ErrCartGone:
		return RejectCartGone, true
	case ErrAmountMismatch:
		return RejectAmountMismatch, true
	case ErrInsufficientStock:
		return RejectInsufficientStock, true
	}
	return "", false
}

// StockMovementReason is the audit reason carried by a stock movement row.
type StockMovementReason string

const (
	StockReasonSale    StockMovementReason = "sale"
	StockReasonRestock StockMovementReason = "restock"
)
