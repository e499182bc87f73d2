package dto

// Order state values, as surfaced by the Orders service.
const (
	OrderStateNew                = "New"
	OrderStatePaymentAwaited     = "PaymentAwaited"
	OrderStateTransactionPending = "TransactionPending"
	OrderStateAmountExpired      = "AmountExpired"
	OrderStatePaid               = "Paid"
	OrderStateInProcessing       = "InProcessing"
	OrderStateCancelled          = "Cancelled"
	OrderStateSent               = "Sent"
	OrderStateDelivered          = "Delivered"
	OrderStateReceived           = "Received"
	OrderStateComplete           = "Complete"
)
