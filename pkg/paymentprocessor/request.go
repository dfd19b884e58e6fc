package paymentprocessor

type ChargeRequest struct {
	CustomerID     string `json:"customer_id"`
	MerchantID     string `json:"merchant_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"idempotency_key"`
	Description    string `json:"description,omitempty"`
}

// RefundRequest refunds the charge that was made with ChargeKey.
type RefundRequest struct {
	ChargeKey      string `json:"charge_key"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"idempotency_key"`
	Reason         string `json:"reason,omitempty"`
}
