package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TransferResponse struct {
	TransferID string `json:"transfer_id"`
	Account    string `json:"account"`
	Target     string `json:"target"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
}
