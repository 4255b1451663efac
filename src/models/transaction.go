package models

import "time"

type Transaction struct {
	ID         int64     `json:"id"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note"`
	Date       time.Time `json:"date"`
	CategoryID int64     `json:"categoryId"`
	AccountID  int64     `json:"accountId"`
	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}

type CreateTransactionRequest struct {
	Amount     float64 `json:"amount"`
	Note       string  `json:"note"`
	Date       string  `json:"date"`
	CategoryID int64   `json:"categoryId"`
	AccountID  int64   `json:"accountId"`
}

// UpdateTransactionRequest is a partial update: nil fields are left untouched.
type UpdateTransactionRequest struct {
	Amount     *float64 `json:"amount"`
	Note       *string  `json:"note"`
	Date       *string  `json:"date"`
	CategoryID *int64   `json:"categoryId"`
	AccountID  *int64   `json:"accountId"`
}

// TransactionPatch is UpdateTransactionRequest with the date parsed, ready
// for the sql layer.
type TransactionPatch struct {
	Amount     *float64
	Note       *string
	Date       *time.Time
	CategoryID *int64
	AccountID  *int64
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
}
