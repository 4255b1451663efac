package models

import "time"

type Account struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	Balance    float64   `json:"balance"`
	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}

type CreateAccountRequest struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// UpdateAccountRequest is a partial update: nil fields are left untouched.
type UpdateAccountRequest struct {
	Title *string `json:"title"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type AccountListResponse struct {
	Accounts []Account `json:"accounts"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
