package models

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	IsIncome  bool      `json:"isIncome"`
	Color     string    `json:"color"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCategoryRequest struct {
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	IsIncome bool   `json:"isIncome"`
	Color    string `json:"color"`
}

// UpdateCategoryRequest is a partial update: nil fields are left untouched.
type UpdateCategoryRequest struct {
	Title    *string `json:"title"`
	Icon     *string `json:"icon"`
	IsIncome *bool   `json:"isIncome"`
	Color    *string `json:"color"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}
