package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/kotakitamaru/FinanceManager-v2/src/db/sql"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		page, limit, err := parsePagination(r)
		if err != nil {
			util.WriteError(w, err)
			return
		}

		filter, err := parseTransactionFilter(r)
		if err != nil {
			util.WriteError(w, err)
			return
		}

		transactions, total, err := db.ListTransactions(r.Context(), pool, page, limit, filter, db.OwnedBy(userID))
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, models.TransactionListResponse{
			Transactions: transactions,
			Total:        total,
			Page:         page,
			Limit:        limit,
		})
	}
}

func parseTransactionFilter(r *http.Request) (db.TransactionFilter, error) {
	var filter db.TransactionFilter
	var err error
	if filter.CategoryID, err = optionalInt64Query(r, "categoryId"); err != nil {
		return filter, err
	}
	if filter.AccountID, err = optionalInt64Query(r, "accountId"); err != nil {
		return filter, err
	}
	if filter.StartDate, err = optionalDateQuery(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = optionalDateQuery(r, "endDate"); err != nil {
		return filter, err
	}
	filter.SortBy = r.URL.Query().Get("sortBy")
	filter.SortOrder = r.URL.Query().Get("sortOrder")
	return filter, nil
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, id, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Transaction not found"))
				return
			}
			log.Printf("ERROR: Failed to get transaction %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, transaction)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		if req.Amount <= 0 {
			util.WriteError(w, util.ValidationError("amount must be greater than 0"))
			return
		}
		if req.CategoryID == 0 {
			util.WriteError(w, util.ValidationError("categoryId is required"))
			return
		}
		if req.AccountID == 0 {
			util.WriteError(w, util.ValidationError("accountId is required"))
			return
		}
		if req.Date == "" {
			util.WriteError(w, util.ValidationError("date is required"))
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			util.WriteError(w, err)
			return
		}

		transaction, err := db.CreateTransaction(r.Context(), pool, req.Amount, req.Note, date, req.CategoryID, req.AccountID, userID)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Created transaction id %d for user %d", transaction.ID, userID)
		util.WriteJSON(w, http.StatusCreated, transaction)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		if req.Amount != nil && *req.Amount <= 0 {
			util.WriteError(w, util.ValidationError("amount must be greater than 0"))
			return
		}

		patch := models.TransactionPatch{
			Amount:     req.Amount,
			Note:       req.Note,
			CategoryID: req.CategoryID,
			AccountID:  req.AccountID,
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				util.WriteError(w, err)
				return
			}
			patch.Date = &date
		}

		transaction, err := db.UpdateTransaction(r.Context(), pool, id, patch, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Transaction not found"))
				return
			}
			log.Printf("ERROR: Failed to update transaction %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Updated transaction id %d for user %d", transaction.ID, userID)
		util.WriteJSON(w, http.StatusOK, transaction)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, id, db.OwnedBy(userID)); err != nil {
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Deleted transaction id %d for user %d", id, userID)
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
	}
}
