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

func GetAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		page, limit, err := parsePagination(r)
		if err != nil {
			util.WriteError(w, err)
			return
		}

		accounts, total, err := db.ListAccounts(r.Context(), pool, page, limit, db.OwnedBy(userID))
		if err != nil {
			log.Printf("ERROR: Failed to list accounts for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, models.AccountListResponse{
			Accounts: accounts,
			Total:    total,
			Page:     page,
			Limit:    limit,
		})
	}
}

func GetAccountByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		account, err := db.GetAccountByID(r.Context(), pool, id, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Account not found"))
				return
			}
			log.Printf("ERROR: Failed to get account %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, account)
	}
}

func CreateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		var req models.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}
		if req.Title == "" {
			util.WriteError(w, util.ValidationError("title is required"))
			return
		}

		account, err := db.CreateAccount(r.Context(), pool, req, userID)
		if err != nil {
			if isDuplicateKey(err) {
				log.Printf("ERROR: Account title already exists - Title: %s, User: %d", req.Title, userID)
				util.WriteError(w, util.ConflictError("Account with this title already exists"))
				return
			}
			log.Printf("ERROR: Failed to create account for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Created account id %d for user %d", account.ID, userID)
		util.WriteJSON(w, http.StatusCreated, account)
	}
}

func UpdateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		var req models.UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update account request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		account, err := db.UpdateAccount(r.Context(), pool, id, req, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Account not found"))
				return
			}
			if isDuplicateKey(err) {
				util.WriteError(w, util.ConflictError("Account with this title already exists"))
				return
			}
			log.Printf("ERROR: Failed to update account %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Updated account id %d for user %d", account.ID, userID)
		util.WriteJSON(w, http.StatusOK, account)
	}
}

func DeleteAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		if err := db.DeleteAccount(r.Context(), pool, id, db.OwnedBy(userID)); err != nil {
			log.Printf("ERROR: Failed to delete account %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Deleted account id %d for user %d", id, userID)
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
	}
}
