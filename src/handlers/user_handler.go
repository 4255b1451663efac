package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	db "github.com/kotakitamaru/FinanceManager-v2/src/db/sql"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

// User CRUD is an admin-style surface: authenticated, but not scoped to the
// caller's own row.

func GetAllUsers(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, err := parsePagination(r)
		if err != nil {
			util.WriteError(w, err)
			return
		}
		search := r.URL.Query().Get("search")

		users, total, err := db.ListUsers(r.Context(), pool, page, limit, search)
		if err != nil {
			log.Printf("ERROR: Failed to list users: %v", err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, models.UserListResponse{
			Users: users,
			Total: total,
			Page:  page,
			Limit: limit,
		})
	}
}

func GetUserByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("User not found"))
				return
			}
			log.Printf("ERROR: Failed to get user %d: %v", id, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, user)
	}
}

func CreateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create user request body: %v", err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)

		if !util.ValidateEmail(req.Email) {
			util.WriteError(w, util.ValidationError("invalid email format"))
			return
		}
		if !util.ValidateName(req.Name) {
			util.WriteError(w, util.ValidationError("name must be between 1 and 100 characters"))
			return
		}
		if !util.ValidatePassword(req.Password) {
			util.WriteError(w, util.ValidationError("password must be at least 6 characters"))
			return
		}

		if _, err := db.GetUserByEmail(r.Context(), pool, req.Email); err == nil {
			util.WriteError(w, util.ConflictError("User with this email already exists"))
			return
		} else if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("ERROR: Failed to check existing user %s: %v", req.Email, err)
			util.WriteError(w, err)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			util.WriteError(w, err)
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Email, req.Name, string(hashedPassword))
		if err != nil {
			if isDuplicateKey(err) {
				util.WriteError(w, util.ConflictError("User with this email already exists"))
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Created user id %d", user.ID)
		util.WriteJSON(w, http.StatusCreated, user)
	}
}

func UpdateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update user request body for user %d: %v", id, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		existing, err := db.GetUserByID(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("User not found"))
				return
			}
			log.Printf("ERROR: Failed to get user %d: %v", id, err)
			util.WriteError(w, err)
			return
		}

		if req.Email != nil {
			if !util.ValidateEmail(*req.Email) {
				util.WriteError(w, util.ValidationError("invalid email format"))
				return
			}
			if *req.Email != existing.Email {
				if _, err := db.GetUserByEmail(r.Context(), pool, *req.Email); err == nil {
					util.WriteError(w, util.ConflictError("User with this email already exists"))
					return
				} else if !errors.Is(err, pgx.ErrNoRows) {
					log.Printf("ERROR: Failed to check existing user %s: %v", *req.Email, err)
					util.WriteError(w, err)
					return
				}
			}
		}
		if req.Name != nil && !util.ValidateName(*req.Name) {
			util.WriteError(w, util.ValidationError("name must be between 1 and 100 characters"))
			return
		}
		if req.Password != nil {
			if !util.ValidatePassword(*req.Password) {
				util.WriteError(w, util.ValidationError("password must be at least 6 characters"))
				return
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("ERROR: Failed to hash password for user %d: %v", id, err)
				util.WriteError(w, err)
				return
			}
			hashedStr := string(hashed)
			req.Password = &hashedStr
		}

		user, err := db.UpdateUser(r.Context(), pool, id, req)
		if err != nil {
			if isDuplicateKey(err) {
				util.WriteError(w, util.ConflictError("User with this email already exists"))
				return
			}
			log.Printf("ERROR: Failed to update user %d: %v", id, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Updated user id %d", user.ID)
		util.WriteJSON(w, http.StatusOK, user)
	}
}

func DeleteUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		if err := db.DeleteUser(r.Context(), pool, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("User not found"))
				return
			}
			log.Printf("ERROR: Failed to delete user %d: %v", id, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Deleted user id %d", id)
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}
