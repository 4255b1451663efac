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

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		page, limit, err := parsePagination(r)
		if err != nil {
			util.WriteError(w, err)
			return
		}
		isIncome, err := optionalBoolQuery(r, "isIncome")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		categories, total, err := db.ListCategories(r.Context(), pool, page, limit, isIncome, db.OwnedBy(userID))
		if err != nil {
			log.Printf("ERROR: Failed to list categories for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, models.CategoryListResponse{
			Categories: categories,
			Total:      total,
			Page:       page,
			Limit:      limit,
		})
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		category, err := db.GetCategoryByID(r.Context(), pool, id, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Category not found"))
				return
			}
			log.Printf("ERROR: Failed to get category %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, category)
	}
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		var req models.CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}
		if req.Title == "" {
			util.WriteError(w, util.ValidationError("title is required"))
			return
		}

		category, err := db.CreateCategory(r.Context(), pool, req, userID)
		if err != nil {
			if isDuplicateKey(err) {
				log.Printf("ERROR: Category title already exists - Title: %s, User: %d", req.Title, userID)
				util.WriteError(w, util.ConflictError("Category with this title already exists"))
				return
			}
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Created category id %d for user %d", category.ID, userID)
		util.WriteJSON(w, http.StatusCreated, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %d: %v", userID, err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		category, err := db.UpdateCategory(r.Context(), pool, id, req, db.OwnedBy(userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NotFoundError("Category not found"))
				return
			}
			if isDuplicateKey(err) {
				util.WriteError(w, util.ConflictError("Category with this title already exists"))
				return
			}
			log.Printf("ERROR: Failed to update category %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Updated category id %d for user %d", category.ID, userID)
		util.WriteJSON(w, http.StatusOK, category)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authUserID(r)
		id, err := parseIDParam(r, "id")
		if err != nil {
			util.WriteError(w, err)
			return
		}

		if err := db.DeleteCategory(r.Context(), pool, id, db.OwnedBy(userID)); err != nil {
			log.Printf("ERROR: Failed to delete category %d for user %d: %v", id, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Deleted category id %d for user %d", id, userID)
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
	}
}
