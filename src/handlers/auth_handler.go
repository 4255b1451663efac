package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	db "github.com/kotakitamaru/FinanceManager-v2/src/db/sql"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

func Register(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			util.WriteError(w, util.ValidationError("invalid email format"))
			return
		}
		if !util.ValidateName(req.Name) {
			log.Printf("ERROR: Name validation failed during registration - Email: %s", req.Email)
			util.WriteError(w, util.ValidationError("name must be between 1 and 100 characters"))
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Email: %s", req.Email)
			util.WriteError(w, util.ValidationError("password must be at least 6 characters"))
			return
		}

		if _, err := db.GetUserByEmail(r.Context(), pool, req.Email); err == nil {
			log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
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
				log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
				util.WriteError(w, util.ConflictError("User with this email already exists"))
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			util.WriteError(w, err)
			return
		}

		token, err := generateToken(user)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Email, user.ID)

		util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    models.LoginResponse{User: *user, Token: token},
			"message": "User registered successfully",
		})
	}
}

func Login(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			util.WriteError(w, util.ValidationError("invalid request"))
			return
		}

		// Unknown email and wrong password both produce the same message so
		// accounts cannot be enumerated.
		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Email: %s: %v", req.Email, err)
			util.WriteError(w, util.UnauthorizedError("Invalid email or password"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for email %s from IP %s", req.Email, r.RemoteAddr)
			util.WriteError(w, util.UnauthorizedError("Invalid email or password"))
			return
		}

		token, err := generateToken(user)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Email, user.ID)

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    models.LoginResponse{User: *user, Token: token},
			"message": "Login successful",
		})
	}
}

// generateToken issues an HS256 token carrying the user's identity, valid
// for 24 hours. Tokens stay valid until expiry; there is no revocation.
func generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
