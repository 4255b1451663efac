package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotakitamaru/FinanceManager-v2/src/handlers"
	"github.com/kotakitamaru/FinanceManager-v2/src/middleware"
	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

func NewRouter(pool *pgxpool.Pool, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(corsOrigin))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		util.WriteError(w, util.NotFoundError("Route not found"))
	})

	r.Get("/health", handlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(pool))
		r.Post("/auth/login", handlers.Login(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// Accounts
			r.Get("/accounts", handlers.GetAccounts(pool))
			r.Post("/accounts", handlers.CreateAccount(pool))
			r.Get("/accounts/{id}", handlers.GetAccountByID(pool))
			r.Put("/accounts/{id}", handlers.UpdateAccount(pool))
			r.Delete("/accounts/{id}", handlers.DeleteAccount(pool))

			// Categories
			r.Get("/categories", handlers.GetCategories(pool))
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories/{id}", handlers.GetCategoryByID(pool))
			r.Put("/categories/{id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{id}", handlers.DeleteCategory(pool))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions/{id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{id}", handlers.DeleteTransaction(pool))

			// Users
			r.Get("/users", handlers.GetAllUsers(pool))
			r.Post("/users", handlers.CreateUser(pool))
			r.Get("/users/{id}", handlers.GetUserByID(pool))
			r.Put("/users/{id}", handlers.UpdateUser(pool))
			r.Delete("/users/{id}", handlers.DeleteUser(pool))
		})
	})

	return r
}
