package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "github.com/kotakitamaru/FinanceManager-v2/src/db"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
)

// amount is derived the same way as an account balance, but over the
// category's own transactions.
const categorySelect = `
	SELECT c.id, c.title, c.icon, c.is_income, c.color,
	       COALESCE(SUM(t.amount * CASE WHEN c.is_income = TRUE THEN 1 ELSE -1 END), 0) AS amount,
	       c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN transactions t ON c.id = t.category_id`

const categoryGroupBy = `GROUP BY c.id, c.title, c.icon, c.is_income, c.color, c.created_at, c.updated_at`

type categoryList struct {
	Categories []models.Category
	Total      int
}

func ListCategories(ctx context.Context, pool *pgxpool.Pool, page, limit int, isIncome *bool, scope Scope) ([]models.Category, int, error) {
	incomeKey := "-"
	if isIncome != nil {
		incomeKey = fmt.Sprintf("%t", *isIncome)
	}
	key := fmt.Sprintf("categories:list:%s:%d:%d:%s", scope.cacheKey(), page, limit, incomeKey)
	if v, ok := cache.GetCache(key); ok {
		if l, ok := v.(categoryList); ok {
			return l.Categories, l.Total, nil
		}
	}

	offset := (page - 1) * limit
	var conds []string
	var args []interface{}
	conds, args = scope.appendCondition("c.user_id", conds, args)
	if isIncome != nil {
		conds = append(conds, fmt.Sprintf("c.is_income = $%d", len(args)+1))
		args = append(args, *isIncome)
	}
	where := whereClause(conds)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories c "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s
	%s
	%s
	ORDER BY c.created_at DESC
	LIMIT $%d OFFSET $%d`, categorySelect, where, categoryGroupBy, len(args)+1, len(args)+2)

	rows, err := pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Icon, &c.IsIncome, &c.Color, &c.Amount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cache.SetCategoryCache(key, categoryList{Categories: categories, Total: total})
	return categories, total, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) (*models.Category, error) {
	conds := []string{"c.id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("c.user_id", conds, args)

	query := fmt.Sprintf(`%s
	%s
	%s`, categorySelect, whereClause(conds), categoryGroupBy)

	var c models.Category
	err := pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Title, &c.Icon, &c.IsIncome, &c.Color, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, req models.CreateCategoryRequest, userID int64) (*models.Category, error) {
	query := `
		INSERT INTO categories (title, icon, is_income, color, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, title, icon, is_income, color, 0 AS amount, created_at, updated_at`

	var c models.Category
	err := pool.QueryRow(ctx, query, req.Title, req.Icon, req.IsIncome, req.Color, userID).
		Scan(&c.ID, &c.Title, &c.Icon, &c.IsIncome, &c.Color, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	cache.ClearCategoryCaches()
	return &c, nil
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, id int64, req models.UpdateCategoryRequest, scope Scope) (*models.Category, error) {
	b := &updateBuilder{}
	b.setString("title", req.Title)
	b.setString("icon", req.Icon)
	b.setBool("is_income", req.IsIncome)
	b.setString("color", req.Color)
	b.raw("updated_at = NOW()")

	conds := []string{fmt.Sprintf("id = $%d", b.addArg(id))}
	if scope.scoped {
		conds = append(conds, fmt.Sprintf("user_id = $%d", b.addArg(scope.userID)))
	}

	query := fmt.Sprintf(`
		UPDATE categories
		%s
		%s
		RETURNING id, title, icon, is_income, color,
		          COALESCE((SELECT SUM(t.amount * CASE WHEN categories.is_income = TRUE THEN 1 ELSE -1 END)
		                    FROM transactions t
		                    WHERE t.category_id = categories.id), 0) AS amount,
		          created_at, updated_at`, b.setClause(), whereClause(conds))

	var c models.Category
	err := pool.QueryRow(ctx, query, b.args...).
		Scan(&c.ID, &c.Title, &c.Icon, &c.IsIncome, &c.Color, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	clearCategoryDerivedCaches()
	return &c, nil
}

// A category update can flip is_income, which changes the sign every linked
// account balance is computed with, so account caches go too.
func clearCategoryDerivedCaches() {
	cache.ClearCategoryCaches()
	cache.ClearAccountCaches()
}

// DeleteCategory affects zero rows when the id does not exist or the scope
// does not match; that is not an error.
func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) error {
	conds := []string{"id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("user_id", conds, args)

	_, err := pool.Exec(ctx, "DELETE FROM categories "+whereClause(conds), args...)
	if err != nil {
		return err
	}

	cache.ClearCategoryCaches()
	return nil
}
