package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "github.com/kotakitamaru/FinanceManager-v2/src/db"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
)

// balance is derived, never stored: the signed sum of the account's
// transactions, where the linked category's is_income flag decides the sign.
const accountSelect = `
	SELECT a.id, a.title, a.icon, a.color,
	       COALESCE(SUM(t.amount * CASE WHEN c.is_income = TRUE THEN 1 ELSE -1 END), 0) AS balance,
	       a.create_date, a.update_date
	FROM accounts a
	LEFT JOIN transactions t ON a.id = t.account_id
	LEFT JOIN categories c ON t.category_id = c.id`

const accountGroupBy = `GROUP BY a.id, a.title, a.icon, a.color, a.create_date, a.update_date`

type accountList struct {
	Accounts []models.Account
	Total    int
}

func ListAccounts(ctx context.Context, pool *pgxpool.Pool, page, limit int, scope Scope) ([]models.Account, int, error) {
	key := fmt.Sprintf("accounts:list:%s:%d:%d", scope.cacheKey(), page, limit)
	if v, ok := cache.GetCache(key); ok {
		if l, ok := v.(accountList); ok {
			return l.Accounts, l.Total, nil
		}
	}

	offset := (page - 1) * limit
	var conds []string
	var args []interface{}
	conds, args = scope.appendCondition("a.user_id", conds, args)
	where := whereClause(conds)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts a "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s
	%s
	%s
	ORDER BY a.id ASC
	LIMIT $%d OFFSET $%d`, accountSelect, where, accountGroupBy, len(args)+1, len(args)+2)

	rows, err := pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Title, &a.Icon, &a.Color, &a.Balance, &a.CreateDate, &a.UpdateDate); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cache.SetAccountCache(key, accountList{Accounts: accounts, Total: total})
	return accounts, total, nil
}

func GetAccountByID(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) (*models.Account, error) {
	conds := []string{"a.id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("a.user_id", conds, args)

	query := fmt.Sprintf(`%s
	%s
	%s`, accountSelect, whereClause(conds), accountGroupBy)

	var a models.Account
	err := pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.Title, &a.Icon, &a.Color, &a.Balance, &a.CreateDate, &a.UpdateDate)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func CreateAccount(ctx context.Context, pool *pgxpool.Pool, req models.CreateAccountRequest, userID int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (title, icon, color, user_id, create_date, update_date)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, title, icon, color, create_date, update_date`

	var a models.Account
	err := pool.QueryRow(ctx, query, req.Title, req.Icon, req.Color, userID).
		Scan(&a.ID, &a.Title, &a.Icon, &a.Color, &a.CreateDate, &a.UpdateDate)
	if err != nil {
		return nil, err
	}

	cache.ClearAccountCaches()
	return &a, nil
}

func UpdateAccount(ctx context.Context, pool *pgxpool.Pool, id int64, req models.UpdateAccountRequest, scope Scope) (*models.Account, error) {
	b := &updateBuilder{}
	b.setString("title", req.Title)
	b.setString("icon", req.Icon)
	b.setString("color", req.Color)
	b.raw("update_date = NOW()")

	conds := []string{fmt.Sprintf("id = $%d", b.addArg(id))}
	if scope.scoped {
		conds = append(conds, fmt.Sprintf("user_id = $%d", b.addArg(scope.userID)))
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		%s
		%s
		RETURNING id, title, icon, color,
		          COALESCE((SELECT SUM(t.amount * CASE WHEN c.is_income = TRUE THEN 1 ELSE -1 END)
		                    FROM transactions t
		                    JOIN categories c ON t.category_id = c.id
		                    WHERE t.account_id = accounts.id), 0) AS balance,
		          create_date, update_date`, b.setClause(), whereClause(conds))

	var a models.Account
	err := pool.QueryRow(ctx, query, b.args...).
		Scan(&a.ID, &a.Title, &a.Icon, &a.Color, &a.Balance, &a.CreateDate, &a.UpdateDate)
	if err != nil {
		return nil, err
	}

	cache.ClearAccountCaches()
	return &a, nil
}

// DeleteAccount affects zero rows when the id does not exist or the scope
// does not match; that is not an error.
func DeleteAccount(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) error {
	conds := []string{"id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("user_id", conds, args)

	_, err := pool.Exec(ctx, "DELETE FROM accounts "+whereClause(conds), args...)
	if err != nil {
		return err
	}

	cache.ClearAccountCaches()
	return nil
}
