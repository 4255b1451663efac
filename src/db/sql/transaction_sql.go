package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "github.com/kotakitamaru/FinanceManager-v2/src/db"
	"github.com/kotakitamaru/FinanceManager-v2/src/models"
)

const transactionColumns = `id, amount, note, date, category_id, account_id, create_date, update_date`

// TransactionFilter narrows and orders a transaction listing. Date bounds
// are inclusive.
type TransactionFilter struct {
	CategoryID *int64
	AccountID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

var transactionSortFields = map[string]struct{}{
	"id":          {},
	"amount":      {},
	"date":        {},
	"category_id": {},
	"account_id":  {},
	"create_date": {},
	"update_date": {},
}

// orderBy validates the requested sort against the column whitelist. Any
// value outside it silently falls back to the default of id DESC.
func (f TransactionFilter) orderBy() string {
	field := "id"
	if _, ok := transactionSortFields[f.SortBy]; ok {
		field = f.SortBy
	}
	direction := "DESC"
	if u := strings.ToUpper(f.SortOrder); u == "ASC" || u == "DESC" {
		direction = u
	}
	return "ORDER BY " + field + " " + direction
}

func (f TransactionFilter) conditions(scope Scope) ([]string, []interface{}) {
	var conds []string
	var args []interface{}
	conds, args = scope.appendCondition("user_id", conds, args)
	if f.CategoryID != nil {
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *f.CategoryID)
	}
	if f.AccountID != nil {
		conds = append(conds, fmt.Sprintf("account_id = $%d", len(args)+1))
		args = append(args, *f.AccountID)
	}
	if f.StartDate != nil {
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *f.EndDate)
	}
	return conds, args
}

func (f TransactionFilter) cacheKey(scope Scope, page, limit int) string {
	parts := []string{
		"transactions:list", scope.cacheKey(),
		strconv.Itoa(page), strconv.Itoa(limit),
		int64Key(f.CategoryID), int64Key(f.AccountID),
		timeKey(f.StartDate), timeKey(f.EndDate),
		f.orderBy(),
	}
	return strings.Join(parts, ":")
}

func int64Key(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func timeKey(v *time.Time) string {
	if v == nil {
		return "-"
	}
	return v.Format(time.RFC3339)
}

type transactionList struct {
	Transactions []models.Transaction
	Total        int
}

func ListTransactions(ctx context.Context, pool *pgxpool.Pool, page, limit int, filter TransactionFilter, scope Scope) ([]models.Transaction, int, error) {
	key := filter.cacheKey(scope, page, limit)
	if v, ok := cache.GetCache(key); ok {
		if l, ok := v.(transactionList); ok {
			return l.Transactions, l.Total, nil
		}
	}

	offset := (page - 1) * limit
	conds, args := filter.conditions(scope)
	where := whereClause(conds)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM transactions
	%s
	%s
	LIMIT $%d OFFSET $%d`, transactionColumns, where, filter.orderBy(), len(args)+1, len(args)+2)

	rows, err := pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Note, &t.Date, &t.CategoryID, &t.AccountID, &t.CreateDate, &t.UpdateDate); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cache.SetTransactionCache(key, transactionList{Transactions: transactions, Total: total})
	return transactions, total, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) (*models.Transaction, error) {
	conds := []string{"id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("user_id", conds, args)

	query := fmt.Sprintf(`
	SELECT %s
	FROM transactions
	%s`, transactionColumns, whereClause(conds))

	var t models.Transaction
	err := pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.Amount, &t.Note, &t.Date, &t.CategoryID, &t.AccountID, &t.CreateDate, &t.UpdateDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, amount float64, note string, date time.Time, categoryID, accountID, userID int64) (*models.Transaction, error) {
	query := fmt.Sprintf(`
		INSERT INTO transactions (amount, note, date, category_id, account_id, user_id, create_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s`, transactionColumns)

	var t models.Transaction
	err := pool.QueryRow(ctx, query, amount, note, date, categoryID, accountID, userID).
		Scan(&t.ID, &t.Amount, &t.Note, &t.Date, &t.CategoryID, &t.AccountID, &t.CreateDate, &t.UpdateDate)
	if err != nil {
		return nil, err
	}

	clearTransactionDerivedCaches()
	return &t, nil
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, id int64, patch models.TransactionPatch, scope Scope) (*models.Transaction, error) {
	b := &updateBuilder{}
	b.setFloat("amount", patch.Amount)
	b.setString("note", patch.Note)
	b.setTime("date", patch.Date)
	b.setInt("category_id", patch.CategoryID)
	b.setInt("account_id", patch.AccountID)
	b.raw("update_date = NOW()")

	conds := []string{fmt.Sprintf("id = $%d", b.addArg(id))}
	if scope.scoped {
		conds = append(conds, fmt.Sprintf("user_id = $%d", b.addArg(scope.userID)))
	}

	query := fmt.Sprintf(`
		UPDATE transactions
		%s
		%s
		RETURNING %s`, b.setClause(), whereClause(conds), transactionColumns)

	var t models.Transaction
	err := pool.QueryRow(ctx, query, b.args...).
		Scan(&t.ID, &t.Amount, &t.Note, &t.Date, &t.CategoryID, &t.AccountID, &t.CreateDate, &t.UpdateDate)
	if err != nil {
		return nil, err
	}

	clearTransactionDerivedCaches()
	return &t, nil
}

// DeleteTransaction affects zero rows when the id does not exist or the
// scope does not match; that is not an error.
func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, id int64, scope Scope) error {
	conds := []string{"id = $1"}
	args := []interface{}{id}
	conds, args = scope.appendCondition("user_id", conds, args)

	_, err := pool.Exec(ctx, "DELETE FROM transactions "+whereClause(conds), args...)
	if err != nil {
		return err
	}

	clearTransactionDerivedCaches()
	return nil
}

// A transaction write changes account balances and category amounts too, so
// all three cache sets go.
func clearTransactionDerivedCaches() {
	cache.ClearTransactionCaches()
	cache.ClearAccountCaches()
	cache.ClearCategoryCaches()
}
