package db

import (
	"fmt"
	"strconv"
)

// Scope selects which rows an operation may touch. OwnedBy restricts reads
// and writes to a single user's rows; Unscoped matches every row regardless
// of owner, including legacy rows with no owner set.
type Scope struct {
	userID int64
	scoped bool
}

func OwnedBy(userID int64) Scope {
	return Scope{userID: userID, scoped: true}
}

func Unscoped() Scope {
	return Scope{}
}

// appendCondition adds the owner predicate on column to conds/args.
func (s Scope) appendCondition(column string, conds []string, args []interface{}) ([]string, []interface{}) {
	if !s.scoped {
		return conds, args
	}
	conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)+1))
	args = append(args, s.userID)
	return conds, args
}

func (s Scope) cacheKey() string {
	if !s.scoped {
		return "all"
	}
	return strconv.FormatInt(s.userID, 10)
}
