package dto

import (
	"time"
)

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
}

// DateRangeParams defines a [from, to] date range; 'to' is inclusive.
type DateRangeParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}
