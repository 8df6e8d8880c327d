package dto

import (
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DistributeSHURequest defines the distribution rules for a year.
type DistributeSHURequest struct {
	Year            int             `json:"year" binding:"required,min=1900,max=9999"`
	TotalSHU        decimal.Decimal `json:"totalSHU" binding:"dgt0"`
	CapitalPercent  decimal.Decimal `json:"capitalPercent" binding:"dgte0"`
	BusinessPercent decimal.Decimal `json:"businessPercent" binding:"dgte0"`
}

// ToRules converts the request to domain rules.
func (r DistributeSHURequest) ToRules() domain.SHURules {
	return domain.SHURules{
		Year:            r.Year,
		TotalSHU:        r.TotalSHU,
		CapitalPercent:  r.CapitalPercent,
		BusinessPercent: r.BusinessPercent,
	}
}
