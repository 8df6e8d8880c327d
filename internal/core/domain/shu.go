package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SHURules describes how a year's distributable SHU (Sisa Hasil Usaha) is split.
// CapitalPercent goes to members pro rata to their savings (jasa modal),
// BusinessPercent pro rata to their purchases (jasa usaha).
type SHURules struct {
	Year            int             `json:"year"`
	TotalSHU        decimal.Decimal `json:"totalSHU"`
	CapitalPercent  decimal.Decimal `json:"capitalPercent"`
	BusinessPercent decimal.Decimal `json:"businessPercent"`
}

// MemberContribution is a member's capital and business activity for a year.
type MemberContribution struct {
	MemberID  int64           `json:"memberID"`
	Savings   decimal.Decimal `json:"savings"`
	Purchases decimal.Decimal `json:"purchases"`
}

// SHUAllocation is the share distributed to one member.
type SHUAllocation struct {
	MemberID      int64           `json:"memberID"`
	CapitalShare  decimal.Decimal `json:"capitalShare"`
	BusinessShare decimal.Decimal `json:"businessShare"`
	Total         decimal.Decimal `json:"total"`
}

// SHUDistribution is the yearly distribution record; at most one per year.
type SHUDistribution struct {
	Year          int             `json:"year"`
	TotalSHU      decimal.Decimal `json:"totalSHU"`
	Distributed   decimal.Decimal `json:"distributed"`
	Allocations   []SHUAllocation `json:"allocations"`
	JournalID     *int64          `json:"journalID,omitempty"`
	DistributedAt time.Time       `json:"distributedAt"`
	DistributedBy string          `json:"distributedBy"`
}
