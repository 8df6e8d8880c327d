package dto

import (
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one posting of a manual journal.
type CreateJournalLineRequest struct {
	AccountID int64           `json:"accountID" binding:"required,gt=0"`
	Debit     decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit    decimal.Decimal `json:"credit" binding:"dgte0"`
}

// CreateJournalRequest defines the data needed to post a manual (adjusting) journal.
type CreateJournalRequest struct {
	Date            time.Time                  `json:"date" binding:"required"`
	Description     string                     `json:"description" binding:"required"`
	ReferenceNumber string                     `json:"referenceNumber"` // Optional, generated when empty
	Lines           []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToJournalLines converts the request lines to domain lines.
func (r CreateJournalRequest) ToJournalLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return lines
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Side      string          `json:"side"` // DEBIT or CREDIT
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       int64     `json:"journalID"`
	EntryDate       time.Time `json:"entryDate"`
	Description     string    `json:"description"`
	ReferenceNumber string    `json:"referenceNumber"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
}

// GetJournalResponse defines the combined response for getting a journal and its lines.
type GetJournalResponse struct {
	Journal JournalResponse       `json:"journal"`
	Lines   []JournalLineResponse `json:"lines"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:       j.JournalID,
		EntryDate:       j.EntryDate,
		Description:     j.Description,
		ReferenceNumber: j.ReferenceNumber,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
}

// ToJournalLineResponses converts domain lines to their DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Side: string(l.Side())}
	}
	return res
}

// ToGetJournalResponse converts a journal with lines.
func ToGetJournalResponse(j *domain.Journal) GetJournalResponse {
	return GetJournalResponse{Journal: ToJournalResponse(j), Lines: ToJournalLineResponses(j.Lines)}
}

// ToListJournalsResponse converts a page of journals.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) *ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return &ListJournalsResponse{Journals: res, NextToken: nextToken}
}
