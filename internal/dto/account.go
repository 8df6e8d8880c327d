package dto

import (
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64              `json:"accountID"`
	AccountNumber string             `json:"accountNumber"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	ParentID      *int64             `json:"parentID,omitempty"`
	IsLeaf        bool               `json:"isLeaf"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		ParentID:      acc.ParentID,
		IsLeaf:        acc.IsLeaf(),
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ResolveAccountsRequest asks the directory to resolve account names.
type ResolveAccountsRequest struct {
	Names []string `json:"names" binding:"required,min=1,dive,required"`
}
