package services

import (
	"context"
	"fmt"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
)

// accountService serves the read-only chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	directory   portssvc.AccountDirectory
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountReader, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accountRepo: repo,
		directory:   directory,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}
	return acc, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ResolveAccounts(ctx context.Context, names ...string) (map[string]int64, error) {
	return s.directory.ResolveAccountIDs(ctx, s.accountRepo, names...)
}
