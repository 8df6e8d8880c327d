package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	db DBTX
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	a.id, a.account_number, a.account_name, a.account_type, a.parent_id,
	EXISTS (SELECT 1 FROM chart_of_accounts c WHERE c.parent_id = a.id) AS has_children`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.AccountID, &a.AccountNumber, &a.Name, &a.AccountType, &a.ParentID, &a.HasChildren)
	return a, err
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts a WHERE a.id = $1`
	a, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("account %d", accountID))
	}
	return &a, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts a WHERE a.id = ANY($1)`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]domain.Account, len(accounts))
	for _, a := range accounts {
		found[a.AccountID] = a
	}
	return found, nil
}

// FindAccountsByNames retrieves accounts keyed by exact name.
func (r *PgxAccountRepository) FindAccountsByNames(ctx context.Context, names []string) (map[string]domain.Account, error) {
	if len(names) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts a WHERE a.account_name = ANY($1)`
	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by names: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	found := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		found[a.Name] = a
	}
	return found, nil
}

// ListAccounts retrieves the chart of accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts a ORDER BY a.account_number`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}
