package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
)

// accountDirectory resolves configured chart-of-accounts names to IDs.
type accountDirectory struct {
	BaseService
	names domain.AccountNames
}

// NewAccountDirectory creates the directory for the configured account names.
func NewAccountDirectory(names domain.AccountNames) portssvc.AccountDirectory {
	return &accountDirectory{names: names}
}

var _ portssvc.AccountDirectory = (*accountDirectory)(nil)

func (d *accountDirectory) Names() domain.AccountNames {
	return d.names
}

// ResolveAccountIDs returns an ID for every requested name or a *apperrors.ConfigurationError
// listing all of the names that are missing.
func (d *accountDirectory) ResolveAccountIDs(ctx context.Context, accounts portsrepo.AccountReader, names ...string) (map[string]int64, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	var missing []string
	for _, name := range names {
		if name == "" {
			missing = append(missing, "<unset>")
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	found, err := accounts.FindAccountsByNames(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}

	ids := make(map[string]int64, len(unique))
	for _, name := range unique {
		acc, ok := found[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		ids[name] = acc.AccountID
	}

	if len(missing) > 0 {
		cfgErr := &apperrors.ConfigurationError{MissingAccounts: missing}
		d.LogError(ctx, cfgErr, "Chart of accounts is missing required accounts", slog.Any("missing", missing))
		return nil, cfgErr
	}
	return ids, nil
}
