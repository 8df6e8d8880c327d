package pgsql

import (
	"context"
	"fmt"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// Advisory locks are transaction scoped and keyed by a 64-bit hash of a text key.
// A hash collision only serializes two unrelated transactions.
const (
	advisoryLockSQL       = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	advisoryLockSharedSQL = `SELECT pg_advisory_xact_lock_shared(hashtextextended($1, 0))`
)

func periodLockKey(period domain.Period) string {
	return "period:" + period.String()
}

func memberSavingsLockKey(memberID int64, savingType string) string {
	return fmt.Sprintf("savings:%d:%s", memberID, savingType)
}

func advisoryXactLock(ctx context.Context, db DBTX, key string, shared bool) error {
	query := advisoryLockSQL
	if shared {
		query = advisoryLockSharedSQL
	}
	if _, err := db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to take advisory lock %s: %w", key, err)
	}
	return nil
}
