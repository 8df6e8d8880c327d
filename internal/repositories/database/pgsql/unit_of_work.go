package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

// unitOfWork opens one pgx transaction per call and hands the callback
// repositories bound to it.
type unitOfWork struct {
	BaseRepository
}

func newUnitOfWork(pool *pgxpool.Pool) *unitOfWork {
	return &unitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)
var _ portsrepo.TransactionManager = (*unitOfWork)(nil)

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) (err error) {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := u.Rollback(ctx, tx); rbErr != nil {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(ctx, newTxRepositories(tx)); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}
