package repository

import (
	"context"

	mongotx "planora/pkg/db/mongo"
)

func (r *mongoVendorProfileRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
