package shared

import "context"

// TxRunner executes fn within a single database transaction. The context
// passed to fn carries the transaction; repositories resolve it when present
// so that all writes inside fn commit or roll back together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
