package repository

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction handle travels in the context; repository implementations pick
// it up so every call inside fn shares one transaction. Multi-step
// read-validate-write sequences (payment application, table assignment) go
// through this so neither write can be left applied without the other.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
