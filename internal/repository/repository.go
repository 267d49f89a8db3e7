package repository

import "context"

// Repository is the data-access capability every store exposes. FindAll
// enumerates in insertion (id) order; Create lets the store assign the id
// when it is unset.
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int) error
}
