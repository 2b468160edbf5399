package keypage

import (
	"context"

	"gorm.io/gorm"
)

// GormExecutor is the bundled Executor implementation over a *gorm.DB.
// The model is derived from T; use WithScope to attach the base query
// (joins, filters, table overrides).
type GormExecutor[T any] struct {
	db    *gorm.DB
	scope func(*gorm.DB) *gorm.DB
}

func NewGormExecutor[T any](db *gorm.DB) *GormExecutor[T] {
	return &GormExecutor[T]{db: db}
}

// WithScope sets the base query every fetch and count starts from.
func (e *GormExecutor[T]) WithScope(scope func(*gorm.DB) *gorm.DB) *GormExecutor[T] {
	e.scope = scope
	return e
}

// Fetch - implements Executor.
func (e *GormExecutor[T]) Fetch(ctx context.Context, query Query) ([]T, error) {
	db := query.Boundary.Apply(query.OrderTerms.Apply(e.base(ctx)))
	if query.Limit != NoLimit {
		db = db.Limit(query.Limit)
	}

	var items []T
	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// Count - implements Executor.
func (e *GormExecutor[T]) Count(ctx context.Context, query Query) (int64, error) {
	var total int64
	err := query.Boundary.Apply(e.base(ctx)).Count(&total).Error

	return total, err
}

func (e *GormExecutor[T]) base(ctx context.Context) *gorm.DB {
	db := e.db.WithContext(ctx).Model(new(T))
	if e.scope != nil {
		db = e.scope(db)
	}

	return db
}

var _ Executor[struct{}] = (*GormExecutor[struct{}])(nil)
