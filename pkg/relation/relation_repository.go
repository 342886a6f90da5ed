package relation

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Repository persists one (user, target) relation kind. Insert must
	// surface gorm.ErrDuplicatedKey when the pair already exists so the
	// unique index, not the application, decides races.
	Repository[R any] interface {
		Insert(ctx context.Context, row *R) error
		DeletePair(ctx context.Context, userID, targetID uuid.UUID) (int64, error)
	}

	gormRepository[R any] struct {
		db           *gorm.DB
		userColumn   string
		targetColumn string
	}
)

func NewRepository[R any](db *gorm.DB, userColumn, targetColumn string) Repository[R] {
	return &gormRepository[R]{
		db:           db,
		userColumn:   userColumn,
		targetColumn: targetColumn,
	}
}

func (r *gormRepository[R]) Insert(ctx context.Context, row *R) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *gormRepository[R]) DeletePair(ctx context.Context, userID, targetID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ? AND %s = ?", r.userColumn, r.targetColumn), userID, targetID).
		Delete(new(R))
	return res.RowsAffected, res.Error
}
