package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

type OwnerRepo struct {
	db *DbDao
}

var _ IOwnerRepository = (*OwnerRepo)(nil)

func NewOwnerRepo(db *DbDao) *OwnerRepo {
	return &OwnerRepo{db: db}
}

func (r *OwnerRepo) CreateOwner(ctx context.Context, owner *model.Owner) error {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create owner %s: %w", owner.Email, gorm.ErrDuplicatedKey)
		}
		return fmt.Errorf("create owner %s: %w", owner.Email, err)
	}
	return nil
}

func (r *OwnerRepo) GetOwnerByID(ctx context.Context, ownerID string) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.WithContext(ctx).First(&owner, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("get owner %s: %w", ownerID, err)
	}
	return &owner, nil
}

func (r *OwnerRepo) GetOwnerByEmail(ctx context.Context, email string) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.WithContext(ctx).First(&owner, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("get owner by email: %w", err)
	}
	return &owner, nil
}
