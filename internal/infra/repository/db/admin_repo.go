package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *DbDao
}

var _ IAdminRepository = (*AdminRepo)(nil)

func NewAdminRepo(db *DbDao) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create admin %s: %w", admin.Email, gorm.ErrDuplicatedKey)
		}
		return fmt.Errorf("create admin %s: %w", admin.Email, err)
	}
	return nil
}

func (r *AdminRepo) GetAdminByID(ctx context.Context, adminID string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "admin_id = ?", adminID).Error; err != nil {
		return nil, fmt.Errorf("get admin %s: %w", adminID, err)
	}
	return &admin, nil
}

func (r *AdminRepo) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}
