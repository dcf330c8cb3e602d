package db

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOwnerRepo(t *testing.T) {
	repo := NewOwnerRepo(newTestDbDao(t))
	ctx := context.Background()

	owner := &model.Owner{OwnerID: "o-1", Name: "Ravi", KitchenName: "Ravi's Tiffin", Email: "ravi@test.io", PasswordHash: "h"}
	require.NoError(t, repo.CreateOwner(ctx, owner))

	got, err := repo.GetOwnerByID(ctx, "o-1")
	require.NoError(t, err)
	require.Equal(t, "Ravi's Tiffin", got.KitchenName)

	got, err = repo.GetOwnerByEmail(ctx, "ravi@test.io")
	require.NoError(t, err)
	require.Equal(t, "o-1", got.OwnerID)

	err = repo.CreateOwner(ctx, &model.Owner{OwnerID: "o-2", Name: "X", KitchenName: "X", Email: "ravi@test.io", PasswordHash: "h"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = repo.GetOwnerByID(ctx, "o-3")
	require.True(t, IsNotFound(err))
}

func TestAdminRepo(t *testing.T) {
	repo := NewAdminRepo(newTestDbDao(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateAdmin(ctx, &model.Admin{AdminID: "a-1", Name: "Root", Email: "root@test.io", PasswordHash: "h"}))

	got, err := repo.GetAdminByEmail(ctx, "root@test.io")
	require.NoError(t, err)
	require.Equal(t, "a-1", got.AdminID)

	_, err = repo.GetAdminByID(ctx, "a-2")
	require.True(t, IsNotFound(err))
}

func TestUnifiedDB(t *testing.T) {
	dao := newTestDbDao(t)
	unified := NewUnifiedDB(dao.DB)
	require.NoError(t, unified.InitMigrate())
	require.NotNil(t, unified.GetDB())

	_, err := unified.GetCustomerByID(context.Background(), "nobody")
	require.True(t, IsNotFound(err))
}
