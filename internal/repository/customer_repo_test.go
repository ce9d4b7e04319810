package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

func setupCustomerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:customerrepo?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}))
	require.NoError(t, db.Exec("DELETE FROM customers").Error)

	return db
}

func TestCustomerRepositorySearchAndCityFilter(t *testing.T) {
	db := setupCustomerDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customers := []models.Customer{
		{Name: "Aisha Khalid", Email: "aisha@example.com", Phone: "+966501111111", City: "Riyadh"},
		{Name: "Omar Faruq", Email: "omar@example.com", Phone: "+966502222222", City: "Jeddah"},
		{Name: "Sara Aziz", Email: "sara@example.com", Phone: "+966503333333", City: "Riyadh"},
	}
	for i := range customers {
		require.NoError(t, repo.Create(ctx, &customers[i]))
	}

	byName, total, err := repo.List(ctx, CustomerFilter{Search: "omar"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Omar Faruq", byName[0].Name)

	byCity, total, err := repo.List(ctx, CustomerFilter{City: "Riyadh"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byCity, 2)
}

func TestCustomerRepositoryUpdateAndDelete(t *testing.T) {
	db := setupCustomerDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := models.Customer{Name: "Aisha Khalid", Email: "aisha2@example.com", City: "Riyadh"}
	require.NoError(t, repo.Create(ctx, &customer))

	updated, err := repo.Update(ctx, customer.ID, map[string]interface{}{"blocked": true})
	require.NoError(t, err)
	require.True(t, updated.Blocked)

	_, err = repo.Update(ctx, 9999, map[string]interface{}{"blocked": true})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	require.ErrorIs(t, repo.Delete(ctx, customer.ID), gorm.ErrRecordNotFound)
}
