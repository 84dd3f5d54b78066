package service

import (
	"testing"

	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryCRUDAndSearch(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewDeliveryService(repository.NewDeliveryRepo(db), repository.NewItemRepo(db))
	item := createItem(t, db, "Fridge", 2, "300")

	first, err := svc.Create(&DeliveryInput{ItemID: &item.ID, CustomerName: " Ama Mensah ", Location: "Accra", Date: day(2024, 6, 1)}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Ama Mensah", first.CustomerName)
	_, err = svc.Create(&DeliveryInput{CustomerName: "Kofi Boateng", Date: day(2024, 6, 2)}, testActor)
	require.NoError(t, err)

	found, err := svc.Search("mensah AMA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	all, err := svc.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Kofi Boateng", all[0].CustomerName)

	updated, err := svc.Update(first.ID, &DeliveryInput{CustomerName: "Ama Mensah", Date: day(2024, 6, 3), IsDelivered: true}, testActor)
	require.NoError(t, err)
	assert.True(t, updated.IsDelivered)
	assert.Equal(t, "Delivered", updated.StatusLabel())
	assert.Nil(t, updated.ItemID)

	_, err = svc.Create(&DeliveryInput{CustomerName: "No Date"}, testActor)
	assert.ErrorIs(t, err, ErrValidation)

	missing := uuid.New()
	_, err = svc.Create(&DeliveryInput{ItemID: &missing, CustomerName: "Ghost", Date: day(2024, 6, 4)}, testActor)
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, svc.Delete(first.ID, testActor))
	_, err = svc.GetByID(first.ID)
	assert.ErrorIs(t, err, ErrDeliveryNotFound)
	assert.ErrorIs(t, svc.Delete(first.ID, testActor), ErrDeliveryNotFound)
}
