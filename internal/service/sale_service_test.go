package service

import (
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleCreateStoresTotalsAsSubmitted(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSaleService(repository.NewSaleRepo(db), repository.NewItemRepo(db), repository.NewCustomerRepo(db))
	customer := &model.Customer{Name: "Ada"}
	require.NoError(t, db.Create(customer).Error)
	rice := createItem(t, db, "Rice", 10, "2")
	beans := createItem(t, db, "Beans", 5, "3")

	override := dec("5")
	sale, err := svc.Create(&SaleInput{
		CustomerID: customer.ID,
		SubTotal:   dec("11"),
		GrandTotal: dec("12.1"),
		TaxAmount:  dec("1.1"),
		AmountPaid: dec("20"),
		Details: []SaleDetailInput{
			{ItemID: rice.ID, Price: dec("2"), Quantity: 3},
			{ItemID: beans.ID, Price: dec("3"), Quantity: 2, TotalDetail: &override},
		},
	}, testActor)
	require.NoError(t, err)
	assertDecimal(t, "12.1", sale.GrandTotal)

	stored, err := svc.GetByID(sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Details, 2)
	assert.Equal(t, 5, stored.TotalQuantity())
	for _, d := range stored.Details {
		if d.ItemID == rice.ID {
			assertDecimal(t, "6", d.TotalDetail)
		} else {
			assertDecimal(t, "5", d.TotalDetail)
		}
	}

	assert.Equal(t, 10, stockOf(t, db, rice.ID), "sales do not move stock")

	require.NoError(t, svc.Delete(sale.ID, testActor))
	_, err = svc.GetByID(sale.ID)
	assert.ErrorIs(t, err, ErrSaleNotFound)
	assert.ErrorIs(t, svc.Delete(sale.ID, testActor), ErrSaleNotFound)
}

func TestSaleCreateRejectsBadReferences(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSaleService(repository.NewSaleRepo(db), repository.NewItemRepo(db), repository.NewCustomerRepo(db))
	customer := &model.Customer{Name: "Ada"}
	require.NoError(t, db.Create(customer).Error)
	item := createItem(t, db, "Rice", 1, "2")

	_, err := svc.Create(&SaleInput{CustomerID: customer.ID}, testActor)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(&SaleInput{
		CustomerID: uuid.New(),
		Details:    []SaleDetailInput{{ItemID: item.ID, Quantity: 1}},
	}, testActor)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = svc.Create(&SaleInput{
		CustomerID: customer.ID,
		Details:    []SaleDetailInput{{ItemID: uuid.New(), Quantity: 1}},
	}, testActor)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.Create(&SaleInput{
		CustomerID: customer.ID,
		Details:    []SaleDetailInput{{ItemID: item.ID, Quantity: 0}},
	}, testActor)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryNamesAreUnique(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCatalogService(repository.NewCategoryRepo(db), repository.NewVendorRepo(db), repository.NewCustomerRepo(db))

	grains, err := svc.CreateCategory(&CategoryInput{Name: "Grains"}, testActor)
	require.NoError(t, err)
	_, err = svc.CreateCategory(&CategoryInput{Name: " Grains "}, testActor)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.UpdateCategory(grains.ID, &CategoryInput{Name: "Grains"}, testActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(grains.ID, testActor))
	assert.ErrorIs(t, svc.DeleteCategory(grains.ID, testActor), ErrCategoryNotFound)

	_, err = svc.CreateCustomer(&CustomerInput{Name: "Ada", Email: "not-an-email"}, testActor)
	assert.ErrorIs(t, err, ErrValidation)
}
