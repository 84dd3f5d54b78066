package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testActor = Actor{ID: "tester", Name: "Tester", Email: "tester@example.com"}

func newPurchaseService(db *gorm.DB) PurchaseService {
	ledger := NewInventoryLedger(repository.NewItemRepo(db))
	return NewPurchaseService(repository.NewPurchaseRepo(db), repository.NewVendorRepo(db), ledger, db, nil)
}

func createItem(t *testing.T, db *gorm.DB, name string, qty int, price string) *model.Item {
	t.Helper()
	item := &model.Item{Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
	require.NoError(t, db.Create(item).Error)
	return item
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var item model.Item
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	return item.Quantity
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPurchaseLifecycleKeepsStockInSync(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	a := createItem(t, db, "Rice", 10, "2.50")
	b := createItem(t, db, "Beans", 0, "1.00")

	p, err := svc.Create(&PurchaseInput{ItemID: a.ID, Quantity: intPtr(5), Price: decPtr("3")}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 15, stockOf(t, db, a.ID))
	assert.True(t, decimal.NewFromInt(15).Equal(p.TotalValue), "total_value = %s", p.TotalValue)

	_, err = svc.Update(p.ID, &PurchaseInput{ItemID: a.ID, Quantity: intPtr(8), Price: decPtr("3")}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 18, stockOf(t, db, a.ID))

	moved, err := svc.Update(p.ID, &PurchaseInput{ItemID: b.ID, Quantity: intPtr(8), Price: decPtr("3")}, testActor)
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ItemID)
	assert.Equal(t, 10, stockOf(t, db, a.ID))
	assert.Equal(t, 8, stockOf(t, db, b.ID))

	require.NoError(t, svc.Delete(p.ID, testActor))
	assert.Equal(t, 10, stockOf(t, db, a.ID))
	assert.Equal(t, 0, stockOf(t, db, b.ID))

	_, err = svc.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestDeletePurchaseRejectsNegativeStock(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	c := createItem(t, db, "Oil", 0, "4")

	p, err := svc.Create(&PurchaseInput{ItemID: c.ID, Quantity: intPtr(3)}, testActor)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Item{}).Where("id = ?", c.ID).Update("quantity", 1).Error)

	err = svc.Delete(p.ID, testActor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeStock))
	assert.Equal(t, 1, stockOf(t, db, c.ID))

	kept, err := svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, kept.Quantity)
}

func TestUpdatePurchaseRejectsUncoveredDecrease(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	item := createItem(t, db, "Flour", 0, "1")

	p, err := svc.Create(&PurchaseInput{ItemID: item.ID, Quantity: intPtr(6)}, testActor)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Item{}).Where("id = ?", item.ID).Update("quantity", 2).Error)

	_, err = svc.Update(p.ID, &PurchaseInput{ItemID: item.ID, Quantity: intPtr(1)}, testActor)
	assert.ErrorIs(t, err, ErrNegativeStock)
	assert.Equal(t, 2, stockOf(t, db, item.ID))

	_, err = svc.Update(p.ID, &PurchaseInput{ItemID: item.ID, Quantity: intPtr(5)}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 1, stockOf(t, db, item.ID))
}

func TestReassignPurchaseRollsBackWhenOldItemShort(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	a := createItem(t, db, "Sugar", 0, "1")
	b := createItem(t, db, "Salt", 4, "1")

	p, err := svc.Create(&PurchaseInput{ItemID: a.ID, Quantity: intPtr(5)}, testActor)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Item{}).Where("id = ?", a.ID).Update("quantity", 3).Error)

	_, err = svc.Update(p.ID, &PurchaseInput{ItemID: b.ID, Quantity: intPtr(5)}, testActor)
	assert.ErrorIs(t, err, ErrNegativeStock)
	assert.Equal(t, 3, stockOf(t, db, a.ID))
	assert.Equal(t, 4, stockOf(t, db, b.ID))

	kept, err := svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, kept.ItemID)
}

func TestCreatePurchaseDefaultsAndValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	item := createItem(t, db, "Tea", 2, "1")

	p, err := svc.Create(&PurchaseInput{ItemID: item.ID}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.True(t, p.TotalValue.IsZero())
	assert.Equal(t, model.DeliveryPending, p.DeliveryStatus)
	assert.Nil(t, p.DeliveryDate)
	assert.Equal(t, 2, stockOf(t, db, item.ID))

	_, err = svc.Create(&PurchaseInput{ItemID: uuid.New(), Quantity: intPtr(1)}, testActor)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.Create(&PurchaseInput{ItemID: item.ID, Quantity: intPtr(-1)}, testActor)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(&PurchaseInput{ItemID: item.ID, Price: decPtr("-2")}, testActor)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(&PurchaseInput{Quantity: intPtr(1)}, testActor)
	assert.ErrorIs(t, err, ErrValidation)

	missingVendor := uuid.New()
	_, err = svc.Create(&PurchaseInput{ItemID: item.ID, VendorID: &missingVendor}, testActor)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestMarkDeliveredStampsDateWithoutMovingStock(t *testing.T) {
	db := testutil.NewDB(t)
	ledger := NewInventoryLedger(repository.NewItemRepo(db))
	svc := &purchaseService{
		purchaseRepo: repository.NewPurchaseRepo(db),
		vendorRepo:   repository.NewVendorRepo(db),
		ledger:       ledger,
		db:           db,
		now:          func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) },
	}
	item := createItem(t, db, "Milk", 0, "1")

	p, err := svc.Create(&PurchaseInput{ItemID: item.ID, Quantity: intPtr(4)}, testActor)
	require.NoError(t, err)

	delivered, err := svc.MarkDelivered(p.ID, testActor)
	require.NoError(t, err)
	assert.Equal(t, model.DeliverySuccessful, delivered.DeliveryStatus)
	require.NotNil(t, delivered.DeliveryDate)
	assert.True(t, delivered.DeliveryDate.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, stockOf(t, db, item.ID))

	_, err = svc.MarkDelivered(uuid.New(), testActor)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestConcurrentPurchasesSumExactly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newPurchaseService(db)
	item := createItem(t, db, "Soap", 0, "1")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			_, err := svc.Create(&PurchaseInput{ItemID: item.ID, Quantity: intPtr(qty)}, testActor)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, workers*(workers+1)/2, stockOf(t, db, item.ID))
}
