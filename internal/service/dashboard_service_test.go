package service

import (
	"errors"
	"testing"
	"time"

	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func createSale(t *testing.T, db *gorm.DB, customerID uuid.UUID, at time.Time, grand, paid string, lines ...model.SaleDetail) *model.Sale {
	t.Helper()
	sale := &model.Sale{
		DateAdded:  at,
		CustomerID: customerID,
		SubTotal:   dec(grand),
		GrandTotal: dec(grand),
		AmountPaid: dec(paid),
		Details:    lines,
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func line(item *model.Item, qty int) model.SaleDetail {
	return model.SaleDetail{
		ItemID:      item.ID,
		Price:       item.Price,
		Quantity:    qty,
		TotalDetail: item.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func newDashboard(t *testing.T, db *gorm.DB) DashboardService {
	t.Helper()
	schema, err := finance.Resolve(db, "sales", "items", finance.Overrides{})
	require.NoError(t, err)
	return NewDashboardService(repository.NewDashboardRepo(db), repository.NewUserRepo(db), schema, 5, "USD")
}

func TestDashboardSummaryAggregates(t *testing.T) {
	db := testutil.NewDB(t)
	rice := createItem(t, db, "Rice", 10, "2")
	beans := createItem(t, db, "Beans", 3, "5")
	pepper := createItem(t, db, "Pepper", 1, "4")

	ada := &model.Customer{Name: "Ada", PhoneNumber: "555-1"}
	require.NoError(t, db.Create(ada).Error)
	walkIn := &model.Customer{PhoneNumber: "555-2"}
	require.NoError(t, db.Create(walkIn).Error)

	createSale(t, db, ada.ID, day(2024, 1, 10), "10", "10", line(rice, 5))
	createSale(t, db, walkIn.ID, day(2024, 1, 20), "8", "3", line(beans, 9))
	anonymous := createSale(t, db, uuid.New(), day(2024, 3, 5), "6", "6", line(rice, 2), line(pepper, 1))

	require.NoError(t, db.Create(&model.Purchase{
		ItemID: rice.ID, OrderDate: day(2024, 1, 1), Quantity: 3, Price: dec("4"), TotalValue: dec("12"),
	}).Error)

	require.NoError(t, db.Create(&model.Delivery{CustomerName: "Bo", Date: day(2024, 2, 1), IsDelivered: true}).Error)
	unnamed := &model.Delivery{Date: day(2024, 2, 14)}
	require.NoError(t, db.Create(unnamed).Error)

	sum := newDashboard(t, db).GetSummary()

	assert.Equal(t, "USD", sum.Currency)
	assert.Equal(t, "amount_paid", sum.PaymentField)
	assert.Equal(t, "payment_covers_total", sum.PaidRule)

	assert.Equal(t, int64(3), sum.TotalSales)
	assertDecimal(t, "19", sum.TotalRevenue)

	assert.Equal(t, []string{"2024-01", "2024-03"}, sum.SalesByMonth.Labels)
	assert.Equal(t, []int64{2, 1}, sum.SalesByMonth.Counts)
	require.Len(t, sum.SalesByMonth.Revenue, 2)
	assertDecimal(t, "13", sum.SalesByMonth.Revenue[0])
	assertDecimal(t, "6", sum.SalesByMonth.Revenue[1])

	require.Len(t, sum.TopItems, 2, "the partly paid sale is not ranked")
	assert.Equal(t, "Rice", sum.TopItems[0].Name)
	assert.Equal(t, int64(7), sum.TopItems[0].Qty)
	assert.Equal(t, "Pepper", sum.TopItems[1].Name)

	require.Len(t, sum.RecentSales, 3)
	assert.Equal(t, "Sale #"+model.ShortID(anonymous.ID), sum.RecentSales[0].Label)
	assert.Equal(t, "555-2", sum.RecentSales[1].Label)
	assertDecimal(t, "5", sum.RecentSales[1].BalanceDue)
	assert.Equal(t, "Ada", sum.RecentSales[2].Label)
	assertDecimal(t, "0", sum.RecentSales[2].BalanceDue)

	assert.Equal(t, int64(3), sum.TotalProducts)
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, "Pepper", sum.LowStockItems[0].Name)
	assertDecimal(t, "39", sum.InventoryValue)
	assertDecimal(t, "12", sum.PurchaseCost)

	assert.Equal(t, int64(2), sum.DeliveriesTotal)
	assert.Equal(t, map[string]int64{"Delivered": 1, "Pending": 1}, sum.DeliveriesByStatus)
	assert.Equal(t, []string{"2024-02"}, sum.DeliveriesByMonth.Labels)
	assert.Equal(t, []int64{2}, sum.DeliveriesByMonth.Counts)
	require.Len(t, sum.RecentDeliveries, 2)
	assert.Equal(t, "Delivery #"+model.ShortID(unnamed.ID), sum.RecentDeliveries[0].Label)
	assert.Equal(t, "Pending", sum.RecentDeliveries[0].StatusLabel)
	assert.Equal(t, "Bo", sum.RecentDeliveries[1].Label)

	assert.Equal(t, int64(0), sum.ProfilesCount)
}

func TestDashboardWithoutPaymentColumn(t *testing.T) {
	db := testutil.NewDB(t)
	item := createItem(t, db, "Rice", 1, "2")
	customer := &model.Customer{Name: "Ada"}
	require.NoError(t, db.Create(customer).Error)

	createSale(t, db, customer.ID, day(2024, 4, 2), "10", "0", line(item, 1))
	gone := createSale(t, db, customer.ID, day(2024, 4, 3), "50", "0", line(item, 4))
	require.NoError(t, db.Delete(&model.Sale{}, "id = ?", gone.ID).Error)

	schema := finance.NewSchema("sales", []string{"id", "grand_total", "date_added"}, "items", []string{"quantity", "price"}, finance.Overrides{})
	require.True(t, schema.ClassifiesAllSales())
	svc := NewDashboardService(repository.NewDashboardRepo(db), repository.NewUserRepo(db), schema, 5, "USD")

	sum := svc.GetSummary()
	assert.Equal(t, "all_sales", sum.PaidRule)
	assert.Equal(t, int64(1), sum.TotalSales)
	assertDecimal(t, "10", sum.TotalRevenue)
	require.Len(t, sum.RecentSales, 1)
	assertDecimal(t, "10", sum.RecentSales[0].Paid)
	assertDecimal(t, "0", sum.RecentSales[0].BalanceDue)
	require.Len(t, sum.TopItems, 1)
	assert.Equal(t, int64(1), sum.TopItems[0].Qty)
}

func TestSalesByMonthCountsUnpaidSales(t *testing.T) {
	db := testutil.NewDB(t)
	item := createItem(t, db, "Rice", 10, "2")
	customer := &model.Customer{Name: "Ada"}
	require.NoError(t, db.Create(customer).Error)

	require.NoError(t, db.Exec("ALTER TABLE sales ADD COLUMN is_paid boolean DEFAULT 0").Error)
	paid := createSale(t, db, customer.ID, day(2024, 1, 5), "10", "0", line(item, 1))
	createSale(t, db, customer.ID, day(2024, 1, 9), "30", "0", line(item, 3))
	createSale(t, db, customer.ID, day(2024, 2, 1), "7", "0", line(item, 1))
	require.NoError(t, db.Exec("UPDATE sales SET is_paid = 1 WHERE id = ?", paid.ID).Error)

	schema := finance.NewSchema("sales", []string{"id", "grand_total", "date_added", "is_paid"}, "items", []string{"quantity", "price"}, finance.Overrides{})
	require.Equal(t, "is_paid", schema.PaidRule)
	svc := NewDashboardService(repository.NewDashboardRepo(db), nil, schema, 5, "USD")

	sum := svc.GetSummary()
	assert.Equal(t, int64(3), sum.TotalSales)
	assertDecimal(t, "10", sum.TotalRevenue)
	assert.Equal(t, []string{"2024-01", "2024-02"}, sum.SalesByMonth.Labels)
	assert.Equal(t, []int64{2, 1}, sum.SalesByMonth.Counts)
	require.Len(t, sum.SalesByMonth.Revenue, 2)
	assertDecimal(t, "10", sum.SalesByMonth.Revenue[0])
	assertDecimal(t, "0", sum.SalesByMonth.Revenue[1])
}

func TestDashboardReadsConfiguredSalesTable(t *testing.T) {
	db := testutil.NewDB(t)
	rice := createItem(t, db, "Rice", 10, "2")
	beans := createItem(t, db, "Beans", 10, "5")
	customer := &model.Customer{Name: "Ada", PhoneNumber: "555-1"}
	require.NoError(t, db.Create(customer).Error)

	createSale(t, db, customer.ID, day(2024, 5, 1), "4", "4", line(rice, 2))
	createSale(t, db, customer.ID, day(2024, 5, 2), "15", "15", line(beans, 3))

	require.NoError(t, db.Exec("ALTER TABLE sales RENAME TO legacy_sales").Error)

	schema, err := finance.Resolve(db, "legacy_sales", "items", finance.Overrides{})
	require.NoError(t, err)
	repo := repository.NewDashboardRepo(db)

	recent, err := repo.RecentSales(schema, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Ada", recent[0].CustomerName)
	assert.Equal(t, "555-1", recent[0].CustomerPhone)
	assertDecimal(t, "15", recent[0].GrandTotal)

	top, err := repo.TopItems(schema, 5, true)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Beans", top[0].Name)
	assert.Equal(t, int64(3), top[0].TotalQty)

	months, err := repo.SalesByMonth(schema)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, int64(2), months[0].Count)
	assertDecimal(t, "19", months[0].Revenue)
}

func TestInventoryValuePrefersCostColumn(t *testing.T) {
	db := testutil.NewDB(t)
	rice := createItem(t, db, "Rice", 10, "2")
	createItem(t, db, "Beans", 4, "5")

	value, err := newDashboard(t, db).InventoryValue()
	require.NoError(t, err)
	assertDecimal(t, "40", value)

	require.NoError(t, db.Exec("ALTER TABLE items ADD COLUMN cost_price decimal(10,2)").Error)
	require.NoError(t, db.Exec("UPDATE items SET cost_price = 1 WHERE id = ?", rice.ID).Error)

	svc := newDashboard(t, db)
	assert.Equal(t, "cost_price", svc.Schema().CostField)
	value, err = svc.InventoryValue()
	require.NoError(t, err)
	assertDecimal(t, "10", value)

	noCost := finance.NewSchema("sales", []string{"grand_total"}, "items", []string{"quantity"}, finance.Overrides{})
	value, err = NewDashboardService(repository.NewDashboardRepo(db), nil, noCost, 5, "USD").InventoryValue()
	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

// brokenDashboardRepo answers two aggregates; everything else hits the nil
// embedded interface and panics.
type brokenDashboardRepo struct {
	repository.DashboardRepository
}

func (brokenDashboardRepo) CountSales() (int64, error) { return 7, nil }

func (brokenDashboardRepo) Revenue(finance.Schema) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("relation does not exist")
}

func (brokenDashboardRepo) CountItems() (int64, error) { return 4, nil }

func TestDashboardIsolatesFailedAggregates(t *testing.T) {
	schema := finance.NewSchema("sales", []string{"grand_total", "amount_paid"}, "items", []string{"quantity", "price"}, finance.Overrides{})
	svc := NewDashboardService(brokenDashboardRepo{}, nil, schema, 5, "USD")

	var sum *Summary
	require.NotPanics(t, func() { sum = svc.GetSummary() })

	assert.Equal(t, int64(7), sum.TotalSales)
	assert.Equal(t, int64(4), sum.TotalProducts)
	assert.True(t, sum.TotalRevenue.IsZero())
	assert.NotNil(t, sum.TopItems)
	assert.Empty(t, sum.TopItems)
	assert.Empty(t, sum.SalesByMonth.Labels)
	assert.Equal(t, map[string]int64{"Delivered": 0, "Pending": 0}, sum.DeliveriesByStatus)
	assert.Equal(t, int64(0), sum.ProfilesCount)
}

func TestCustomerLabel(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	assert.Equal(t, "Ada", customerLabel("Ada", "555", "Sale", id))
	assert.Equal(t, "555", customerLabel("", "555", "Sale", id))
	assert.Equal(t, "Sale #"+model.ShortID(id), customerLabel("", "", "Sale", id))
}
