package repository

import (
	"fmt"
	"time"

	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DashboardRepository runs the read-only aggregate queries behind the
// dashboard. Sales queries take the resolved finance schema.
type DashboardRepository interface {
	CountSales() (int64, error)
	Revenue(s finance.Schema) (decimal.Decimal, error)
	SalesByMonth(s finance.Schema) ([]MonthlySales, error)
	RecentSales(s finance.Schema, limit int) ([]RecentSale, error)
	TopItems(s finance.Schema, limit int, paidOnly bool) ([]TopItem, error)

	CountItems() (int64, error)
	LowStock(threshold int) ([]model.Item, error)
	InventoryValue(s finance.Schema) (decimal.Decimal, error)
	PurchaseCost() (decimal.Decimal, error)

	CountDeliveries() (int64, error)
	CountDeliveriesByStatus(delivered bool) (int64, error)
	DeliveriesByMonth() ([]MonthlyCount, error)
	RecentDeliveries(limit int) ([]model.Delivery, error)
}

// MonthlySales is one bucket of the monthly revenue series.
type MonthlySales struct {
	Month   string
	Revenue decimal.Decimal
	Count   int64
}

type MonthlyCount struct {
	Month string
	Count int64
}

type TopItem struct {
	ItemID   uuid.UUID `gorm:"column:item_id"`
	Name     string    `gorm:"column:name"`
	TotalQty int64     `gorm:"column:total_qty"`
}

type RecentSale struct {
	ID            uuid.UUID       `gorm:"column:id"`
	DateAdded     time.Time       `gorm:"column:date_added"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total"`
	Paid          decimal.Decimal `gorm:"column:paid"`
	CustomerName  string          `gorm:"column:customer_name"`
	CustomerPhone string          `gorm:"column:customer_phone"`
}

type sumRow struct {
	Total decimal.Decimal `gorm:"column:total"`
}

type dashboardRepo struct {
	db          *gorm.DB
	customers   string
	saleDetails string
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{
		db:          db,
		customers:   tableName(db, &model.Customer{}, "customers"),
		saleDetails: tableName(db, &model.SaleDetail{}, "sale_details"),
	}
}

// tableName asks gorm's naming strategy for the model's table.
func tableName(db *gorm.DB, value interface{}, fallback string) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(value); err != nil || stmt.Schema == nil {
		return fallback
	}
	return stmt.Schema.Table
}

// monthExpr truncates a timestamp column to its YYYY-MM label.
func monthExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
	default:
		return fmt.Sprintf("to_char(date_trunc('month', %s), 'YYYY-MM')", column)
	}
}

func (r *dashboardRepo) CountSales() (int64, error) {
	var n int64
	err := r.db.Model(&model.Sale{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) Revenue(s finance.Schema) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.Table(s.SalesTable).
		Select("COALESCE(SUM(?), 0) AS total", s.RevenueColumn()).
		Where(clause.Eq{Column: clause.Column{Table: s.SalesTable, Name: "deleted_at"}, Value: nil}).
		Scopes(s.RevenueScope).
		Scan(&row).Error
	return row.Total, err
}

// SalesByMonth counts every live sale per month. Revenue per month follows
// the revenue rule, so a month of unpaid sales still appears with zero.
func (r *dashboardRepo) SalesByMonth(s finance.Schema) ([]MonthlySales, error) {
	month := monthExpr(r.db, s.SalesTable+".date_added")
	live := clause.Eq{Column: clause.Column{Table: s.SalesTable, Name: "deleted_at"}, Value: nil}

	counts, err := countByMonth(r.db.Table(s.SalesTable).Where(live), month)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Table(s.SalesTable).
		Select(month+" AS month, COALESCE(SUM(?), 0) AS revenue", s.RevenueColumn()).
		Where(live).
		Scopes(s.RevenueScope).
		Group(month).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenue := make(map[string]decimal.Decimal, len(counts))
	for rows.Next() {
		var label string
		var total decimal.Decimal
		if err := rows.Scan(&label, &total); err != nil {
			return nil, err
		}
		revenue[label] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]MonthlySales, 0, len(counts))
	for _, c := range counts {
		results = append(results, MonthlySales{Month: c.Month, Revenue: revenue[c.Month], Count: c.Count})
	}
	return results, nil
}

func (r *dashboardRepo) RecentSales(s finance.Schema, limit int) ([]RecentSale, error) {
	sales := s.SalesTable
	paidSelect := "0"
	var vars []interface{}
	if col, ok := s.PaymentColumn(); ok {
		paidSelect = "?"
		vars = append(vars, col)
	}

	var recent []RecentSale
	err := r.db.Table(sales).
		Select(
			fmt.Sprintf("%[1]s.id AS id, %[1]s.date_added AS date_added, %[1]s.grand_total AS grand_total, ", sales)+
				paidSelect+fmt.Sprintf(" AS paid, COALESCE(%[1]s.name, '') AS customer_name, ", r.customers)+
				fmt.Sprintf("COALESCE(%[1]s.phone_number, '') AS customer_phone", r.customers),
			vars...,
		).
		Joins(fmt.Sprintf("LEFT JOIN %[1]s ON %[1]s.id = %[2]s.customer_id", r.customers, sales)).
		Where(sales + ".deleted_at IS NULL").
		Order(sales + ".date_added DESC").
		Limit(limit).
		Scan(&recent).Error
	if err != nil || len(recent) == 0 {
		return recent, err
	}
	if s.PaymentField != "" {
		return recent, nil
	}

	// Without a payment column a sale counts as fully paid when the paid
	// classification selects it.
	if s.ClassifiesAllSales() {
		for i := range recent {
			recent[i].Paid = recent[i].GrandTotal
		}
		return recent, nil
	}
	ids := make([]uuid.UUID, len(recent))
	for i := range recent {
		ids[i] = recent[i].ID
	}
	var paidIDs []uuid.UUID
	err = r.db.Table(sales).
		Scopes(s.PaidScope).
		Where(sales+".id IN ?", ids).
		Pluck(sales+".id", &paidIDs).Error
	if err != nil {
		return nil, err
	}
	paid := make(map[uuid.UUID]bool, len(paidIDs))
	for _, id := range paidIDs {
		paid[id] = true
	}
	for i := range recent {
		if paid[recent[i].ID] {
			recent[i].Paid = recent[i].GrandTotal
		}
	}
	return recent, nil
}

func (r *dashboardRepo) TopItems(s finance.Schema, limit int, paidOnly bool) ([]TopItem, error) {
	sales, items, details := s.SalesTable, s.ItemsTable, r.saleDetails
	query := r.db.Table(details).
		Select(fmt.Sprintf("%[1]s.item_id AS item_id, %[2]s.name AS name, COALESCE(SUM(%[1]s.quantity), 0) AS total_qty", details, items)).
		Joins(fmt.Sprintf("JOIN %[1]s ON %[1]s.id = %[2]s.sale_id", sales, details)).
		Joins(fmt.Sprintf("JOIN %[1]s ON %[1]s.id = %[2]s.item_id", items, details)).
		Where(fmt.Sprintf("%s.deleted_at IS NULL AND %s.deleted_at IS NULL", details, sales))
	if paidOnly {
		query = query.Scopes(s.PaidScope)
	}

	var top []TopItem
	err := query.
		Group(fmt.Sprintf("%s.item_id, %s.name", details, items)).
		Order("total_qty DESC, " + items + ".name ASC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

func (r *dashboardRepo) CountItems() (int64, error) {
	var n int64
	err := r.db.Model(&model.Item{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) LowStock(threshold int) ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("quantity <= ?", threshold).Order("quantity ASC, name ASC").Find(&items).Error
	return items, err
}

// InventoryValue sums quantity × unit cost over live items. Zero when the
// items table has no cost column at all.
func (r *dashboardRepo) InventoryValue(s finance.Schema) (decimal.Decimal, error) {
	cost, ok := s.CostColumn()
	if !ok {
		return decimal.Zero, nil
	}
	var row sumRow
	err := r.db.Table(s.ItemsTable).
		Select("COALESCE(SUM(? * ?), 0) AS total", clause.Column{Table: s.ItemsTable, Name: "quantity"}, cost).
		Where(clause.Eq{Column: clause.Column{Table: s.ItemsTable, Name: "deleted_at"}, Value: nil}).
		Scan(&row).Error
	return row.Total, err
}

func (r *dashboardRepo) PurchaseCost() (decimal.Decimal, error) {
	var row sumRow
	err := r.db.Model(&model.Purchase{}).Select("COALESCE(SUM(total_value), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *dashboardRepo) CountDeliveries() (int64, error) {
	var n int64
	err := r.db.Model(&model.Delivery{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) CountDeliveriesByStatus(delivered bool) (int64, error) {
	var n int64
	err := r.db.Model(&model.Delivery{}).Where("is_delivered = ?", delivered).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) DeliveriesByMonth() ([]MonthlyCount, error) {
	return countByMonth(r.db.Model(&model.Delivery{}), monthExpr(r.db, "deliveries.date"))
}

// countByMonth groups the rows of query by the month expression, ascending.
func countByMonth(query *gorm.DB, month string) ([]MonthlyCount, error) {
	rows, err := query.
		Select(month + " AS month, COUNT(*) AS row_count").
		Group(month).
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MonthlyCount
	for rows.Next() {
		var data MonthlyCount
		if err := rows.Scan(&data.Month, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *dashboardRepo) RecentDeliveries(limit int) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Order("deliveries.date DESC").Limit(limit).Find(&deliveries).Error
	return deliveries, err
}
