package service

import (
	"fmt"
	"time"

	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	topItemsLimit = 10
	recentLimit   = 10
)

type DashboardService interface {
	GetSummary() *Summary
	InventoryValue() (decimal.Decimal, error)
	Schema() finance.Schema
}

// Summary is recomputed on every request. A failed aggregate is left at its
// zero value; the rest still renders.
type Summary struct {
	Currency          string `json:"currency"`
	LowStockThreshold int    `json:"low_stock_threshold"`

	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	PaymentField string          `json:"payment_field,omitempty"`
	PaidRule     string          `json:"paid_rule"`
	SalesByMonth SalesSeries     `json:"sales_by_month"`
	TopItems     []TopItem       `json:"top_items"`
	RecentSales  []RecentSale    `json:"recent_sales"`

	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	LowStockItems  []StockLevel    `json:"low_stock_items"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`

	DeliveriesTotal    int64            `json:"deliveries_total"`
	DeliveriesByStatus map[string]int64 `json:"deliveries_by_status"`
	DeliveriesByMonth  CountSeries      `json:"deliveries_by_month"`
	RecentDeliveries   []RecentDelivery `json:"recent_deliveries"`

	ProfilesCount int64 `json:"profiles_count"`
}

// SalesSeries holds parallel arrays, one entry per calendar month ascending.
type SalesSeries struct {
	Labels  []string          `json:"labels"`
	Revenue []decimal.Decimal `json:"revenue"`
	Counts  []int64           `json:"counts"`
}

type CountSeries struct {
	Labels []string `json:"labels"`
	Counts []int64  `json:"counts"`
}

type TopItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Qty  int64     `json:"qty"`
}

type StockLevel struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

type RecentSale struct {
	ID         uuid.UUID       `json:"id"`
	Label      string          `json:"customer_label"`
	Date       time.Time       `json:"date"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Paid       decimal.Decimal `json:"paid"`
	BalanceDue decimal.Decimal `json:"balance_due"`
}

type RecentDelivery struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"customer_label"`
	Date        time.Time `json:"date"`
	StatusLabel string    `json:"status_label"`
	Location    string    `json:"location"`
	PhoneNumber string    `json:"phone_number"`
}

type dashboardService struct {
	dashRepo  repository.DashboardRepository
	userRepo  repository.UserRepository
	schema    finance.Schema
	threshold int
	currency  string
}

func NewDashboardService(dRepo repository.DashboardRepository, uRepo repository.UserRepository, schema finance.Schema, lowStockThreshold int, currency string) DashboardService {
	return &dashboardService{
		dashRepo:  dRepo,
		userRepo:  uRepo,
		schema:    schema,
		threshold: lowStockThreshold,
		currency:  currency,
	}
}

func (s *dashboardService) Schema() finance.Schema {
	return s.schema
}

func (s *dashboardService) InventoryValue() (decimal.Decimal, error) {
	return s.dashRepo.InventoryValue(s.schema)
}

func (s *dashboardService) GetSummary() *Summary {
	sum := &Summary{
		Currency:          s.currency,
		LowStockThreshold: s.threshold,
		PaymentField:      s.schema.PaymentField,
		PaidRule:          s.schema.PaidRule,
		SalesByMonth:      SalesSeries{Labels: []string{}, Revenue: []decimal.Decimal{}, Counts: []int64{}},
		TopItems:          []TopItem{},
		RecentSales:       []RecentSale{},
		LowStockItems:     []StockLevel{},
		DeliveriesByStatus: map[string]int64{
			"Delivered": 0,
			"Pending":   0,
		},
		DeliveriesByMonth: CountSeries{Labels: []string{}, Counts: []int64{}},
		RecentDeliveries:  []RecentDelivery{},
	}

	isolate("TotalSales", func() (err error) {
		sum.TotalSales, err = s.dashRepo.CountSales()
		return err
	})
	isolate("TotalRevenue", func() (err error) {
		sum.TotalRevenue, err = s.dashRepo.Revenue(s.schema)
		return err
	})
	isolate("SalesByMonth", func() error {
		rows, err := s.dashRepo.SalesByMonth(s.schema)
		if err != nil {
			return err
		}
		series := SalesSeries{
			Labels:  make([]string, 0, len(rows)),
			Revenue: make([]decimal.Decimal, 0, len(rows)),
			Counts:  make([]int64, 0, len(rows)),
		}
		for _, r := range rows {
			series.Labels = append(series.Labels, r.Month)
			series.Revenue = append(series.Revenue, r.Revenue)
			series.Counts = append(series.Counts, r.Count)
		}
		sum.SalesByMonth = series
		return nil
	})
	isolate("TopItems", func() error {
		items, err := s.topItems()
		if err != nil {
			return err
		}
		out := make([]TopItem, 0, len(items))
		for _, it := range items {
			out = append(out, TopItem{ID: it.ItemID, Name: it.Name, Qty: it.TotalQty})
		}
		sum.TopItems = out
		return nil
	})
	isolate("RecentSales", func() error {
		rows, err := s.dashRepo.RecentSales(s.schema, recentLimit)
		if err != nil {
			return err
		}
		out := make([]RecentSale, 0, len(rows))
		for _, r := range rows {
			out = append(out, RecentSale{
				ID:         r.ID,
				Label:      customerLabel(r.CustomerName, r.CustomerPhone, "Sale", r.ID),
				Date:       r.DateAdded,
				GrandTotal: r.GrandTotal,
				Paid:       r.Paid,
				BalanceDue: r.GrandTotal.Sub(r.Paid),
			})
		}
		sum.RecentSales = out
		return nil
	})

	isolate("TotalProducts", func() (err error) {
		sum.TotalProducts, err = s.dashRepo.CountItems()
		return err
	})
	isolate("LowStock", func() error {
		items, err := s.dashRepo.LowStock(s.threshold)
		if err != nil {
			return err
		}
		out := make([]StockLevel, 0, len(items))
		for _, it := range items {
			out = append(out, StockLevel{ID: it.ID, Name: it.Name, Quantity: it.Quantity})
		}
		sum.LowStockItems = out
		sum.LowStockCount = len(out)
		return nil
	})
	isolate("InventoryValue", func() (err error) {
		sum.InventoryValue, err = s.dashRepo.InventoryValue(s.schema)
		return err
	})
	isolate("PurchaseCost", func() (err error) {
		sum.PurchaseCost, err = s.dashRepo.PurchaseCost()
		return err
	})

	isolate("DeliveriesTotal", func() (err error) {
		sum.DeliveriesTotal, err = s.dashRepo.CountDeliveries()
		return err
	})
	isolate("DeliveriesByStatus", func() error {
		delivered, err := s.dashRepo.CountDeliveriesByStatus(true)
		if err != nil {
			return err
		}
		pending, err := s.dashRepo.CountDeliveriesByStatus(false)
		if err != nil {
			return err
		}
		sum.DeliveriesByStatus["Delivered"] = delivered
		sum.DeliveriesByStatus["Pending"] = pending
		return nil
	})
	isolate("DeliveriesByMonth", func() error {
		rows, err := s.dashRepo.DeliveriesByMonth()
		if err != nil {
			return err
		}
		series := CountSeries{Labels: make([]string, 0, len(rows)), Counts: make([]int64, 0, len(rows))}
		for _, r := range rows {
			series.Labels = append(series.Labels, r.Month)
			series.Counts = append(series.Counts, r.Count)
		}
		sum.DeliveriesByMonth = series
		return nil
	})
	isolate("RecentDeliveries", func() error {
		rows, err := s.dashRepo.RecentDeliveries(recentLimit)
		if err != nil {
			return err
		}
		out := make([]RecentDelivery, 0, len(rows))
		for i := range rows {
			d := &rows[i]
			out = append(out, RecentDelivery{
				ID:          d.ID,
				Label:       customerLabel(d.CustomerName, d.PhoneNumber, "Delivery", d.ID),
				Date:        d.Date,
				StatusLabel: d.StatusLabel(),
				Location:    d.Location,
				PhoneNumber: d.PhoneNumber,
			})
		}
		sum.RecentDeliveries = out
		return nil
	})

	isolate("ProfilesCount", func() (err error) {
		sum.ProfilesCount, err = s.userRepo.CountActive()
		return err
	})

	return sum
}

// topItems ranks over paid sales, falling back to every sale when the paid
// filter cannot run against this database.
func (s *dashboardService) topItems() ([]repository.TopItem, error) {
	if s.schema.ClassifiesAllSales() {
		return s.dashRepo.TopItems(s.schema, topItemsLimit, false)
	}
	items, err := s.dashRepo.TopItems(s.schema, topItemsLimit, true)
	if err == nil {
		return items, nil
	}
	logger.LogError("dashboard", "topItems", "paid filter failed, ranking all sales", s.schema.PaidRule, err)
	return s.dashRepo.TopItems(s.schema, topItemsLimit, false)
}

// isolate runs one aggregate. Errors and panics are logged and swallowed.
func isolate(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogError("dashboard", name, "aggregate panicked", nil, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(); err != nil {
		logger.LogError("dashboard", name, "aggregate failed", nil, err)
	}
}

func customerLabel(name, phone, kind string, id uuid.UUID) string {
	switch {
	case name != "":
		return name
	case phone != "":
		return phone
	default:
		return fmt.Sprintf("%s #%s", kind, model.ShortID(id))
	}
}
