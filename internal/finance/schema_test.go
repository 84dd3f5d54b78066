package finance_test

import (
	"testing"

	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewSchemaPaymentAndRuleSelection(t *testing.T) {
	tests := []struct {
		name        string
		salesCols   []string
		wantPayment string
		wantRule    string
		wantRevenue string
	}{
		{"amount_paid covers total", []string{"id", "grand_total", "amount_paid"}, "amount_paid", "payment_covers_total", "amount_paid"},
		{"paid flag wins over payment", []string{"grand_total", "paid_amount", "is_paid"}, "paid_amount", "is_paid", "paid_amount"},
		{"fully paid flag", []string{"grand_total", "is_fully_paid", "balance_due"}, "", "is_fully_paid", "grand_total"},
		{"status column", []string{"grand_total", "Payment_Status"}, "", "payment_status", "grand_total"},
		{"balance due", []string{"grand_total", "balance_due"}, "", "balance_due", "grand_total"},
		{"nothing to go on", []string{"grand_total"}, "", "all_sales", "grand_total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := finance.NewSchema("sales", tt.salesCols, "items", []string{"quantity", "price"}, finance.Overrides{})
			assert.Equal(t, tt.wantPayment, s.PaymentField)
			assert.Equal(t, tt.wantRule, s.PaidRule)
			assert.Equal(t, tt.wantRevenue, s.RevenueColumn().Name)
			assert.Equal(t, tt.wantRule == "all_sales", s.ClassifiesAllSales())
		})
	}
}

func TestNewSchemaCostField(t *testing.T) {
	sales := []string{"grand_total"}

	s := finance.NewSchema("sales", sales, "items", []string{"quantity", "price", "cost", "unit_cost"}, finance.Overrides{})
	assert.Equal(t, "cost", s.CostField)

	s = finance.NewSchema("sales", sales, "items", []string{"quantity", "price", "cost", "unit_cost"}, finance.Overrides{CostField: "unit_cost"})
	assert.Equal(t, "unit_cost", s.CostField)

	s = finance.NewSchema("sales", sales, "items", []string{"quantity", "price"}, finance.Overrides{CostField: "landed_cost"})
	assert.Equal(t, "price", s.CostField, "an override naming a missing column is ignored")

	s = finance.NewSchema("sales", sales, "items", []string{"quantity"}, finance.Overrides{})
	_, ok := s.CostColumn()
	assert.False(t, ok)
}

func TestNewSchemaPaymentOverride(t *testing.T) {
	cols := []string{"grand_total", "amount_paid", "paid_amount"}

	s := finance.NewSchema("sales", cols, "items", nil, finance.Overrides{PaymentField: "paid_amount"})
	assert.Equal(t, "paid_amount", s.PaymentField)

	s = finance.NewSchema("sales", cols, "items", nil, finance.Overrides{PaymentField: "cash"})
	assert.Equal(t, "amount_paid", s.PaymentField)

	col, ok := s.PaymentColumn()
	require.True(t, ok)
	assert.Equal(t, "sales", col.Table)
}

func TestResolveReadsLiveColumns(t *testing.T) {
	db := testutil.NewDB(t)

	s, err := finance.Resolve(db, "sales", "items", finance.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "amount_paid", s.PaymentField)
	assert.Equal(t, "payment_covers_total", s.PaidRule)
	assert.Equal(t, "price", s.CostField)

	require.NoError(t, db.Exec("ALTER TABLE items ADD COLUMN cost_price decimal(10,2)").Error)
	require.NoError(t, db.Exec("ALTER TABLE sales ADD COLUMN is_paid boolean").Error)

	s, err = finance.Resolve(db, "sales", "items", finance.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "cost_price", s.CostField)
	assert.Equal(t, "is_paid", s.PaidRule)
}

func TestPaidScopeQualifiesColumns(t *testing.T) {
	db := testutil.NewDB(t)
	s := finance.NewSchema("sales", []string{"grand_total", "payment_status"}, "items", nil, finance.Overrides{})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]interface{}
		return tx.Table("sales").Scopes(s.PaidScope).Find(&rows)
	})
	assert.Contains(t, sql, "LOWER(`sales`.`payment_status`) IN")

	all := finance.NewSchema("sales", []string{"grand_total"}, "items", nil, finance.Overrides{})
	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]interface{}
		return tx.Table("sales").Scopes(all.PaidScope).Find(&rows)
	})
	assert.NotContains(t, sql, "WHERE")
}
