// Package finance resolves which optional financial columns the database
// carries and turns them into query conditions for the dashboard.
//
// Installations of this system have drifted over time: some sales tables
// record payments as amount_paid, others as paid_amount, some track an
// explicit paid flag or a textual status. Instead of probing per request,
// the layout is captured once at startup in a Schema.
package finance

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentFieldCandidates are tried in order to find the cash-received column.
var PaymentFieldCandidates = []string{"amount_paid", "paid_amount"}

// CostFieldCandidates are tried in order to find an item's unit cost. price
// is the last resort.
var CostFieldCandidates = []string{
	"cost_price", "purchase_price", "cost", "unit_cost", "buy_price", "purchase_cost", "price",
}

// Overrides pin fields from configuration. A pinned field that does not
// exist in the table is ignored.
type Overrides struct {
	PaymentField string
	CostField    string
}

// Schema is the resolved capability descriptor.
type Schema struct {
	SalesTable string
	ItemsTable string

	// PaymentField is empty when sales carry no payment column.
	PaymentField string
	// CostField is empty when items carry no usable cost column.
	CostField string
	// PaidRule names the classification strategy that applied.
	PaidRule string

	paidCond clause.Expression
}

type columnSet map[string]bool

func newColumnSet(cols []string) columnSet {
	set := make(columnSet, len(cols))
	for _, c := range cols {
		set[strings.ToLower(c)] = true
	}
	return set
}

func (s columnSet) has(col string) bool {
	return s[strings.ToLower(col)]
}

func (s columnSet) first(candidates []string) string {
	for _, c := range candidates {
		if s.has(c) {
			return c
		}
	}
	return ""
}

// NewSchema builds a descriptor from known column names.
func NewSchema(salesTable string, salesCols []string, itemsTable string, itemCols []string, ov Overrides) Schema {
	sales := newColumnSet(salesCols)
	items := newColumnSet(itemCols)

	s := Schema{SalesTable: salesTable, ItemsTable: itemsTable}

	if ov.PaymentField != "" && sales.has(ov.PaymentField) {
		s.PaymentField = ov.PaymentField
	} else {
		s.PaymentField = sales.first(PaymentFieldCandidates)
	}

	if ov.CostField != "" && items.has(ov.CostField) {
		s.CostField = ov.CostField
	} else {
		s.CostField = items.first(CostFieldCandidates)
	}

	for _, rule := range PaidRules {
		if cond, ok := rule.Resolve(salesTable, sales, s.PaymentField); ok {
			s.PaidRule = rule.Name()
			s.paidCond = cond
			break
		}
	}
	return s
}

// Resolve reads the live column lists through the gorm migrator.
func Resolve(db *gorm.DB, salesTable, itemsTable string, ov Overrides) (Schema, error) {
	salesCols, err := columnNames(db, salesTable)
	if err != nil {
		return Schema{}, err
	}
	itemCols, err := columnNames(db, itemsTable)
	if err != nil {
		return Schema{}, err
	}
	return NewSchema(salesTable, salesCols, itemsTable, itemCols, ov), nil
}

func columnNames(db *gorm.DB, table string) ([]string, error) {
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(types))
	for _, ct := range types {
		names = append(names, ct.Name())
	}
	return names, nil
}

// ClassifiesAllSales reports that no paid signal exists and every sale counts.
func (s Schema) ClassifiesAllSales() bool {
	return s.paidCond == nil
}

// PaidScope restricts a query joined on the sales table to paid sales.
func (s Schema) PaidScope(db *gorm.DB) *gorm.DB {
	if s.paidCond == nil {
		return db
	}
	return db.Where(s.paidCond)
}

// RevenueColumn is the column summed for revenue: the payment column when
// present, grand_total otherwise.
func (s Schema) RevenueColumn() clause.Column {
	if s.PaymentField != "" {
		return clause.Column{Table: s.SalesTable, Name: s.PaymentField}
	}
	return clause.Column{Table: s.SalesTable, Name: "grand_total"}
}

// RevenueScope restricts the sales counted as revenue. With a payment column
// every sale counts, so partial payments are real cash received.
func (s Schema) RevenueScope(db *gorm.DB) *gorm.DB {
	if s.PaymentField != "" {
		return db
	}
	return s.PaidScope(db)
}

// CostColumn returns the item unit cost column and false when there is none.
func (s Schema) CostColumn() (clause.Column, bool) {
	if s.CostField == "" {
		return clause.Column{}, false
	}
	return clause.Column{Table: s.ItemsTable, Name: s.CostField}, true
}

// PaymentColumn returns the payment column and false when there is none.
func (s Schema) PaymentColumn() (clause.Column, bool) {
	if s.PaymentField == "" {
		return clause.Column{}, false
	}
	return clause.Column{Table: s.SalesTable, Name: s.PaymentField}, true
}
