package finance

import (
	"gorm.io/gorm/clause"
)

// PaidRule is one link of the paid-sale classification chain.
type PaidRule interface {
	Name() string
	// Resolve returns the condition selecting paid sales, or false when the
	// rule cannot apply to the given columns. A nil condition with true
	// means "every sale".
	Resolve(table string, cols columnSet, paymentField string) (clause.Expression, bool)
}

// PaidRules is the classification chain, highest priority first.
var PaidRules = []PaidRule{
	flagRule{column: "is_paid"},
	flagRule{column: "is_fully_paid"},
	statusRule{column: "payment_status", values: []string{"paid", "completed"}},
	coversTotalRule{},
	balanceRule{column: "balance_due"},
	allSalesRule{},
}

type flagRule struct {
	column string
}

func (r flagRule) Name() string { return r.column }

func (r flagRule) Resolve(table string, cols columnSet, _ string) (clause.Expression, bool) {
	if !cols.has(r.column) {
		return nil, false
	}
	return clause.Eq{Column: clause.Column{Table: table, Name: r.column}, Value: true}, true
}

type statusRule struct {
	column string
	values []string
}

func (r statusRule) Name() string { return r.column }

func (r statusRule) Resolve(table string, cols columnSet, _ string) (clause.Expression, bool) {
	if !cols.has(r.column) {
		return nil, false
	}
	return clause.Expr{
		SQL:  "LOWER(?) IN ?",
		Vars: []interface{}{clause.Column{Table: table, Name: r.column}, r.values},
	}, true
}

// coversTotalRule treats a sale as paid when the recorded payment covers the
// grand total.
type coversTotalRule struct{}

func (coversTotalRule) Name() string { return "payment_covers_total" }

func (coversTotalRule) Resolve(table string, cols columnSet, paymentField string) (clause.Expression, bool) {
	if paymentField == "" || !cols.has("grand_total") {
		return nil, false
	}
	return clause.Expr{
		SQL: "? >= ?",
		Vars: []interface{}{
			clause.Column{Table: table, Name: paymentField},
			clause.Column{Table: table, Name: "grand_total"},
		},
	}, true
}

type balanceRule struct {
	column string
}

func (r balanceRule) Name() string { return r.column }

func (r balanceRule) Resolve(table string, cols columnSet, _ string) (clause.Expression, bool) {
	if !cols.has(r.column) {
		return nil, false
	}
	return clause.Lte{Column: clause.Column{Table: table, Name: r.column}, Value: 0}, true
}

type allSalesRule struct{}

func (allSalesRule) Name() string { return "all_sales" }

func (allSalesRule) Resolve(string, columnSet, string) (clause.Expression, bool) {
	return nil, true
}
