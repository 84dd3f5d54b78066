package model

// All lists every table the service owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Privilege{}, &Role{}, &User{},
		&Category{}, &Vendor{}, &Customer{},
		&Item{}, &Purchase{}, &Sale{}, &SaleDetail{}, &Delivery{},
	}
}
