package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "purchase:delete"
	Name string `gorm:"type:varchar(100)" json:"name"`
	// Elevated privileges are the ones only superusers receive by default.
	Elevated bool `gorm:"default:false" json:"elevated"`
}

const (
	PrivUserView       = "user:view"
	PrivUserCreate     = "user:create"
	PrivItemCreate     = "item:create"
	PrivItemUpdate     = "item:update"
	PrivItemDelete     = "item:delete"
	PrivPurchaseCreate = "purchase:create"
	PrivPurchaseUpdate = "purchase:update"
	PrivPurchaseDelete = "purchase:delete"
	PrivSaleCreate     = "sale:create"
	PrivSaleDelete     = "sale:delete"
	PrivDeliveryCreate = "delivery:create"
	PrivDeliveryUpdate = "delivery:update"
	PrivDeliveryDelete = "delivery:delete"
	PrivCatalogManage  = "catalog:manage"
)

var DefaultPrivileges = []Privilege{
	{Code: PrivUserView, Name: "View Users"},
	{Code: PrivUserCreate, Name: "Create User", Elevated: true},
	{Code: PrivItemCreate, Name: "Create Item"},
	{Code: PrivItemUpdate, Name: "Update Item", Elevated: true},
	{Code: PrivItemDelete, Name: "Delete Item", Elevated: true},
	{Code: PrivPurchaseCreate, Name: "Record Purchase"},
	{Code: PrivPurchaseUpdate, Name: "Update Purchase", Elevated: true},
	{Code: PrivPurchaseDelete, Name: "Delete Purchase", Elevated: true},
	{Code: PrivSaleCreate, Name: "Record Sale"},
	{Code: PrivSaleDelete, Name: "Delete Sale", Elevated: true},
	{Code: PrivDeliveryCreate, Name: "Create Delivery"},
	{Code: PrivDeliveryUpdate, Name: "Update Delivery", Elevated: true},
	{Code: PrivDeliveryDelete, Name: "Delete Delivery", Elevated: true},
	{Code: PrivCatalogManage, Name: "Manage Categories, Vendors and Customers"},
}
