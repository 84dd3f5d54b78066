package service

import (
	"errors"
	"fmt"

	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrItemNotFound     = errors.New("item not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrNegativeStock    = errors.New("operation would make stock negative")
	ErrDuplicate        = errors.New("record already exists")
)

// Actor identifies who performs a mutation. ID lands in the audit columns.
type Actor struct {
	ID    string
	Name  string
	Email string
}

func (a Actor) event() ws.Actor {
	return ws.Actor{ID: a.ID, Name: a.Name, Email: a.Email}
}

func validateInput(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	return nil
}

// notFound translates gorm's missing-row error into the domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
