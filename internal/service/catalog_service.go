package service

import (
	"errors"
	"strings"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type VendorInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Address     string `json:"address"`
}

type CustomerInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
}

// CatalogService manages the reference records items and sales point at.
type CatalogService interface {
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	CreateCategory(in *CategoryInput, actor Actor) (*model.Category, error)
	UpdateCategory(id uuid.UUID, in *CategoryInput, actor Actor) (*model.Category, error)
	DeleteCategory(id uuid.UUID, actor Actor) error

	GetVendors() ([]model.Vendor, error)
	GetVendor(id uuid.UUID) (*model.Vendor, error)
	CreateVendor(in *VendorInput, actor Actor) (*model.Vendor, error)
	UpdateVendor(id uuid.UUID, in *VendorInput, actor Actor) (*model.Vendor, error)
	DeleteVendor(id uuid.UUID, actor Actor) error

	GetCustomers() ([]model.Customer, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	CreateCustomer(in *CustomerInput, actor Actor) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, in *CustomerInput, actor Actor) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID, actor Actor) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	vendorRepo   repository.VendorRepository
	customerRepo repository.CustomerRepository
}

func NewCatalogService(catRepo repository.CategoryRepository, vRepo repository.VendorRepository, cRepo repository.CustomerRepository) CatalogService {
	return &catalogService{
		categoryRepo: catRepo,
		vendorRepo:   vRepo,
		customerRepo: cRepo,
	}
}

// Categories

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	c, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return c, nil
}

// uniqueCategoryName rejects a name already used by another category.
func (s *catalogService) uniqueCategoryName(name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrDuplicate
	}
	return nil
}

func (s *catalogService) CreateCategory(in *CategoryInput, actor Actor) (*model.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueCategoryName(name, uuid.Nil); err != nil {
		return nil, err
	}
	c := &model.Category{Name: name}
	c.CreatedBy = actor.ID
	c.UpdatedBy = actor.ID
	if err := s.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, in *CategoryInput, actor Actor) (*model.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueCategoryName(name, id); err != nil {
		return nil, err
	}
	c.Name = name
	c.UpdatedBy = actor.ID
	if err := s.categoryRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID, actor Actor) error {
	return notFound(s.categoryRepo.Delete(id, actor.ID), ErrCategoryNotFound)
}

// Vendors

func (s *catalogService) GetVendors() ([]model.Vendor, error) {
	return s.vendorRepo.FindAll()
}

func (s *catalogService) GetVendor(id uuid.UUID) (*model.Vendor, error) {
	v, err := s.vendorRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrVendorNotFound)
	}
	return v, nil
}

func (s *catalogService) CreateVendor(in *VendorInput, actor Actor) (*model.Vendor, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	v := &model.Vendor{Name: strings.TrimSpace(in.Name), PhoneNumber: in.PhoneNumber, Address: in.Address}
	v.CreatedBy = actor.ID
	v.UpdatedBy = actor.ID
	if err := s.vendorRepo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *catalogService) UpdateVendor(id uuid.UUID, in *VendorInput, actor Actor) (*model.Vendor, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	v, err := s.GetVendor(id)
	if err != nil {
		return nil, err
	}
	v.Name = strings.TrimSpace(in.Name)
	v.PhoneNumber = in.PhoneNumber
	v.Address = in.Address
	v.UpdatedBy = actor.ID
	if err := s.vendorRepo.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *catalogService) DeleteVendor(id uuid.UUID, actor Actor) error {
	return notFound(s.vendorRepo.Delete(id, actor.ID), ErrVendorNotFound)
}

// Customers

func (s *catalogService) GetCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *catalogService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	c, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return c, nil
}

func (s *catalogService) CreateCustomer(in *CustomerInput, actor Actor) (*model.Customer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := &model.Customer{
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Address:     in.Address,
	}
	c.CreatedBy = actor.ID
	c.UpdatedBy = actor.ID
	if err := s.customerRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCustomer(id uuid.UUID, in *CustomerInput, actor Actor) (*model.Customer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.PhoneNumber = in.PhoneNumber
	c.Email = in.Email
	c.Address = in.Address
	c.UpdatedBy = actor.ID
	if err := s.customerRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) DeleteCustomer(id uuid.UUID, actor Actor) error {
	return notFound(s.customerRepo.Delete(id, actor.ID), ErrCustomerNotFound)
}
