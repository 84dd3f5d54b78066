package service

import (
	"fmt"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleDetailInput struct {
	ItemID      uuid.UUID        `json:"item_id" validate:"uuid_required"`
	Price       decimal.Decimal  `json:"price" validate:"gte=0"`
	Quantity    int              `json:"quantity" validate:"gt=0"`
	TotalDetail *decimal.Decimal `json:"total_detail" validate:"omitempty,gte=0"`
}

// SaleInput carries the checkout totals as computed by the till. They are
// stored as given.
type SaleInput struct {
	CustomerID    uuid.UUID         `json:"customer_id" validate:"uuid_required"`
	SubTotal      decimal.Decimal   `json:"sub_total" validate:"gte=0"`
	GrandTotal    decimal.Decimal   `json:"grand_total" validate:"gte=0"`
	TaxAmount     decimal.Decimal   `json:"tax_amount" validate:"gte=0"`
	TaxPercentage float64           `json:"tax_percentage" validate:"gte=0,lte=100"`
	AmountPaid    decimal.Decimal   `json:"amount_paid" validate:"gte=0"`
	AmountChange  decimal.Decimal   `json:"amount_change" validate:"gte=0"`
	Details       []SaleDetailInput `json:"details" validate:"required,min=1,dive"`
}

type SaleService interface {
	GetAll() ([]model.Sale, error)
	GetByID(id uuid.UUID) (*model.Sale, error)
	Create(in *SaleInput, actor Actor) (*model.Sale, error)
	Delete(id uuid.UUID, actor Actor) error
}

type saleService struct {
	saleRepo     repository.SaleRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

func NewSaleService(sRepo repository.SaleRepository, iRepo repository.ItemRepository, cRepo repository.CustomerRepository) SaleService {
	return &saleService{
		saleRepo:     sRepo,
		itemRepo:     iRepo,
		customerRepo: cRepo,
		now:          time.Now,
	}
}

func (s *saleService) GetAll() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}
	return sale, nil
}

func (s *saleService) Create(in *SaleInput, actor Actor) (*model.Sale, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByID(in.CustomerID); err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}

	details := make([]model.SaleDetail, 0, len(in.Details))
	for i, d := range in.Details {
		if _, err := s.itemRepo.FindByID(d.ItemID); err != nil {
			return nil, fmt.Errorf("detail %d: %w", i+1, notFound(err, ErrItemNotFound))
		}
		total := d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
		if d.TotalDetail != nil {
			total = *d.TotalDetail
		}
		details = append(details, model.SaleDetail{
			ItemID:      d.ItemID,
			Price:       d.Price,
			Quantity:    d.Quantity,
			TotalDetail: total,
		})
	}

	sale := &model.Sale{
		DateAdded:     s.now(),
		CustomerID:    in.CustomerID,
		SubTotal:      in.SubTotal,
		GrandTotal:    in.GrandTotal,
		TaxAmount:     in.TaxAmount,
		TaxPercentage: in.TaxPercentage,
		AmountPaid:    in.AmountPaid,
		AmountChange:  in.AmountChange,
		Details:       details,
	}
	sale.CreatedBy = actor.ID
	sale.UpdatedBy = actor.ID

	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) Delete(id uuid.UUID, actor Actor) error {
	return notFound(s.saleRepo.Delete(id, actor.ID), ErrSaleNotFound)
}
