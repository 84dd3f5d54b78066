package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/imageutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	selectLimit      = 20
	PlaceholderImage = "/static/images/placeholder.png"
)

type ItemInput struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	VendorID     *uuid.UUID      `json:"vendor_id"`
	ExpiringDate *time.Time      `json:"expiring_date"`
}

// ItemOption is one row of the item picker.
type ItemOption struct {
	ID       uuid.UUID       `json:"id"`
	Text     string          `json:"text"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// DeletedItem reports the valuation after the item is gone.
type DeletedItem struct {
	ID             uuid.UUID       `json:"id"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	PurchasesGone  int64           `json:"purchases_removed"`
}

type ItemService interface {
	GetAll() ([]model.Item, error)
	GetByID(id uuid.UUID) (*model.Item, error)
	Search(query string) ([]model.Item, error)
	Select(term string, imageBase string) ([]ItemOption, error)
	Create(in *ItemInput, actor Actor) (*model.Item, error)
	Update(id uuid.UUID, in *ItemInput, actor Actor) (*model.Item, error)
	Delete(id uuid.UUID, actor Actor) (*DeletedItem, error)
	UploadImage(id uuid.UUID, data []byte, actor Actor) (*model.Item, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	purchaseRepo repository.PurchaseRepository
	categoryRepo repository.CategoryRepository
	vendorRepo   repository.VendorRepository
	dashboard    DashboardService
	ledger       *InventoryLedger
	db           *gorm.DB
	wsHub        *ws.Hub
	uploadDir    string
	maxImage     int64
}

type ItemServiceDeps struct {
	Items      repository.ItemRepository
	Purchases  repository.PurchaseRepository
	Categories repository.CategoryRepository
	Vendors    repository.VendorRepository
	Dashboard  DashboardService
	Ledger     *InventoryLedger
	DB         *gorm.DB
	Hub        *ws.Hub
	UploadDir  string
	MaxImage   int64
}

func NewItemService(d ItemServiceDeps) ItemService {
	return &itemService{
		itemRepo:     d.Items,
		purchaseRepo: d.Purchases,
		categoryRepo: d.Categories,
		vendorRepo:   d.Vendors,
		dashboard:    d.Dashboard,
		ledger:       d.Ledger,
		db:           d.DB,
		wsHub:        d.Hub,
		uploadDir:    d.UploadDir,
		maxImage:     d.MaxImage,
	}
}

func (s *itemService) GetAll() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetByID(id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return item, nil
}

// Search returns items whose name contains every whitespace-separated term.
// An empty query lists everything.
func (s *itemService) Search(query string) ([]model.Item, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return s.itemRepo.FindAll()
	}
	return s.itemRepo.Search(terms, 0)
}

func (s *itemService) Select(term string, imageBase string) ([]ItemOption, error) {
	items, err := s.itemRepo.Lookup(term, selectLimit)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(imageBase, "/")
	options := make([]ItemOption, 0, len(items))
	for _, it := range items {
		image := base + PlaceholderImage
		if it.Image != "" {
			image = base + "/uploads/" + strings.TrimLeft(it.Image, "/")
		}
		options = append(options, ItemOption{
			ID:       it.ID,
			Text:     it.Name,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    image,
		})
	}
	return options, nil
}

func (s *itemService) checkRefs(in *ItemInput) error {
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*in.CategoryID); err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
	}
	if in.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(*in.VendorID); err != nil {
			return notFound(err, ErrVendorNotFound)
		}
	}
	return nil
}

func (s *itemService) Create(in *ItemInput, actor Actor) (*model.Item, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkRefs(in); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Quantity:     in.Quantity,
		Price:        in.Price,
		CategoryID:   in.CategoryID,
		VendorID:     in.VendorID,
		ExpiringDate: in.ExpiringDate,
	}
	item.CreatedBy = actor.ID
	item.UpdatedBy = actor.ID
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "item_created",
		Item:    &ws.ItemChange{ID: item.ID, Name: item.Name, Delta: item.Quantity, Quantity: item.Quantity},
		User:    actor.event(),
		Message: fmt.Sprintf("%s created item '%s'", actor.Name, item.Name),
	})
	return item, nil
}

// Update rewrites the item under its row lock. Quantity set here replaces
// the ledger value outright.
func (s *itemService) Update(id uuid.UUID, in *ItemInput, actor Actor) (*model.Item, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkRefs(in); err != nil {
		return nil, err
	}

	var updated *model.Item
	var oldQty int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.ledger.Lock(tx, id)
		if err != nil {
			return err
		}
		oldQty = existing.Quantity

		existing.Name = strings.TrimSpace(in.Name)
		existing.Description = in.Description
		existing.Quantity = in.Quantity
		existing.Price = in.Price
		existing.CategoryID = in.CategoryID
		existing.VendorID = in.VendorID
		existing.ExpiringDate = in.ExpiringDate
		existing.UpdatedBy = actor.ID
		if err := s.itemRepo.Update(tx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "item_updated",
		Item:    &ws.ItemChange{ID: updated.ID, Name: updated.Name, Delta: updated.Quantity - oldQty, Quantity: updated.Quantity},
		User:    actor.event(),
		Message: fmt.Sprintf("%s updated item '%s'", actor.Name, updated.Name),
	})
	return updated, nil
}

// Delete removes the item with its purchases and returns the valuation of
// the remaining stock.
func (s *itemService) Delete(id uuid.UUID, actor Actor) (*DeletedItem, error) {
	var removed int64
	var name string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.ledger.Lock(tx, id)
		if err != nil {
			return err
		}
		name = item.Name
		if removed, err = s.purchaseRepo.DeleteByItem(tx, id, actor.ID); err != nil {
			return err
		}
		return s.itemRepo.Delete(tx, id, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	value, err := s.dashboard.InventoryValue()
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "item_deleted",
		Item:    &ws.ItemChange{ID: id, Name: name},
		User:    actor.event(),
		Message: fmt.Sprintf("%s deleted item '%s'", actor.Name, name),
	})
	return &DeletedItem{ID: id, InventoryValue: value, PurchasesGone: removed}, nil
}

func (s *itemService) UploadImage(id uuid.UUID, data []byte, actor Actor) (*model.Item, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	stored, err := imageutil.Save(s.uploadDir, "items", id.String(), data, s.maxImage)
	if err != nil {
		if errors.Is(err, imageutil.ErrUnsupportedType) || errors.Is(err, imageutil.ErrTooLarge) || errors.Is(err, imageutil.ErrEmpty) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}
	if err := s.itemRepo.UpdateImage(id, stored.Path, actor.ID); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}
