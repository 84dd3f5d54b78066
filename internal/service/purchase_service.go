package service

import (
	"fmt"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseInput is the writable part of a purchase. Nil quantity or price
// count as zero; total_value is always derived.
type PurchaseInput struct {
	ItemID         uuid.UUID            `json:"item_id" validate:"uuid_required"`
	VendorID       *uuid.UUID           `json:"vendor_id"`
	Description    string               `json:"description"`
	Quantity       *int                 `json:"quantity" validate:"omitempty,gte=0"`
	Price          *decimal.Decimal     `json:"price" validate:"omitempty,gte=0"`
	DeliveryStatus model.DeliveryStatus `json:"delivery_status" validate:"omitempty,oneof=P S"`
	DeliveryDate   *time.Time           `json:"delivery_date"`
}

func (in *PurchaseInput) quantity() int {
	if in.Quantity == nil {
		return 0
	}
	return *in.Quantity
}

func (in *PurchaseInput) price() decimal.Decimal {
	if in.Price == nil {
		return decimal.Zero
	}
	return *in.Price
}

// PurchaseService keeps item stock equal to the sum of the purchases
// pointing at it.
type PurchaseService interface {
	Create(in *PurchaseInput, actor Actor) (*model.Purchase, error)
	Update(id uuid.UUID, in *PurchaseInput, actor Actor) (*model.Purchase, error)
	Delete(id uuid.UUID, actor Actor) error
	MarkDelivered(id uuid.UUID, actor Actor) (*model.Purchase, error)
	GetAll() ([]model.Purchase, error)
	GetByID(id uuid.UUID) (*model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	vendorRepo   repository.VendorRepository
	ledger       *InventoryLedger
	db           *gorm.DB
	wsHub        *ws.Hub
	now          func() time.Time
}

func NewPurchaseService(pRepo repository.PurchaseRepository, vRepo repository.VendorRepository, ledger *InventoryLedger, db *gorm.DB, hub *ws.Hub) PurchaseService {
	return &purchaseService{
		purchaseRepo: pRepo,
		vendorRepo:   vRepo,
		ledger:       ledger,
		db:           db,
		wsHub:        hub,
		now:          time.Now,
	}
}

func (s *purchaseService) GetAll() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *purchaseService) GetByID(id uuid.UUID) (*model.Purchase, error) {
	p, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseNotFound)
	}
	return p, nil
}

func (s *purchaseService) checkInput(in *PurchaseInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if in.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(*in.VendorID); err != nil {
			return notFound(err, ErrVendorNotFound)
		}
	}
	return nil
}

func (s *purchaseService) Create(in *PurchaseInput, actor Actor) (*model.Purchase, error) {
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	p := &model.Purchase{
		ItemID:         in.ItemID,
		VendorID:       in.VendorID,
		Description:    in.Description,
		OrderDate:      s.now(),
		Quantity:       in.quantity(),
		Price:          in.price(),
		DeliveryStatus: model.DeliveryPending,
	}
	if in.DeliveryStatus != "" {
		p.DeliveryStatus = in.DeliveryStatus
	}
	p.DeliveryDate = s.deliveryDate(p.DeliveryStatus, in.DeliveryDate, nil)
	p.ComputeTotal()
	p.CreatedBy = actor.ID
	p.UpdatedBy = actor.ID

	var change ws.ItemChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.ledger.Lock(tx, p.ItemID)
		if err != nil {
			return err
		}
		if err := s.purchaseRepo.Create(tx, p); err != nil {
			return err
		}
		if err := s.ledger.Adjust(tx, item.ID, p.Quantity, actor.ID); err != nil {
			return err
		}
		change = ws.ItemChange{ID: item.ID, Name: item.Name, Delta: p.Quantity, Quantity: item.Quantity + p.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("purchase_created", actor, change)
	return p, nil
}

func (s *purchaseService) Update(id uuid.UUID, in *PurchaseInput, actor Actor) (*model.Purchase, error) {
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	var updated *model.Purchase
	var changes []ws.ItemChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.purchaseRepo.LockByID(tx, id)
		if err != nil {
			return notFound(err, ErrPurchaseNotFound)
		}
		oldItemID, oldQty := existing.ItemID, existing.Quantity
		newItemID, newQty := in.ItemID, in.quantity()

		items, err := s.ledger.LockAll(tx, oldItemID, newItemID)
		if err != nil {
			return err
		}

		if oldItemID == newItemID {
			if err := EnsureAvailable(items[oldItemID], oldQty-newQty); err != nil {
				return err
			}
		} else {
			if err := EnsureAvailable(items[oldItemID], oldQty); err != nil {
				return err
			}
			if err := s.ledger.Adjust(tx, oldItemID, -oldQty, actor.ID); err != nil {
				return err
			}
		}

		existing.ItemID = newItemID
		existing.VendorID = in.VendorID
		existing.Description = in.Description
		existing.Quantity = newQty
		existing.Price = in.price()
		if in.DeliveryStatus != "" {
			existing.DeliveryStatus = in.DeliveryStatus
		}
		existing.DeliveryDate = s.deliveryDate(existing.DeliveryStatus, in.DeliveryDate, existing.DeliveryDate)
		existing.ComputeTotal()
		existing.UpdatedBy = actor.ID
		if err := s.purchaseRepo.Save(tx, existing); err != nil {
			return err
		}

		if oldItemID == newItemID {
			delta := newQty - oldQty
			if err := s.ledger.Adjust(tx, newItemID, delta, actor.ID); err != nil {
				return err
			}
			item := items[newItemID]
			changes = []ws.ItemChange{{ID: item.ID, Name: item.Name, Delta: delta, Quantity: item.Quantity + delta}}
		} else {
			if err := s.ledger.Adjust(tx, newItemID, newQty, actor.ID); err != nil {
				return err
			}
			oldItem, newItem := items[oldItemID], items[newItemID]
			changes = []ws.ItemChange{
				{ID: oldItem.ID, Name: oldItem.Name, Delta: -oldQty, Quantity: oldItem.Quantity - oldQty},
				{ID: newItem.ID, Name: newItem.Name, Delta: newQty, Quantity: newItem.Quantity + newQty},
			}
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("purchase_updated", actor, changes...)
	return updated, nil
}

func (s *purchaseService) Delete(id uuid.UUID, actor Actor) error {
	var change ws.ItemChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.purchaseRepo.LockByID(tx, id)
		if err != nil {
			return notFound(err, ErrPurchaseNotFound)
		}
		item, err := s.ledger.Lock(tx, existing.ItemID)
		if err != nil {
			return err
		}
		if err := EnsureAvailable(item, existing.Quantity); err != nil {
			return fmt.Errorf("cannot delete purchase %s: %w", model.ShortID(id), err)
		}
		if err := s.ledger.Adjust(tx, item.ID, -existing.Quantity, actor.ID); err != nil {
			return err
		}
		if err := s.purchaseRepo.Delete(tx, id, actor.ID); err != nil {
			return err
		}
		change = ws.ItemChange{ID: item.ID, Name: item.Name, Delta: -existing.Quantity, Quantity: item.Quantity - existing.Quantity}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish("purchase_deleted", actor, change)
	return nil
}

// MarkDelivered flips the delivery status to Successful. Stock is counted
// from creation, so nothing moves in the ledger.
func (s *purchaseService) MarkDelivered(id uuid.UUID, actor Actor) (*model.Purchase, error) {
	var updated *model.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.purchaseRepo.LockByID(tx, id)
		if err != nil {
			return notFound(err, ErrPurchaseNotFound)
		}
		existing.DeliveryStatus = model.DeliverySuccessful
		existing.DeliveryDate = s.deliveryDate(existing.DeliveryStatus, nil, existing.DeliveryDate)
		existing.UpdatedBy = actor.ID
		if err := s.purchaseRepo.Save(tx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// deliveryDate keeps an explicit date, then the stored one, and stamps now
// the first time a purchase is Successful.
func (s *purchaseService) deliveryDate(status model.DeliveryStatus, requested, current *time.Time) *time.Time {
	if requested != nil {
		return requested
	}
	if current != nil {
		return current
	}
	if status == model.DeliverySuccessful {
		now := s.now()
		return &now
	}
	return nil
}

func (s *purchaseService) publish(action string, actor Actor, changes ...ws.ItemChange) {
	for i := range changes {
		c := changes[i]
		s.wsHub.Publish(ws.Event{
			Type:    "stock_update",
			Action:  action,
			Item:    &c,
			User:    actor.event(),
			Message: fmt.Sprintf("%s: %s stock %+d", actor.Name, c.Name, c.Delta),
		})
	}
}
