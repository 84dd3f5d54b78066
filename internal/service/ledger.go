package service

import (
	"fmt"
	"sort"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLedger is the only writer of Item.quantity outside a locked item
// update. Every call runs inside the caller's transaction.
type InventoryLedger struct {
	items repository.ItemRepository
}

func NewInventoryLedger(items repository.ItemRepository) *InventoryLedger {
	return &InventoryLedger{items: items}
}

// Lock takes the item row lock for the rest of tx and returns the row as
// seen under that lock.
func (l *InventoryLedger) Lock(tx *gorm.DB, itemID uuid.UUID) (*model.Item, error) {
	item, err := l.items.LockByID(tx, itemID)
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return item, nil
}

// LockAll locks several items in ascending id order so two transactions
// touching the same pair never wait on each other crosswise.
func (l *InventoryLedger) LockAll(tx *gorm.DB, ids ...uuid.UUID) (map[uuid.UUID]*model.Item, error) {
	ordered := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	locked := make(map[uuid.UUID]*model.Item, len(ordered))
	for _, id := range ordered {
		item, err := l.Lock(tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = item
	}
	return locked, nil
}

// Adjust applies quantity = quantity + delta in one statement. It does not
// clamp; debits must be checked with EnsureAvailable against the locked row.
func (l *InventoryLedger) Adjust(tx *gorm.DB, itemID uuid.UUID, delta int, by string) error {
	rows, err := l.items.AddQuantity(tx, itemID, delta, by)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

// EnsureAvailable rejects a debit the locked item cannot cover.
func EnsureAvailable(item *model.Item, debit int) error {
	if debit > 0 && item.Quantity-debit < 0 {
		return fmt.Errorf("%w: %q has %d in stock, %d required", ErrNegativeStock, item.Name, item.Quantity, debit)
	}
	return nil
}
