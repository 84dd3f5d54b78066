package repository

import (
	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	Create(tx *gorm.DB, purchase *model.Purchase) error
	Save(tx *gorm.DB, purchase *model.Purchase) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
	DeleteByItem(tx *gorm.DB, itemID uuid.UUID, deletedBy string) (int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Item").Preload("Vendor").Order("order_date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.Preload("Item").Preload("Vendor").First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Omit(clause.Associations).Create(purchase).Error
}

func (r *purchaseRepo) Save(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Omit(clause.Associations).Save(purchase).Error
}

func (r *purchaseRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Purchase{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Purchase{}, "id = ?", id).Error
}

// DeleteByItem soft deletes every purchase of an item and reports how many
// were removed.
func (r *purchaseRepo) DeleteByItem(tx *gorm.DB, itemID uuid.UUID, deletedBy string) (int64, error) {
	if err := tx.Model(&model.Purchase{}).Where("item_id = ?", itemID).Update("deleted_by", deletedBy).Error; err != nil {
		return 0, err
	}
	res := tx.Where("item_id = ?", itemID).Delete(&model.Purchase{})
	return res.RowsAffected, res.Error
}
