package repository

import (
	"strings"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uuid.UUID) (*model.Item, error)
	Search(terms []string, limit int) ([]model.Item, error)
	Lookup(term string, limit int) ([]model.Item, error)
	Update(tx *gorm.DB, item *model.Item) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
	UpdateImage(id uuid.UUID, path string, updatedBy string) error

	// LockByID selects the item row FOR UPDATE inside tx.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Item, error)
	// AddQuantity applies quantity = quantity + delta in a single statement
	// and reports how many rows matched.
	AddQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Preload("Category").Preload("Vendor").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.Preload("Category").Preload("Vendor").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Search matches items whose name contains every term, case-insensitively.
func (r *itemRepo) Search(terms []string, limit int) ([]model.Item, error) {
	query := r.db.Model(&model.Item{})
	for _, term := range terms {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var items []model.Item
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// Lookup matches the whole term against name or description.
func (r *itemRepo) Lookup(term string, limit int) ([]model.Item, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	query := r.db.Model(&model.Item{}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var items []model.Item
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(tx *gorm.DB, item *model.Item) error {
	return tx.Omit(clause.Associations).Save(item).Error
}

func (r *itemRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Item{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) UpdateImage(id uuid.UUID, path string, updatedBy string) error {
	return r.db.Model(&model.Item{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image":      path,
		"updated_by": updatedBy,
	}).Error
}

func (r *itemRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) AddQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}
