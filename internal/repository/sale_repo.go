package repository

import (
	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	// Create stores the sale and its detail lines in one transaction.
	Create(sale *model.Sale) error
	// Delete removes the sale together with its detail lines.
	Delete(id uuid.UUID, deletedBy string) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("Details").Order("date_added DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("Details").Preload("Details.Item").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		details := sale.Details
		sale.Details = nil
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].SaleID = sale.ID
			details[i].CreatedBy = sale.CreatedBy
			details[i].UpdatedBy = sale.UpdatedBy
		}
		if len(details) > 0 {
			if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
				return err
			}
		}
		sale.Details = details
		return nil
	})
}

func (r *saleRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Sale{}).Where("id = ?", id).Update("deleted_by", deletedBy)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&model.SaleDetail{}).Where("sale_id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.SaleDetail{}, "sale_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Sale{}, "id = ?", id).Error
	})
}
