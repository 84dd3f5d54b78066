package repository

import (
	"strings"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeliveryRepository interface {
	FindAll() ([]model.Delivery, error)
	SearchByCustomer(terms []string) ([]model.Delivery, error)
	FindByID(id uuid.UUID) (*model.Delivery, error)
	Create(delivery *model.Delivery) error
	Update(delivery *model.Delivery) error
	Delete(id uuid.UUID, deletedBy string) error
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepo(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db}
}

func (r *deliveryRepo) FindAll() ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Preload("Item").Order("deliveries.date DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) SearchByCustomer(terms []string) ([]model.Delivery, error) {
	query := r.db.Preload("Item")
	for _, term := range terms {
		query = query.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	var deliveries []model.Delivery
	err := query.Order("deliveries.date DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) FindByID(id uuid.UUID) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.Preload("Item").First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepo) Create(delivery *model.Delivery) error {
	return r.db.Omit(clause.Associations).Create(delivery).Error
}

func (r *deliveryRepo) Update(delivery *model.Delivery) error {
	return r.db.Omit(clause.Associations).Save(delivery).Error
}

func (r *deliveryRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Delivery{}, id, deletedBy)
}
