package service

import (
	"strings"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
)

type DeliveryInput struct {
	ItemID       *uuid.UUID `json:"item_id"`
	CustomerName string     `json:"customer_name" validate:"required,max=255"`
	PhoneNumber  string     `json:"phone_number" validate:"max=30"`
	Location     string     `json:"location" validate:"max=255"`
	Date         time.Time  `json:"date" validate:"required"`
	IsDelivered  bool       `json:"is_delivered"`
}

type DeliveryService interface {
	GetAll() ([]model.Delivery, error)
	Search(query string) ([]model.Delivery, error)
	GetByID(id uuid.UUID) (*model.Delivery, error)
	Create(in *DeliveryInput, actor Actor) (*model.Delivery, error)
	Update(id uuid.UUID, in *DeliveryInput, actor Actor) (*model.Delivery, error)
	Delete(id uuid.UUID, actor Actor) error
}

type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	itemRepo     repository.ItemRepository
}

func NewDeliveryService(dRepo repository.DeliveryRepository, iRepo repository.ItemRepository) DeliveryService {
	return &deliveryService{deliveryRepo: dRepo, itemRepo: iRepo}
}

func (s *deliveryService) GetAll() ([]model.Delivery, error) {
	return s.deliveryRepo.FindAll()
}

func (s *deliveryService) Search(query string) ([]model.Delivery, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return s.deliveryRepo.FindAll()
	}
	return s.deliveryRepo.SearchByCustomer(terms)
}

func (s *deliveryService) GetByID(id uuid.UUID) (*model.Delivery, error) {
	d, err := s.deliveryRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrDeliveryNotFound)
	}
	return d, nil
}

func (s *deliveryService) check(in *DeliveryInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if in.ItemID != nil {
		if _, err := s.itemRepo.FindByID(*in.ItemID); err != nil {
			return notFound(err, ErrItemNotFound)
		}
	}
	return nil
}

func (s *deliveryService) Create(in *DeliveryInput, actor Actor) (*model.Delivery, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	d := &model.Delivery{
		ItemID:       in.ItemID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		PhoneNumber:  in.PhoneNumber,
		Location:     in.Location,
		Date:         in.Date,
		IsDelivered:  in.IsDelivered,
	}
	d.CreatedBy = actor.ID
	d.UpdatedBy = actor.ID
	if err := s.deliveryRepo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) Update(id uuid.UUID, in *DeliveryInput, actor Actor) (*model.Delivery, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	d, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	d.Item = nil
	d.ItemID = in.ItemID
	d.CustomerName = strings.TrimSpace(in.CustomerName)
	d.PhoneNumber = in.PhoneNumber
	d.Location = in.Location
	d.Date = in.Date
	d.IsDelivered = in.IsDelivered
	d.UpdatedBy = actor.ID
	if err := s.deliveryRepo.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) Delete(id uuid.UUID, actor Actor) error {
	return notFound(s.deliveryRepo.Delete(id, actor.ID), ErrDeliveryNotFound)
}
