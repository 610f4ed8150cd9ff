package services

import (
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

// Product change events published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes product change events to the message broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products ordered by id.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. Availability defaults to true; the
// store assigns the id.
func (s *ProductService) CreateProduct(name string, price float64) (*models.Product, error) {
	product := &models.Product{
		Name:         name,
		Price:        price,
		Availability: true,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product)
	return product, nil
}

// UpdateProduct overwrites name, price and availability of an existing
// product. The read and the write are two separate store calls; concurrent
// writers against the same id can race (lost update), which matches the
// store's documented consistency model.
func (s *ProductService) UpdateProduct(id uint, name string, price float64, availability bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Price = price
	product.Availability = availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// ToggleAvailability flips the availability flag of an existing product,
// leaving every other field untouched.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes a product permanently and returns the snapshot it
// had before deletion.
func (s *ProductService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	s.publish(EventProductDeleted, product)
	return product, nil
}

// publish emits a product event. Broker failures are logged and never
// affect the request outcome.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"id":           product.ID,
		"name":         product.Name,
		"price":        product.Price,
		"availability": product.Availability,
	}
	if err := s.publisher.PublishProductEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event for product %d: %v", event, product.ID, err)
	}
}
