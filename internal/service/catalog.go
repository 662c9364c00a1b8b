package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

// CatalogService manages the product catalog. Mutations are admin-only and
// are gated by the caller before reaching this service.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a CatalogService backed by db
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ProductInput carries the mutable fields of a product
type ProductInput struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Color              *string  `json:"color,omitempty"`
	Fabric             *string  `json:"fabric,omitempty"`
	Rating             float64  `json:"rating"`
	Category           string   `json:"category"`
	Tags               string   `json:"tags"`
	MRP                float64  `json:"mrp"`
	DiscountPercentage float64  `json:"discount_percentage"`
	DiscountPrice      float64  `json:"discount_price"`
	Photos             []string `json:"photos"`
	Stock              int      `json:"stock"`
}

// DerivedDiscountPrice resolves the effective unit price: an explicitly
// supplied discount price wins; a zero discount price with a positive
// percentage derives from MRP; zero for both falls back to MRP.
func DerivedDiscountPrice(mrp, discountPercentage, discountPrice float64) float64 {
	if discountPrice == 0 && discountPercentage > 0 {
		return mrp * (1 - discountPercentage/100)
	}
	if discountPrice == 0 {
		return mrp
	}
	return discountPrice
}

// List returns a page of products in insertion order
func (s *CatalogService) List(ctx context.Context, skip, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, storagef("product list", err)
	}
	return products, nil
}

// Get fetches a single product by id
func (s *CatalogService) Get(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	result := s.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storagef("product lookup", result.Error)
	}
	return &product, nil
}

// Create persists a new product with the derived discount price
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := model.Product{
		Name:               in.Name,
		Description:        in.Description,
		Color:              in.Color,
		Fabric:             in.Fabric,
		Rating:             in.Rating,
		Category:           in.Category,
		Tags:               in.Tags,
		MRP:                in.MRP,
		DiscountPercentage: in.DiscountPercentage,
		DiscountPrice:      DerivedDiscountPrice(in.MRP, in.DiscountPercentage, in.DiscountPrice),
		Photos:             in.Photos,
		Stock:              in.Stock,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, storagef("product create", err)
	}
	return &product, nil
}

// Update replaces the mutable fields of an existing product, applying the
// same discount price derivation as Create
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Color = in.Color
	product.Fabric = in.Fabric
	product.Rating = in.Rating
	product.Category = in.Category
	product.Tags = in.Tags
	product.MRP = in.MRP
	product.DiscountPercentage = in.DiscountPercentage
	product.DiscountPrice = DerivedDiscountPrice(in.MRP, in.DiscountPercentage, in.DiscountPrice)
	product.Photos = in.Photos
	product.Stock = in.Stock

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, storagef("product update", err)
	}
	return product, nil
}

// Delete removes a product permanently. Order items referencing it keep
// their frozen price but lose the product association.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return storagef("product delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyBulkDiscount recomputes the discount price for every product in the
// category from the given percentage. Returns the number of products
// updated; zero when the category is empty.
func (s *CatalogService) ApplyBulkDiscount(ctx context.Context, category string, percentage float64) (int, error) {
	var updated int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("category = ?", category).
			Updates(map[string]interface{}{
				"discount_percentage": percentage,
				"discount_price":      gorm.Expr("mrp * (1 - ? / 100.0)", percentage),
			})
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, storagef("bulk discount", err)
	}
	return int(updated), nil
}

// Seed populates the catalog with demo products when it is empty. Returns
// false without touching the catalog when products already exist.
func (s *CatalogService) Seed(ctx context.Context) (bool, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return false, storagef("product count", err)
	}
	if count > 0 {
		return false, nil
	}

	type dummy struct {
		name, category, tags, color, fabric string
		mrp, rating                         float64
	}
	dummies := []dummy{
		{"Midnight Bomber Jacket", "Men", "New Arrival", "Black", "Leather", 2999, 4.8},
		{"Midnight Bomber Jacket", "Men", "New Arrival", "Brown", "Leather", 2999, 4.5},
		{"Midnight Bomber Jacket", "Men", "New Arrival", "Navy", "Leather", 2999, 4.9},
		{"Silk Wrap Dress", "Women", "Trending", "Crimson", "Silk", 3499, 5.0},
		{"Silk Wrap Dress", "Women", "Trending", "Emerald", "Silk", 3499, 4.7},
		{"Urban Runner Sneakers", "Men", "New Arrival, Trending", "White", "Mesh", 4999, 4.2},
	}

	photos := []string{
		"https://images.unsplash.com/photo-1523381210434-271e8be1f52b?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1512436991641-6745cdb1723f?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1572804013309-8c98c08f43c3?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?auto=format&fit=crop&q=80&w=800",
	}

	products := make([]model.Product, 0, len(dummies))
	for _, d := range dummies {
		color, fabric := d.color, d.fabric
		products = append(products, model.Product{
			Name:               d.name,
			Description:        "Premium quality " + d.name + " tailored for comfort and durability.",
			Color:              &color,
			Fabric:             &fabric,
			Rating:             d.rating,
			Category:           d.category,
			Tags:               d.tags,
			MRP:                d.mrp,
			DiscountPercentage: 10.0,
			DiscountPrice:      d.mrp * 0.9,
			Photos:             photos,
			Stock:              50,
		})
	}

	if err := db.Create(&products).Error; err != nil {
		return false, storagef("product seed", err)
	}
	return true, nil
}
