package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

// Values a frontend sends when the category dropdown means "everything".
var noCategorySentinels = map[string]struct{}{
	"":             {},
	"null":         {},
	"undefined":    {},
	"All Products": {},
}

func CategoryIsFilter(category string) bool {
	_, sentinel := noCategorySentinels[category]
	return !sentinel
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	if len(ids) == 0 {
		return map[uint]models.Product{}, nil
	}
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return byID, nil
}

// ListProducts filters by category (sentinel values mean no filter) and by a
// case-insensitive substring of the name. Both filters combine with AND.
func (r *GormRepo) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if CategoryIsFilter(category) {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var items []models.Product
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// MergeProductByName implements the merge creation policy: an existing
// product with the same name has its stock incremented and price,
// description, specs, image and category overwritten.
func (r *GormRepo) MergeProductByName(ctx context.Context, prod *models.Product) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("name = ?", prod.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(prod).Error
		}
		if err != nil {
			return err
		}

		existing.Stock += prod.Stock
		existing.Price = prod.Price
		existing.Description = prod.Description
		existing.Specs = prod.Specs
		existing.ImageURL = prod.ImageURL
		existing.Category = prod.Category
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*prod = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Specs != nil {
		prod.Specs = *req.Specs
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
