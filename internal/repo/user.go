package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/models"
)

var ErrUserExists = errors.New("user already exists")

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile loads the user together with the optional address and the
// order history.
func (r *GormRepo) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Preload("Address").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertAddress inserts the address on first call and overwrites the fields
// in place afterwards. One address per user.
func (r *GormRepo) UpsertAddress(ctx context.Context, userID uint, street, city, zip string) (*models.Address, error) {
	var addr models.Address
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&addr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		addr = models.Address{UserID: userID, Street: street, City: city, ZipCode: zip}
		if err := r.DB.WithContext(ctx).Create(&addr).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		addr.Street = street
		addr.City = city
		addr.ZipCode = zip
		if err := r.DB.WithContext(ctx).Save(&addr).Error; err != nil {
			return nil, err
		}
	}
	return &addr, nil
}
