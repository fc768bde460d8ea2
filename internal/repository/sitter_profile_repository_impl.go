package repository

import (
	"errors"

	"pawcare-booking/internal/domain/entity"
	domainRepo "pawcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sitterProfileRepository struct{}

func NewSitterProfileRepository() domainRepo.SitterProfileRepository {
	return &sitterProfileRepository{}
}

func (r *sitterProfileRepository) Create(db *gorm.DB, profile *entity.SitterProfile) error {
	return db.Create(profile).Error
}

func (r *sitterProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.SitterProfile, error) {
	var profile entity.SitterProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *sitterProfileRepository) FindAll(db *gorm.DB) ([]entity.SitterProfile, error) {
	var profiles []entity.SitterProfile
	err := db.Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
