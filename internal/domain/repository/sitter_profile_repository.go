package repository

import (
	"pawcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SitterProfileRepository interface {
	Create(db *gorm.DB, profile *entity.SitterProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.SitterProfile, error)
	FindAll(db *gorm.DB) ([]entity.SitterProfile, error)
}
