package usecase

import (
	"context"
	"errors"
	"time"

	"pawcare-booking/internal/converter"
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/repository"
	"pawcare-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSitterNotFound   = errors.New("sitter not found")
	ErrInvalidDate      = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidDuration  = errors.New("duration must be a positive number of minutes")
	ErrInvalidStartTime = errors.New("invalid start time format, use RFC 3339")
)

type SitterAvailabilityUsecase interface {
	CheckSlot(ctx context.Context, sitterID uuid.UUID, req *dto.CheckSlotRequest) (*dto.AvailabilityResponse, error)
	GetDaySlots(ctx context.Context, sitterID uuid.UUID, req *dto.DaySlotsRequest) (*dto.DaySlotsResponse, error)
}

type sitterAvailabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	sitterProfileRepo repository.SitterProfileRepository
	availability      *service.AvailabilityService
}

func NewSitterAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sitterProfileRepo repository.SitterProfileRepository,
	availability *service.AvailabilityService,
) SitterAvailabilityUsecase {
	return &sitterAvailabilityUsecase{
		db:                db,
		log:               log,
		sitterProfileRepo: sitterProfileRepo,
		availability:      availability,
	}
}

// CheckSlot answers whether one sitter can take one candidate window
func (u *sitterAvailabilityUsecase) CheckSlot(ctx context.Context, sitterID uuid.UUID, req *dto.CheckSlotRequest) (*dto.AvailabilityResponse, error) {
	if err := u.ensureSitterExists(ctx, sitterID); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	result := u.availability.Check(ctx, sitterID, start, time.Duration(req.DurationMinutes)*time.Minute)
	return converter.AvailabilityResultToResponse(sitterID, start, &result), nil
}

// GetDaySlots lists the open windows for a sitter on one day
func (u *sitterAvailabilityUsecase) GetDaySlots(ctx context.Context, sitterID uuid.UUID, req *dto.DaySlotsRequest) (*dto.DaySlotsResponse, error) {
	if err := u.ensureSitterExists(ctx, sitterID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	slots, err := u.availability.EnumerateSlots(ctx, sitterID, date.UTC(), time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		return nil, ErrAvailabilityUnknown
	}

	return &dto.DaySlotsResponse{
		SitterID: sitterID,
		Date:     req.Date,
		Slots:    converter.TimeSlotsToResponses(slots),
	}, nil
}

func (u *sitterAvailabilityUsecase) ensureSitterExists(ctx context.Context, sitterID uuid.UUID) error {
	profile, err := u.sitterProfileRepo.FindByUserID(u.db.WithContext(ctx), sitterID)
	if err != nil {
		u.log.Warnf("Failed to find sitter profile %s: %+v", sitterID, err)
		return err
	}
	if profile == nil {
		return ErrSitterNotFound
	}
	return nil
}
