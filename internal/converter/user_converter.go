package converter

import (
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO, including
// whichever role profile is loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.SitterProfile != nil {
		response.SitterProfile = &dto.SitterProfileResponse{
			UserID:      user.SitterProfile.UserID,
			PhoneNumber: user.SitterProfile.PhoneNumber,
			Biography:   user.SitterProfile.Biography,
			ServiceArea: user.SitterProfile.ServiceArea,
			HourlyRate:  user.SitterProfile.HourlyRate.StringFixed(2),
		}
	}

	if user.ClientProfile != nil {
		response.ClientProfile = &dto.ClientProfileResponse{
			UserID:           user.ClientProfile.UserID,
			PhoneNumber:      user.ClientProfile.PhoneNumber,
			Address:          user.ClientProfile.Address,
			EmergencyContact: user.ClientProfile.EmergencyContact,
			Pets:             []string(user.ClientProfile.Pets),
		}
	}

	return response
}
