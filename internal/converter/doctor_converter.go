package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Experience:     doctor.Experience,
		Description:    doctor.Description,
		Username:       doctor.Username,
		CanLogin:       doctor.HasCredentials(),
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func DoctorToChoice(doctor *entity.Doctor) *dto.DoctorChoice {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorChoice{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
	}
}

func DoctorsToChoices(doctors []entity.Doctor) []dto.DoctorChoice {
	choices := make([]dto.DoctorChoice, len(doctors))
	for i := range doctors {
		choices[i] = *DoctorToChoice(&doctors[i])
	}
	return choices
}
