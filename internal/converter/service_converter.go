package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	var price *string
	if service.Price.Valid {
		p := service.Price.Decimal.StringFixed(2)
		price = &p
	}

	return &dto.ServiceResponse{
		ID:          service.ID,
		Title:       service.Title,
		Description: service.Description,
		Order:       service.Order,
		Price:       price,
	}
}

// ServicesToResponses converts a slice of Service entities to slice of ServiceResponse DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}
