package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func PrincipalToResponse(principal *entity.Principal) *dto.PrincipalResponse {
	if principal == nil {
		return nil
	}

	return &dto.PrincipalResponse{
		Kind: string(principal.Kind),
		ID:   principal.ID,
		Name: principal.Name,
	}
}
