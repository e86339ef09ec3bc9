package team

import (
	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/core/common/validation"
)

type CreateTeamDTO struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Specialization string `json:"specialization"`
}

func (dto *CreateTeamDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("specialization", dto.Specialization).Required().OneOf(Specializations, internal.ErrCodeInvalidSpecialization)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateTeamDTO struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (dto *UpdateTeamDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.Specialization != nil {
		v.Field("specialization", *dto.Specialization).OneOf(Specializations, internal.ErrCodeInvalidSpecialization)
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilters struct {
	Specialization string
	IsActive       *bool
}

type TechnicianDTO struct {
	UserID int64 `json:"user_id"`
}

func (dto *TechnicianDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
