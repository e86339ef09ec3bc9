package auth

import "errors"

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" {
		return ValidationError{Message: "email is required"}
	}
	if dto.Password == "" {
		return ValidationError{Message: "password is required"}
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}

type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
