package auth

import "errors"

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
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

// LoginResponse mirrors what clients need to bootstrap a session without a
// second round trip.
type LoginResponse struct {
	AuthTokens
	User *User `json:"user"`
}
