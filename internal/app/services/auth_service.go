package services

import (
	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/pkg/auth"
)

// Single fixed API identity. There is no user table; the token only
// gates access to the student endpoints.
const apiSubject = "admin"

// AuthService issues access tokens for the API.
type AuthService interface {
	Login() (*dto.TokenResponse, error)
}

type authService struct {
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(jwtService *auth.JWTService) AuthService {
	return &authService{jwtService: jwtService}
}

func (s *authService) Login() (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(apiSubject)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
