package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talent-hub/internal"
)

// Repository resolves stored users. GetByID returning internal.ErrUserNotFound
// covers the deleted-after-token-issuance case.
type Repository interface {
	GetByEmail(email string) (passwordHash string, user *User, err error)
	GetByID(userID int64) (*User, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	repo     Repository
	tokenGen TokenGenerator
	logger   *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
		logger:   logger,
	}
}

func NewJWTTokenGenerator(secret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:          []byte(secret),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens plus the resolved user.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	storedHash, user, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate access token", err)
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate refresh token", err)
	}

	return &LoginResponse{
		AuthTokens: AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken},
		User:       user,
	}, nil
}

// RefreshTokens validates a refresh token and issues a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate access token", err)
	}

	newRefreshToken, err := s.tokenGen.GenerateRefreshToken(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// ResolveUser turns a bearer token into the full user record. The token may
// outlive the user; a missing row fails as unauthenticated, not not-found.
func (s *Service) ResolveUser(tokenString string) (*User, error) {
	claims, err := s.tokenGen.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		s.logger.Warn("token references missing user", "user_id", claims.UserID)
		return nil, internal.ErrInvalidToken
	}

	return user, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64) (string, error) {
	return j.signedToken(userID, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64) (string, error) {
	return j.signedToken(userID, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) signedToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
