package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/auth"
	"github.com/emrekaya/clubsphere/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	memberRepo *repositories.MemberRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	memberRepo *repositories.MemberRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail checks email format
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewBadRequestError("Email cannot be empty")
	}

	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(email)) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Email format is invalid")
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Password must be at least %d characters long", validation.PasswordMinLength))
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"Password must contain at least one letter and one digit")
	}

	return nil
}

// Register creates a new member account and returns an authenticated session
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.logger.Debug().Str("email", req.Email).Msg("Registering new member")

	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.memberRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	member := &models.Member{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleType:     models.RoleMember,
		Major:        req.Major,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	token, err := s.generateTokenResponse(ctx, member)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *token,
		User:  toMemberResponse(member),
	}, nil
}

// Login authenticates a member with email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	s.logger.Debug().Str("email", req.Email).Msg("Member logging in")

	if err := s.validateEmail(req.Email); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	member, err := s.memberRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		// Same error regardless of whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(member.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(ctx, member)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *token,
		User:  toMemberResponse(member),
	}, nil
}

// RefreshToken creates a new token pair using a refresh token. The old
// refresh token is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, expiresAt, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if expiresAt.Before(time.Now()) {
		_ = s.tokenRepo.RevokeToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	member, err := s.memberRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error loading member: %w", err)
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, member)
}

// Logout revokes all of the member's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	s.logger.Debug().Int64("userID", userID).Msg("Member logging out")
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// generateTokenResponse creates and persists a token pair for the member
func (s *AuthService) generateTokenResponse(ctx context.Context, member *models.Member) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(member)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, member.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

func toMemberResponse(member *models.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:        member.ID,
		Email:     member.Email,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Role:      string(member.RoleType),
		Major:     member.Major,
		AvatarURL: member.AvatarURL,
		CreatedAt: member.CreatedAt,
	}
}
