package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/identity"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"github.com/lewisgroup/storefront/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles account and authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	basketRepo basket.Repository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	basketRepo basket.Repository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		basketRepo: basketRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger.Named("identity"),
	}
}

// Register creates a new member account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if req.Address != nil {
		if err := user.SetAddress(req.Address.toDomain()); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login authenticates an account and returns a token pair. An anonymous
// basket carried on the request supersedes any basket already stored
// against the account.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login for unknown username", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	if req.AnonymousBuyerID != "" {
		if err := s.mergeBasket(ctx, req.AnonymousBuyerID, user.Username); err != nil {
			// The buyer can still shop; losing the merge is not worth failing login
			s.logger.Warn("Failed to merge anonymous basket",
				zap.String("username", user.Username), zap.Error(err))
		}
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// mergeBasket re-keys the anonymous basket to the username, discarding any
// basket already stored against the account
func (s *AuthService) mergeBasket(ctx context.Context, anonymousBuyerID, username string) error {
	anon, err := s.basketRepo.FindByBuyerID(ctx, anonymousBuyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	existing, err := s.basketRepo.FindByBuyerID(ctx, username)
	if err == nil {
		if err := s.basketRepo.Delete(ctx, existing.ID); err != nil {
			return err
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if err := anon.RekeyTo(username); err != nil {
		return err
	}
	return s.basketRepo.Save(ctx, anon)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(refreshToken, user.Username, string(user.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}

	return &RefreshResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token via the blacklist
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentUser returns the account behind the authenticated user ID
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the account's username and/or email, enforcing
// uniqueness of both
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
		}
		if err := user.SetUsername(*req.Username); err != nil {
			return nil, err
		}
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("user_id", userID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetAddress returns the account's saved shipping address
func (s *AuthService) GetAddress(ctx context.Context, userID uuid.UUID) (*AddressDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasAddress() {
		return nil, shared.ErrNotFound
	}
	addr := ToAddressDTO(user.Address)
	return &addr, nil
}

// SaveAddress stores the account's shipping address
func (s *AuthService) SaveAddress(ctx context.Context, userID uuid.UUID, req AddressDTO) (*AddressDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetAddress(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	addr := ToAddressDTO(user.Address)
	return &addr, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
