package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/infrastructure/auth"
)

// PreferenceSeeder creates a default preference record for a new account
type PreferenceSeeder interface {
	CreateDefaults(ctx context.Context, userID uuid.UUID) error
}

// UserService handles account registration and profile management
type UserService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	seeder     PreferenceSeeder
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// UserServiceOption configures optional UserService collaborators
type UserServiceOption func(*UserService)

// WithUserEventPublisher makes the service publish aggregate events after
// a successful save
func WithUserEventPublisher(publisher shared.EventPublisher) UserServiceOption {
	return func(s *UserService) {
		s.publisher = publisher
	}
}

// NewUserService creates a new user service. seeder may be nil.
func NewUserService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	seeder PreferenceSeeder,
	logger *zap.Logger,
	opts ...UserServiceOption,
) *UserService {
	s := &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		seeder:     seeder,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.publisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	user.ClearDomainEvents()
}

// Register creates a new account and logs it in
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		if err := user.SetName(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	// A fresh account starts with the default discovery settings. Failure
	// here is not fatal, defaults are also materialized lazily on first save.
	if s.seeder != nil {
		if err := s.seeder.CreateDefaults(ctx, user.ID); err != nil {
			s.logger.Error("Failed to seed default preferences",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Username:    user.Username,
		IsOrganizer: user.IsOrganizer,
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens after registration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		TokenResponse: toTokenResponse(pair),
		User:          ToUserResponse(user),
	}, nil
}

// GetProfile returns a user's profile by id
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the non-nil fields of the request
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Avatar != nil {
		if err := user.SetAvatar(*req.Avatar); err != nil {
			return nil, err
		}
	}
	if req.Bio != nil {
		user.SetBio(*req.Bio)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
