package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/auth"
)

// AuthService handles signup and login. Tokens identify the user only;
// tenant context is attached per request by the tenant resolver.
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	audit      AuditRecorder
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	audit AuditRecorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		audit:      audit,
		logger:     logger,
	}
}

// Signup registers a new user account. The account starts without any
// tenant membership; an admin assigns one afterwards.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.FullName, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, AuditEntry{
		UserID: &user.ID,
		Action: AuditActionUserSignup,
		Detail: user.Email,
	})

	s.logger.Info("user signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := userToResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("login attempt for unknown email", zap.String("email", req.Email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn("login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login already succeeded; only the timestamp is lost.
		s.logger.Error("failed to record login timestamp", zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &AuthResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        userToResponse(user),
	}, nil
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *AuthService) recordAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.String("action", entry.Action), zap.Error(err))
	}
}
