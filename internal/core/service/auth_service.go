package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// AuthService implements registration, login and session resolution.
//
// Accounts hold a single token. A token is honoured only while it is the one
// stored on the account, so each login ends the previous session.
type AuthService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger, now: time.Now}
}

// Register creates a pending NGO account with a fresh token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	addr := in.Address
	account := &domain.Account{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(in.Name),
		Email:              domain.NormalizeEmail(in.Email),
		PasswordHash:       hash,
		ContactPhone:       strings.TrimSpace(in.ContactPhone),
		Description:        strings.TrimSpace(in.Description),
		Role:               domain.RoleNGO,
		Status:             domain.AccountPending,
		RescueCategories:   in.RescueCategories,
		RescueDistance:     in.RescueDistance,
		ServiceHours:       strings.TrimSpace(in.ServiceHours),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Address:            &addr,
		Location:           in.Location,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}
	account.Token = token

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("email", created.Email).Msg("ngo registered")
	return created, nil
}

// Login checks credentials and rotates the account's token. Unknown email,
// wrong password and wrong role are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if in.Role != "" && account.Role != in.Role {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.SetToken(ctx, account.ID, token); err != nil {
		return "", nil, fmt.Errorf("login: store token: %w", err)
	}
	account.Token = token

	s.logger.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return token, account, nil
}

func (s *AuthService) Logout(ctx context.Context, accountID string) error {
	if err := s.repo.SetToken(ctx, accountID, ""); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Profile returns the account that currently holds token.
func (s *AuthService) Profile(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	if sub, _ := claims.GetSubject(); sub != account.ID {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

// Authenticate resolves a bearer token into a session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	account, err := s.Profile(ctx, token)
	if err != nil {
		return nil, err
	}
	return domain.NewSession(account)
}

// EnsureSuperAdmin creates the bootstrap super admin when it does not exist yet.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, name, email, password string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleSuperAdmin {
			return fmt.Errorf("ensure super admin: %s is registered with role %s", email, existing.Role)
		}
		return nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return fmt.Errorf("ensure super admin: %w", err)
	}

	if err := validateCredentials(email, password); err != nil {
		return fmt.Errorf("ensure super admin: %w", err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Super Admin"
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Status:       domain.AccountApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil
		}
		return fmt.Errorf("ensure super admin: %w", err)
	}

	s.logger.Info().Str("account_id", created.ID).Str("email", email).Msg("super admin created")
	return nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"role": string(account.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
