// Package auth содержит бизнес-логику регистрации, входа и проверки токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vpetrukhin/user-hub/internal/lib/jwt"
	"github.com/vpetrukhin/user-hub/internal/lib/password"
	"github.com/vpetrukhin/user-hub/internal/lib/timestamp"
	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/repository"
)

// TokenType тип выпускаемых токенов, попадает в ответ login как token_type.
const TokenType = "bearer"

var (
	// ErrUserExists пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound subject токена не указывает на существующего пользователя.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя и возвращает его user_uuid.
	SaveUser(ctx context.Context, user *models.User) (int, error)

	// GetUser возвращает пользователя по user_uuid.
	GetUser(ctx context.Context, userUUID int) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и проверку JWT.
type AuthService struct {
	users      UserRepository
	access     jwt.Maker
	refresh    jwt.Maker
	bcryptCost int
	loc        *time.Location
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, access, refresh jwt.Maker, bcryptCost int, loc *time.Location) *AuthService {
	return &AuthService{
		users:      users,
		access:     access,
		refresh:    refresh,
		bcryptCost: bcryptCost,
		loc:        loc,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Предварительная проверка email даёт быстрый отказ, но гарантию уникальности
// обеспечивает индекс хранилища: дубликат на вставке тоже даёт ErrUserExists.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	const op = "services.auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := timestamp.Now(s.loc)
	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		NationalID:   req.NationalID,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login проверяет пароль пользователя и выпускает пару токенов:
// короткий access и длинный refresh, подписанные разными секретами.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (accessToken, refreshToken string, err error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	subject := strconv.Itoa(user.UserUUID)
	accessToken, err = s.access.GenerateToken(subject)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	refreshToken, err = s.refresh.GenerateToken(subject)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return accessToken, refreshToken, nil
}

// Refresh обменивает действительный refresh-токен на новый access-токен.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "services.auth.Refresh"
	claims, err := s.refresh.ParseToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.subjectUser(ctx, claims.Subject); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	accessToken, err := s.access.GenerateToken(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return accessToken, nil
}

// CurrentUser проверяет access-токен и возвращает его владельца.
//
// Отказы различимы: истёкший токен — jwt.ErrTokenExpired, повреждённый или
// подделанный — jwt.ErrInvalidToken, отсутствующий пользователь — ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.CurrentUser"
	claims, err := s.access.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.subjectUser(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) subjectUser(ctx context.Context, subject string) (*models.User, error) {
	userUUID, err := strconv.Atoi(subject)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	user, err := s.users.GetUser(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
