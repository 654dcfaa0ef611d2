// Package users содержит бизнес-логику работы с пользователями:
// регистрацию, чтение через кеш, список и вход по email и паролю.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
	"github.com/magabrotheeeer/profile-service/internal/lib/validation"
	"github.com/magabrotheeeer/profile-service/internal/models"
	"github.com/magabrotheeeer/profile-service/internal/storage"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	// FindByID возвращает пользователя без хеша пароля.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindByEmailOrMobile ищет пользователя, у которого совпадает email или телефон.
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)
	// FindByEmail возвращает пользователя вместе с хешем пароля.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Save сохраняет пользователя и возвращает его с назначенным ID.
	Save(ctx context.Context, user models.User) (*models.User, error)
	// ListAll возвращает всех пользователей без хешей паролей.
	ListAll(ctx context.Context) ([]models.User, error)
}

// Cache описывает кеш пользователей. Методы не возвращают ошибок.
type Cache interface {
	GetUser(ctx context.Context, id string) (*models.PublicUser, bool)
	SetUser(ctx context.Context, user models.PublicUser)
	GetUserList(ctx context.Context) ([]models.PublicUser, bool)
	SetUserList(ctx context.Context, users []models.PublicUser)
	InvalidateUserList(ctx context.Context)
}

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer выпускает токены доступа.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// Publisher отправляет событие о новом пользователе.
type Publisher interface {
	PublishUserCreated(ctx context.Context, user models.PublicUser) error
}

// Service реализует операции над пользователями.
type Service struct {
	repo      Repository
	cache     Cache
	hasher    Hasher
	tokens    TokenIssuer
	publisher Publisher
	validator *validation.Validator
	log       *slog.Logger
}

// NewService создает Service. publisher может быть nil, тогда события не отправляются.
func NewService(repo Repository, cache Cache, hasher Hasher, tokens TokenIssuer, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		validator: validation.New(),
		log:       log,
	}
}

// CreateUser регистрирует пользователя и возвращает его публичное представление.
func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.PublicUser, error) {
	const op = "users.CreateUser"

	if err := newValidationError(s.validator.Struct(req)); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmailOrMobile(ctx, req.Email, req.Mobile)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicate
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return nil, internal(op, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, internal(op, err)
	}

	saved, err := s.repo.Save(ctx, models.NewUser(req.Name, req.Email, hash, req.Mobile))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, internal(op, err)
	}

	user := saved.Public()
	s.log.Info("user created", slog.String("id", user.ID))

	s.cache.SetUser(ctx, user)
	s.cache.InvalidateUserList(ctx)

	if s.publisher != nil {
		if err := s.publisher.PublishUserCreated(ctx, user); err != nil {
			s.log.Warn("failed to publish user.created", slog.String("id", user.ID), sl.Err(err))
		}
	}

	return &user, nil
}

// GetUser возвращает пользователя по ID, сначала заглядывая в кеш.
func (s *Service) GetUser(ctx context.Context, id string) (*models.PublicUser, error) {
	const op = "users.GetUser"

	if err := newValidationError(s.validator.Struct(models.GetUserRequest{ID: id})); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetUser(ctx, id); ok {
		return cached, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal(op, err)
	}

	user := found.Public()
	s.cache.SetUser(ctx, user)
	return &user, nil
}

// ListUsers возвращает всех пользователей. Пустой результат — пустой срез, не nil.
func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	const op = "users.ListUsers"

	if cached, ok := s.cache.GetUserList(ctx); ok {
		return cached, nil
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, internal(op, err)
	}

	list := models.PublicUsers(all)
	s.cache.SetUserList(ctx, list)
	return list, nil
}

// Login проверяет учётные данные и выпускает токен доступа.
// Неизвестный email и неверный пароль дают одну и ту же ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	const op = "users.Login"

	if err := newValidationError(s.validator.Struct(req)); err != nil {
		return "", err
	}
	if utf8.RuneCountInString(req.Password) < validation.MinPasswordLength {
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", internal(op, err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", internal(op, err)
	}
	return token, nil
}

func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
