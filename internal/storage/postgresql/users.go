package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/magabrotheeeer/profile-service/internal/models"
	"github.com/magabrotheeeer/profile-service/internal/storage"
)

const uniqueViolation = "23505"

// FindByID возвращает пользователя без хеша пароля.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgresql.FindByID"

	query := `SELECT id, name, email, mobile
			  FROM users
			  WHERE id = $1`
	return scanPublic(op, s.DB.QueryRowContext(ctx, query, strings.ToLower(id)))
}

// FindByEmailOrMobile ищет пользователя, у которого совпадает email или mobile.
func (s *Storage) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	const op = "storage.postgresql.FindByEmailOrMobile"

	query := `SELECT id, name, email, mobile
			  FROM users
			  WHERE email = $1 OR mobile = $2
			  LIMIT 1`
	return scanPublic(op, s.DB.QueryRowContext(ctx, query, email, mobile))
}

// FindByEmail возвращает пользователя вместе с хешем пароля.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgresql.FindByEmail"

	query := `SELECT id, name, email, password_hash, mobile
			  FROM users
			  WHERE email = $1`
	var id, name, mail, hash, mobile string
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&id, &name, &mail, &hash, &mobile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := models.NewUser(name, mail, hash, mobile).WithID(id)
	return &u, nil
}

// Save вставляет нового пользователя и возвращает его с назначенным ID.
func (s *Storage) Save(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.postgresql.Save"

	query := `INSERT INTO users (id, name, email, password_hash, mobile)
			  VALUES ($1, $2, $3, $4, $5)`
	saved := user.WithID(bson.NewObjectID().Hex())
	_, err := s.DB.ExecContext(ctx, query,
		saved.ID, saved.Name, saved.Email, saved.PasswordHash, saved.Mobile)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &saved, nil
}

// ListAll возвращает всех пользователей без хешей паролей в порядке создания.
func (s *Storage) ListAll(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgresql.ListAll"

	query := `SELECT id, name, email, mobile
			  FROM users
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]models.User, 0)
	for rows.Next() {
		var id, name, email, mobile string
		if err = rows.Scan(&id, &name, &email, &mobile); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, models.NewUser(name, email, "", mobile).WithID(id))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func scanPublic(op string, row *sql.Row) (*models.User, error) {
	var id, name, email, mobile string
	err := row.Scan(&id, &name, &email, &mobile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := models.NewUser(name, email, "", mobile).WithID(id)
	return &u, nil
}
