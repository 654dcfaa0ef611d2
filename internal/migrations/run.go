// Package migrations применяет миграции golang-migrate к выбранному хранилищу.
//
// Для PostgreSQL это схема таблицы users, для MongoDB — уникальные индексы
// по email и mobile. Именно индексы, а не проверка в сервисе, гарантируют
// отсутствие дублей при конкурентных регистрациях.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Подкаталоги с миграциями для каждого драйвера.
const (
	MongoDir    = "mongodb"
	PostgresDir = "postgres"
)

// RunPostgres применяет SQL-миграции из path/postgres.
func RunPostgres(db *sql.DB, path string) error {
	const op = "migrations.RunPostgres"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance(
		sourceURL(path, PostgresDir),
		"pgx_v5",
		driver,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return up(op, m)
}

// RunMongo применяет JSON-миграции из path/mongodb к базе database.
func RunMongo(uri, database, path string) error {
	const op = "migrations.RunMongo"

	dbURL, err := MongoDatabaseURL(uri, database)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.New(sourceURL(path, MongoDir), dbURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = m.Close()
	}()
	return up(op, m)
}

// MongoDatabaseURL подставляет имя базы в путь URI: драйвер migrate берёт базу оттуда.
func MongoDatabaseURL(uri, database string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("unsupported mongo uri scheme %q", u.Scheme)
	}
	if database == "" {
		database = strings.TrimPrefix(u.Path, "/")
	}
	if database == "" {
		return "", errors.New("mongo database name is empty")
	}
	u.Path = "/" + database
	return u.String(), nil
}

func sourceURL(path, dir string) string {
	return "file://" + filepath.ToSlash(filepath.Join(path, dir))
}

func up(op string, m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
