// Package storage содержит общие для всех хранилищ ошибки.
//
// Реализации (mongodb, postgresql) оборачивают их, чтобы сервисный слой
// различал отсутствие записи и нарушение уникальности через errors.Is.
package storage

import "errors"

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate — нарушен уникальный индекс (email или mobile).
	ErrDuplicate = errors.New("record already exists")
)
