// Package models содержит доменную модель пользователя и структуры,
// в которые декодируются JSON-запросы до валидации.
package models

// User — учётная запись пользователя.
//
// Значение не меняется после создания: NewUser собирает запись из всех
// обязательных полей, WithID и Public возвращают копии.
type User struct {
	ID           string `json:"id"`     // Идентификатор, назначается хранилищем
	Name         string `json:"name"`   // Имя
	Email        string `json:"email"`  // Электронная почта (уникальна)
	PasswordHash string `json:"-"`      // bcrypt-хеш, никогда не сериализуется
	Mobile       string `json:"mobile"` // Мобильный телефон с кодом страны (уникален)
}

// NewUser создает ещё не сохранённого пользователя.
func NewUser(name, email, passwordHash, mobile string) User {
	return User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Mobile:       mobile,
	}
}

// WithID возвращает копию пользователя с назначенным идентификатором.
func (u User) WithID(id string) User {
	u.ID = id
	return u
}

// Public возвращает представление пользователя без хеша пароля.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
	}
}

// PublicUser — то, что уходит клиенту и в кеш.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

// PublicUsers переводит список пользователей в публичное представление.
// Пустой вход даёт пустой (не nil) срез, чтобы в JSON получался [].
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// CreateUserRequest — тело запроса на создание пользователя.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Mobile   string `json:"mobile" validate:"required,mobile"`
}

// LoginRequest — тело запроса на вход.
//
// Длина пароля здесь не проверяется: слишком короткий пароль просто
// не совпадёт ни с одним сохранённым и даст ту же ошибку учётных данных.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GetUserRequest — параметры запроса пользователя по идентификатору.
type GetUserRequest struct {
	ID string `json:"id" validate:"required,objectid"`
}
