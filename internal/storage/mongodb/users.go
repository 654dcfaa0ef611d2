package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/profile-service/internal/models"
	"github.com/magabrotheeeer/profile-service/internal/storage"
)

// userDocument — представление пользователя в коллекции.
type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password,omitempty"`
	Mobile       string        `bson:"mobile"`
}

// withoutPassword — проекция, исключающая хеш пароля.
var withoutPassword = bson.M{"password": 0}

func toDocument(u models.User) userDocument {
	return userDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Mobile:       u.Mobile,
	}
}

func fromDocument(d userDocument) models.User {
	return models.NewUser(d.Name, d.Email, d.PasswordHash, d.Mobile).WithID(d.ID.Hex())
}

// FindByID возвращает пользователя без хеша пароля.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.mongodb.FindByID"

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return s.findOne(ctx, op, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword))
}

// FindByEmailOrMobile ищет пользователя, у которого совпадает email или mobile.
func (s *Storage) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	const op = "storage.mongodb.FindByEmailOrMobile"

	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"mobile": mobile},
	}}
	return s.findOne(ctx, op, filter, options.FindOne().SetProjection(withoutPassword))
}

// FindByEmail возвращает пользователя вместе с хешем пароля.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongodb.FindByEmail"
	return s.findOne(ctx, op, bson.M{"email": email}, options.FindOne())
}

// Save вставляет нового пользователя и возвращает его с назначенным ID.
func (s *Storage) Save(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.mongodb.Save"

	res, err := s.users.InsertOne(ctx, toDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	saved := user.WithID(oid.Hex())
	return &saved, nil
}

// ListAll возвращает всех пользователей без хешей паролей в порядке создания.
func (s *Storage) ListAll(ctx context.Context) ([]models.User, error) {
	const op = "storage.mongodb.ListAll"

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []userDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, fromDocument(d))
	}
	return users, nil
}

func (s *Storage) findOne(ctx context.Context, op string, filter any, opts *options.FindOneOptionsBuilder) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := fromDocument(doc)
	return &user, nil
}
