// file: repository/mongo_user_repository.go

package repository

import (
	"context"
	"errors"
	"movie-api/logger"
	"movie-api/model"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Password       string             `bson:"password"`
	Email          string             `bson:"email"`
	Birthday       *time.Time         `bson:"birthday,omitempty"`
	FavoriteMovies []string           `bson:"favoriteMovies"`
}

func (d userDocument) toModel() *model.User {
	favorites := d.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return &model.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Password:       d.Password,
		Email:          d.Email,
		Birthday:       d.Birthday,
		FavoriteMovies: favorites,
	}
}

func userPatchUpdate(p model.UserPatch) bson.D {
	set := bson.D{}
	if p.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *p.Username})
	}
	if p.Password != nil {
		set = append(set, bson.E{Key: "password", Value: *p.Password})
	}
	if p.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *p.Email})
	}
	if p.Birthday != nil {
		set = append(set, bson.E{Key: "birthday", Value: *p.Birthday})
	}
	return bson.D{{Key: "$set", Value: set}}
}

// MongoUserRepository implements IUserRepository on a MongoDB collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique username index that backs registration conflicts.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	return err
}

func (r *MongoUserRepository) List(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to query users")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Log.WithError(err).Error("Failed to decode users")
		return nil, err
	}

	users := make([]*model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("username", username).Error("Failed to find user")
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}
	doc := userDocument{
		ID:             primitive.NewObjectID(),
		Username:       user.Username,
		Password:       user.Password,
		Email:          user.Email,
		Birthday:       user.Birthday,
		FavoriteMovies: user.FavoriteMovies,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		logger.Log.WithError(err).WithField("username", user.Username).Error("Failed to insert user")
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUserRepository) Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, error) {
	if patch.IsEmpty() {
		return r.GetByUsername(ctx, username)
	}
	return r.findOneAndUpdate(ctx, username, userPatchUpdate(patch))
}

func (r *MongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to delete user")
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, username, bson.M{"$addToSet": bson.M{"favoriteMovies": movieID}})
}

func (r *MongoUserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, username, bson.M{"$pull": bson.M{"favoriteMovies": movieID}})
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, username string, update interface{}) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"username": username}, update, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrConflict
		}
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"username": username,
		}).Error("Failed to update user")
		return nil, err
	}
	return doc.toModel(), nil
}
