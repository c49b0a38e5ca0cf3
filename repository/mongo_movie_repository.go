// file: repository/mongo_movie_repository.go

package repository

import (
	"context"
	"errors"
	"movie-api/logger"
	"movie-api/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const moviesCollection = "movies"

type genreDocument struct {
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
}

type directorDocument struct {
	Name  string `bson:"name"`
	Bio   string `bson:"bio,omitempty"`
	Birth string `bson:"birth,omitempty"`
	Death string `bson:"death,omitempty"`
}

type movieDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Year        int                `bson:"year,omitempty"`
	Description string             `bson:"description,omitempty"`
	Genre       genreDocument      `bson:"genre"`
	Director    directorDocument   `bson:"director"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	Featured    bool               `bson:"featured"`
}

func toMovieDocument(m *model.Movie) movieDocument {
	return movieDocument{
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Genre:       genreDocument(m.Genre),
		Director:    directorDocument(m.Director),
		ImageURL:    m.ImageURL,
		Featured:    m.Featured,
	}
}

func (d movieDocument) toModel() *model.Movie {
	return &model.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Year:        d.Year,
		Description: d.Description,
		Genre:       model.Genre(d.Genre),
		Director:    model.Director(d.Director),
		ImageURL:    d.ImageURL,
		Featured:    d.Featured,
	}
}

// moviePatchUpdate translates a patch into a $set document.
func moviePatchUpdate(p model.MoviePatch) bson.D {
	set := bson.D{}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Year != nil {
		set = append(set, bson.E{Key: "year", Value: *p.Year})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: genreDocument(*p.Genre)})
	}
	if p.Director != nil {
		set = append(set, bson.E{Key: "director", Value: directorDocument(*p.Director)})
	}
	if p.ImageURL != nil {
		set = append(set, bson.E{Key: "imageUrl", Value: *p.ImageURL})
	}
	if p.Featured != nil {
		set = append(set, bson.E{Key: "featured", Value: *p.Featured})
	}
	return bson.D{{Key: "$set", Value: set}}
}

// MongoMovieRepository implements IMovieRepository on a MongoDB collection.
type MongoMovieRepository struct {
	collection *mongo.Collection
}

func NewMongoMovieRepository(db *mongo.Database) *MongoMovieRepository {
	return &MongoMovieRepository{collection: db.Collection(moviesCollection)}
}

func (r *MongoMovieRepository) List(ctx context.Context) ([]*model.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to query movies")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Log.WithError(err).Error("Failed to decode movies")
		return nil, err
	}

	movies := make([]*model.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toModel())
	}
	return movies, nil
}

func (r *MongoMovieRepository) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc movieDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("movie_id", id).Error("Failed to find movie")
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	doc := toMovieDocument(movie)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		logger.Log.WithError(err).WithField("title", movie.Title).Error("Failed to insert movie")
		return err
	}
	movie.ID = doc.ID.Hex()
	return nil
}

func (r *MongoMovieRepository) Update(ctx context.Context, id string, patch model.MoviePatch) (*model.Movie, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc movieDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, moviePatchUpdate(patch), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("movie_id", id).Error("Failed to update movie")
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoMovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Log.WithError(err).WithField("movie_id", id).Error("Failed to delete movie")
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMovieRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}
