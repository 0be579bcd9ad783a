package posts

import (
	"context"
	"errors"
	"time"

	"github.com/openclique/feedline/internal/domain"
	"github.com/openclique/feedline/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "posts"

type Mongo struct {
	col    *mongo.Collection
	logger logger.Logger
}

func NewMongo(db *mongo.Database, logger logger.Logger) *Mongo {
	return &Mongo{
		col:    db.Collection(collectionName),
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Mongo)(nil)

// Create persists a new post and returns it with its assigned id
// and creation timestamp.
func (m *Mongo) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}

	if _, err := m.col.InsertOne(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// GetAll returns every post, newest first.
func (m *Mongo) GetAll(ctx context.Context) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns a single post by its hex id.
func (m *Mongo) GetByID(ctx context.Context, id string) (domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Post{}, ErrNotFound
	}

	var post domain.Post
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// AddLike adds username to the post's like set via $addToSet, which keeps
// the set invariant even under concurrent toggles on the same post.
func (m *Mongo) AddLike(ctx context.Context, id string, username string) (int, error) {
	return m.updateLikes(ctx, id, bson.M{"$addToSet": bson.M{"likes": username}})
}

// RemoveLike removes username from the post's like set via $pull.
func (m *Mongo) RemoveLike(ctx context.Context, id string, username string) (int, error) {
	return m.updateLikes(ctx, id, bson.M{"$pull": bson.M{"likes": username}})
}

func (m *Mongo) updateLikes(ctx context.Context, id string, update bson.M) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post domain.Post
	err = m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return len(post.Likes), nil
}

// AddComment appends a comment to the post's comment list via $push.
func (m *Mongo) AddComment(ctx context.Context, id string, comment domain.Comment) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a post.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
