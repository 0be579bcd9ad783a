package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a single entry in a post's append-only comment list.
// Insertion order is display order.
type Comment struct {
	Username string `bson:"username" json:"username"`
	Text     string `bson:"text" json:"text"`
}

// Post is a feed item. The author's username is denormalized at creation
// time and never re-synced; likes hold at most one entry per username.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Text      string             `bson:"text" json:"text"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Likes     []string           `bson:"likes" json:"likes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
