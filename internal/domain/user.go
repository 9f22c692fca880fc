package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account provisioned by the identity provider's webhook.
// Users are never created or deleted through this API directly.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID string             `bson:"externalId" json:"externalId"` // identity-provider user id, unique
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	AvatarURL  string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
