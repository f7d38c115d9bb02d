package user

import (
	"time"

	"go-fieldops/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a directory record. Exactly one permission set per user; the
// developer role always carries the full set.
type User struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name        string                 `bson:"name" json:"name"`
	Email       string                 `bson:"email" json:"email"`
	Password    string                 `bson:"password" json:"-"`
	Role        permission.Role        `bson:"role" json:"role"`
	Avatar      string                 `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Permissions permission.Permissions `bson:"permissions" json:"permissions"`
	IsActive    bool                   `bson:"is_active" json:"isActive"`
	// Reference into the external identity provider, unused until the
	// hosted auth integration lands.
	ExternalID string    `bson:"external_id,omitempty" json:"externalId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// Can reports whether the user holds the capability.
func (u *User) Can(flag permission.Flag) bool {
	if u == nil {
		return false
	}
	return u.Permissions.Has(flag)
}

// IsDeveloper is the gate used by every directory mutation.
func (u *User) IsDeveloper() bool {
	return u != nil && u.Role == permission.RoleDeveloper
}

type CreateUserInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     permission.Role `json:"role"`
	Avatar   string          `json:"avatar"`
}

// UpdateUserInput carries partial updates; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email"`
	Avatar   *string          `json:"avatar"`
	Role     *permission.Role `json:"role"`
	IsActive *bool            `json:"isActive"`
}
