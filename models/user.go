// models/user.go
package models

import "time"

// User is the account record the wizard session is opened for.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Role        Role      `bson:"role" json:"role"`
	HasProfile  bool      `bson:"hasProfile" json:"hasProfile"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionUser is the read-only view of the signed-in user held by a wizard session.
type SessionUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	HasProfile bool   `json:"hasProfile"`
}
