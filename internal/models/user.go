package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role determines which workflow transitions an actor may perform.
type Role string

const (
	RoleDriver        Role = "driver"
	RoleDistributor   Role = "distributor" // head mechanic on some screens
	RoleMaintenance   Role = "maintenance"
	RoleInspector     Role = "inspector"
	RoleMechanic      Role = "mechanic"
	RoleHeadMechanic  Role = "head_mechanic"
	RoleNezekOfficial Role = "nezek_official"
	RoleAdmin         Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleDistributor, RoleMaintenance, RoleInspector,
		RoleMechanic, RoleHeadMechanic, RoleNezekOfficial, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" validate:"required"`
	FullName  string             `json:"fullName" bson:"full_name"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role" validate:"required"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Actor is the authenticated identity a handler passes into the workflow
// layer. Claims are resolved by the auth middleware; nothing downstream
// touches the token.
type Actor struct {
	UserID primitive.ObjectID
	Name   string
	Role   Role
}
