package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`

	Timestamp
}

type Family struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `json:"name"`

	Members []*FamilyMember `gorm:"foreignKey:FamilyID"`
	Timestamp
}

type FamilyMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FamilyID uuid.UUID `gorm:"index" json:"family_id"`
	UserID   uuid.UUID `gorm:"index" json:"user_id"`
	Role     string    `json:"role"` // Owner, Member

	Family *Family `gorm:"foreignKey:FamilyID"`
	User   *User   `gorm:"foreignKey:UserID"`
	Timestamp
}
