package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account in the system.
// A user may hold one role, whose permissions become the scopes of its tokens,
// and may belong to any number of groups.
type User struct {
	Base
	// Name is the login name. Lookups by name are exact.
	Name string `gorm:"size:100;not null;index" json:"name"`
	// FullName is the display name.
	FullName string `gorm:"size:255;not null" json:"full_name"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null" json:"email"`
	// Password is the password digest. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`
	// IsVerified tells whether the account was verified.
	IsVerified bool `gorm:"not null" json:"is_verified"`
	// VerifiedAt is set when IsVerified turns true.
	VerifiedAt *time.Time `json:"verified_at"`
	// RoleID references the assigned role, if any.
	RoleID *uuid.UUID `gorm:"type:char(36);index" json:"role_id"`
	// Groups the user is a member of.
	Groups []Group `gorm:"many2many:user_group_link;joinForeignKey:UserID;joinReferences:GroupID" json:"groups,omitempty"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// String returns the login name.
func (u *User) String() string {
	return u.Name
}

// NewUser builds an active, unverified user. The password must already be a digest.
func NewUser(name, fullName, email, digest string, roleID *uuid.UUID, groups []Group, now time.Time) User {
	return User{
		Base:     NewBase(now),
		Name:     name,
		FullName: fullName,
		Email:    email,
		Password: digest,
		RoleID:   roleID,
		Groups:   groups,
	}
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
// ClearRole unassigns the role, a nil RoleID alone keeps it.
type UserPatch struct {
	Name       *string
	FullName   *string
	Email      *string
	Password   *string // digest
	IsActive   *bool
	IsVerified *bool
	RoleID     *uuid.UUID
	ClearRole  bool
	Groups     *[]Group
}

// MergeUser applies the patch to a copy of existing and stamps it with now.
// A deleted user stays inactive.
func MergeUser(existing User, p UserPatch, now time.Time) User {
	u := existing
	now = now.UTC()

	if p.Name != nil {
		u.Name = *p.Name
	}

	if p.FullName != nil {
		u.FullName = *p.FullName
	}

	if p.Email != nil {
		u.Email = *p.Email
	}

	if p.Password != nil {
		u.Password = *p.Password
	}

	if p.IsActive != nil && !u.IsDeleted {
		u.IsActive = *p.IsActive
	}

	switch {
	case p.RoleID != nil:
		id := *p.RoleID
		u.RoleID = &id
	case p.ClearRole:
		u.RoleID = nil
	}

	if p.Groups != nil {
		u.Groups = *p.Groups
	}

	if p.IsVerified != nil {
		SetVerified(&u, *p.IsVerified, now)
	}

	u.Touch(now)

	return u
}

// SetVerified records the verification state. VerifiedAt is stamped only when the
// user goes from unverified to verified and cleared when verification is withdrawn.
func SetVerified(u *User, verified bool, now time.Time) {
	switch {
	case verified && !u.IsVerified:
		t := now.UTC()
		u.VerifiedAt = &t
	case !verified:
		u.VerifiedAt = nil
	}

	u.IsVerified = verified
}
