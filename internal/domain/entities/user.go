package entities

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// User is the authenticated principal. Password holds the bcrypt hash once
// HashPassword has run; until then it carries the plaintext supplied at
// construction, so hashing is an explicit step before persisting.
type User struct {
	ID                   uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Name                 string
	Email                string
	Photo                string
	Role                 Role
	Password             string
	PasswordChangedAt    *time.Time
	PasswordResetToken   string
	PasswordResetExpires *time.Time
	Active               bool
}

func NewUser(name, email, password string, role Role) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     strings.ToLower(email),
		Role:      role,
		Password:  password,
		Active:    true,
	}
}

func (u *User) validate() error {
	if u.Name == "" {
		return errors.New("a user must have a name")
	}
	if u.Email == "" {
		return errors.New("a user must have an email")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("please provide a valid email")
	}
	if !u.Role.Valid() {
		return errors.New("role is either: user, guide, lead-guide, admin")
	}
	if u.Password == "" {
		return errors.New("please provide a password")
	}
	return nil
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// SetPassword replaces the credential and marks the change one second in the
// past so a token signed in the same instant is still accepted.
func (u *User) SetPassword(password string) error {
	u.Password = password
	if err := u.HashPassword(); err != nil {
		return err
	}
	changedAt := time.Now().Add(-time.Second)
	u.PasswordChangedAt = &changedAt
	u.UpdatedAt = time.Now()
	return nil
}

// ChangedPasswordAfter reports whether the credential changed after the
// given token issue time. Such tokens are stale and must be rejected.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}

// CreatePasswordResetToken generates the reset pre-image, stores only its
// sha256 on the user and returns the plaintext to be mailed out-of-band.
func (u *User) CreatePasswordResetToken(ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	u.PasswordResetToken = HashResetToken(token)
	expires := time.Now().Add(ttl)
	u.PasswordResetExpires = &expires
	return token, nil
}

func (u *User) ClearPasswordResetToken() {
	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil
}

func (u *User) ResetTokenExpired(now time.Time) bool {
	return u.PasswordResetExpires == nil || now.After(*u.PasswordResetExpires)
}

func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

func (u *User) UpdateProfile(name, email, photo string) {
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = strings.ToLower(email)
	}
	if photo != "" {
		u.Photo = photo
	}
	u.UpdatedAt = time.Now()
}

// HashResetToken is the one-way mapping from a reset pre-image to the value
// persisted on the user.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
