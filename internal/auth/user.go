package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role values mirror the user-directory records. TeamID is meaningful only
// for TECHNICIAN and MANAGER users.
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleTechnician = "TECHNICIAN"
	RoleEmployee   = "EMPLOYEE"
)

type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	TeamID     *int64 `json:"maintenance_team_id,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// IsPrivileged reports whether the user holds one of the roles allowed to
// mutate equipment, teams and assignments.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func (u *User) BelongsToTeam(teamID int64) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
