package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// Role grants a user member or admin capabilities
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Password cost for bcrypt
const bcryptCost = 12

// Address is a buyer's saved shipping destination
type Address struct {
	FullName string `gorm:"type:varchar(100)" json:"full_name"`
	Address1 string `gorm:"type:varchar(200)" json:"address1"`
	Address2 string `gorm:"type:varchar(200)" json:"address2"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	State    string `gorm:"type:varchar(100)" json:"state"`
	Zip      string `gorm:"type:varchar(20)" json:"zip"`
	Country  string `gorm:"type:varchar(100)" json:"country"`
}

// User is the aggregate root for store accounts
type User struct {
	shared.BaseAggregateRoot
	Username     string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string  `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(200);not null"`
	Role         Role    `gorm:"type:varchar(20);not null;default:'member'"`
	Address      Address `gorm:"embedded;embeddedPrefix:addr_"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a member account with a hashed password
func NewUser(username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.TrimSpace(username),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      hash,
		Role:              RoleMember,
	}, nil
}

// NewAdmin creates an account carrying the admin role
func NewAdmin(username, email, password string) (*User, error) {
	u, err := NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	u.Role = RoleAdmin
	return u, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetEmail updates the account email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.touch()
	return nil
}

// SetUsername updates the account username
func (u *User) SetUsername(username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = strings.TrimSpace(username)
	u.touch()
	return nil
}

// SetAddress stores the buyer's shipping address
func (u *User) SetAddress(addr Address) error {
	if addr.FullName == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address full name cannot be empty")
	}
	u.Address = addr
	u.touch()
	return nil
}

// HasAddress reports whether a shipping address has been saved
func (u *User) HasAddress() bool {
	return u.Address.FullName != ""
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	numberRegex   = regexp.MustCompile(`[0-9]`)
)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	if !letterRegex.MatchString(password) || !numberRegex.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
