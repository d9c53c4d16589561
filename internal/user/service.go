package user

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 60
	minEmailLength = 3
	minLoginLength = 2
	maxLoginLength = 30
	bcryptCost     = 12

	RoleAdmin  = "admin"
	RoleMember = "member"
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address must be between %d and %d characters", minEmailLength, maxEmailLength)
	ErrLoginLength        = fmt.Errorf("login must be between %d and %d characters", minLoginLength, maxLoginLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// User is an application account. New registrations are members and start
// unapproved; an admin flips the approval flag before the account can log in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Service interface {
	Register(email, login, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByLoginOrEmail(loginOrEmail string) (*User, error)
	ListUsers() ([]User, error)
	ToggleApproval(userID string) (*User, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(email, login, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	login = strings.TrimSpace(login)

	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if len(login) < minLoginLength || len(login) > maxLoginLength {
		return nil, ErrLoginLength
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.getUserByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %v", err)
	}

	newUser := &User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		Role:         RoleMember,
		IsApproved:   false,
	}
	if err := s.repo.createUser(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	return s.repo.getUserByLoginOrEmail(strings.TrimSpace(strings.ToLower(loginOrEmail)))
}

func (s *service) ListUsers() ([]User, error) {
	users, err := s.repo.listUsers()
	if err != nil {
		return nil, err
	}
	if users == nil {
		return []User{}, nil
	}
	return users, nil
}

// ToggleApproval flips the approval flag and persists the new value. Toggling
// twice restores the original state.
func (s *service) ToggleApproval(userID string) (*User, error) {
	existing, err := s.repo.getUserByID(userID)
	if err != nil {
		return nil, err
	}
	existing.IsApproved = !existing.IsApproved
	if err := s.repo.updateApproval(existing.ID, existing.IsApproved); err != nil {
		return nil, err
	}
	log.Printf("User %s approval set to %t", existing.ID, existing.IsApproved)
	return existing, nil
}
