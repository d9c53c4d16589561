package auth

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/jchung150/Expense-Classification/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotApproved    = errors.New("account has not been approved yet")
	ErrInternalError      = errors.New("internal server error")
)

type Service interface {
	Login(loginOrEmail, password string) (string, *user.User, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	RequireRole(roles ...string) func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login verifies the password, rejects unapproved accounts before issuing
// anything, and returns a signed access token carrying the user's role.
func (s *service) Login(loginOrEmail, password string) (string, *user.User, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(loginOrEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !existingUser.IsApproved {
		return "", nil, ErrUserNotApproved
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, existingUser.Role, defaultJWTDuration)
	if err != nil {
		return "", nil, ErrInternalError
	}
	return token, existingUser, nil
}
