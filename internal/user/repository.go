package user

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	getUserByID(id string) (*User, error)
	getUserByEmail(email string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	listUsers() ([]User, error)
	updateApproval(userID string, approved bool) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (id, email, login, password_hash, role, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at;
	`
	user.ID = uuid.NewString()
	err := r.db.QueryRow(query, user.ID, user.Email, user.Login, user.PasswordHash, user.Role, user.IsApproved).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}
	return nil
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, role, is_approved, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, role, is_approved, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, role, is_approved, created_at, updated_at
		FROM users
		WHERE login = $1 OR email = $1
	`
	return r.scanUser(r.db.QueryRow(query, loginOrEmail))
}

func (r *userRepository) listUsers() ([]User, error) {
	query := `
		SELECT id, email, login, password_hash, role, is_approved, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %v", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash,
			&user.Role, &user.IsApproved, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan user: %v", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) updateApproval(userID string, approved bool) error {
	query := `
		UPDATE users
		SET is_approved = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.Exec(query, userID, approved)
	if err != nil {
		return fmt.Errorf("could not update approval status: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update approval status: %v", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash,
		&user.Role, &user.IsApproved, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}
