package user

import (
	"errors"
	"fmt"
	"log"
	"os"
)

const (
	seedAdminEmail      = "aa@aa.aa"
	seedMemberEmail     = "mm@mm.mm"
	defaultSeedPassword = "P@$$w0rd"
)

// Seed creates the bootstrap admin and member accounts. It is idempotent:
// each entity is checked before it is created, so calling it on every start is
// safe. An admin found unapproved is re-approved.
func Seed(repo Repository) error {
	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = defaultSeedPassword
	}

	admin, err := ensureUser(repo, seedAdminEmail, "admin", password, RoleAdmin, true)
	if err != nil {
		return err
	}
	if !admin.IsApproved {
		if err := repo.updateApproval(admin.ID, true); err != nil {
			return fmt.Errorf("could not approve seeded admin: %v", err)
		}
		log.Printf("Re-approved seeded admin %s", admin.Email)
	}

	if _, err := ensureUser(repo, seedMemberEmail, "member", password, RoleMember, false); err != nil {
		return err
	}
	return nil
}

func ensureUser(repo Repository, email, login, password, role string, approved bool) (*User, error) {
	existing, err := repo.getUserByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash seed password: %v", err)
	}
	seeded := &User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		IsApproved:   approved,
	}
	if err := repo.createUser(seeded); err != nil {
		return nil, err
	}
	log.Printf("Seeded user %s (%s)", seeded.Email, seeded.Role)
	return seeded, nil
}
