package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Register creates a new account with a freshly hashed password. Username and
// email must be unused.
func (s *Service) Register(ctx context.Context, u *User, password string) error {
	if u.FullName == "" || u.Username == "" || u.Email == "" {
		return errs.Invalidf("fullName, username and email are required")
	}
	if password == "" {
		return errs.Invalidf("password is required")
	}
	if !validRoles[u.Role] {
		return errs.Invalidf("role must be admin, doctor or assistant")
	}

	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return errs.Conflictf("user with this email already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if _, err := s.users.GetByUsername(ctx, u.Username); err == nil {
		return errs.Conflictf("username already taken")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Active = true
	return s.users.Create(ctx, u)
}

// Authenticate verifies a username/password pair. Every failure mode answers
// with the same message so callers cannot probe for valid usernames.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	invalid := errs.Unauthorizedf("invalid username or password")

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if !u.Active || u.PasswordHash == "" {
		return nil, invalid
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, f, limit, offset)
}

// Update applies a patch over an existing account. Admins can edit anyone;
// everyone else only themselves, and never their own role or active flag.
func (s *Service) Update(ctx context.Context, requesterID int64, requesterRole string, targetID int64, patch UpdateInput) (*User, error) {
	if requesterRole != RoleAdmin && requesterID != targetID {
		return nil, errs.Forbiddenf("users can only edit their own account")
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if requesterRole != RoleAdmin && (patch.Role != nil || patch.Active != nil) {
		return nil, errs.Forbiddenf("role and active status can only be changed by an admin")
	}

	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Role != nil {
		if !validRoles[*patch.Role] {
			return nil, errs.Invalidf("role must be admin, doctor or assistant")
		}
		u.Role = *patch.Role
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}

	if u.FullName == "" || u.Email == "" {
		return nil, errs.Invalidf("fullName and email are required")
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword re-hashes and stores a new password. Admins can change any
// account's password, other roles only their own.
func (s *Service) ChangePassword(ctx context.Context, requesterID int64, requesterRole string, targetID int64, newPassword string) error {
	if requesterRole != RoleAdmin && requesterID != targetID {
		return errs.Forbiddenf("users can only change their own password")
	}
	if newPassword == "" {
		return errs.Invalidf("newPassword is required")
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(ctx, u)
}

// ChangeRole assigns a new role. Admin only.
func (s *Service) ChangeRole(ctx context.Context, requesterRole string, targetID int64, newRole string) (*User, error) {
	if requesterRole != RoleAdmin {
		return nil, errs.Forbiddenf("only admins can change roles")
	}
	if !validRoles[newRole] {
		return nil, errs.Invalidf("role must be admin, doctor or assistant")
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	u.Role = newRole
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account. Admin only.
func (s *Service) Delete(ctx context.Context, requesterRole string, id int64) error {
	if requesterRole != RoleAdmin {
		return errs.Forbiddenf("only admins can delete users")
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
