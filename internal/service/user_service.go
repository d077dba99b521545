package service

import (
	"context"
	"errors"
	"log"

	dom "github.com/Munnjee/Comp2537-A01/internal/domain"
	"github.com/Munnjee/Comp2537-A01/internal/repo"
	"github.com/Munnjee/Comp2537-A01/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound covers both zero and multiple matches for an email: login
// requires exactly one, and the response must not reveal which case it was.
var ErrUserNotFound = errors.New("user not found")

var ErrIncorrectPassword = errors.New("incorrect password")

// UserService handles signup and login logic.
type UserService struct {
	repo repo.UserRepo
	cost int
}

// NewUserService returns a UserService hashing with the given bcrypt cost.
func NewUserService(repo repo.UserRepo, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &UserService{repo: repo, cost: bcryptCost}
}

// SignUp validates the fields as a unit, hashes the password and stores the
// user. A *validate.FieldError carries the first violated constraint for the
// caller to show verbatim. No uniqueness check: duplicates are allowed at
// insert (see DESIGN.md).
func (s *UserService) SignUp(ctx context.Context, name, email, password string) (dom.User, error) {
	if err := validate.SignupUnit(email, name, password); err != nil {
		return dom.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Insert(ctx, name, email, string(hash))
	if err != nil {
		return dom.User{}, err
	}
	log.Printf("signup: inserted user %q", u.Name)
	return u, nil
}

// LogIn verifies credentials for an already scalar-screened email. Exactly
// one stored user must match the email; otherwise ErrUserNotFound.
func (s *UserService) LogIn(ctx context.Context, email, password string) (dom.User, error) {
	matches, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return dom.User{}, err
	}
	if len(matches) != 1 {
		log.Printf("login: %d matches for email, want 1", len(matches))
		return dom.User{}, ErrUserNotFound
	}
	u := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrIncorrectPassword
	}
	return u, nil
}

// LookupByName returns users matching a name. The value must already have
// passed validate.Scalar.
func (s *UserService) LookupByName(ctx context.Context, name string) ([]dom.User, error) {
	return s.repo.FindByName(ctx, name)
}
