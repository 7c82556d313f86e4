package service

import (
	"context"
	"fmt"
	"slices"
	"unicode"

	"github.com/deppfellow/nzwalks/internal/config"
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/lib/token"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	RegistrationFailedMessage = "User registration failed."
	InvalidLoginMessage       = "Invalid username or password."

	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72
)

// WelcomeNotifier schedules the welcome email for a newly registered user.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to string) error
}

type AuthService struct {
	repos      *repository.Repositories
	tokens     *token.Manager
	bcryptCost int
	notifier   WelcomeNotifier
	logger     *zerolog.Logger

	// dummyHash is compared against when the username is unknown, so a
	// failed login costs one bcrypt comparison either way.
	dummyHash []byte
}

// NewAuthService builds the service. notifier may be nil.
func NewAuthService(repos *repository.Repositories, tokens *token.Manager, cfg *config.AuthConfig, notifier WelcomeNotifier, logger *zerolog.Logger) (*AuthService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = config.DefaultBcryptCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("nzwalks-placeholder"), cost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing placeholder password")
	}

	return &AuthService{
		repos:      repos,
		tokens:     tokens,
		bcryptCost: cost,
		notifier:   notifier,
		logger:     logger,
		dummyHash:  dummy,
	}, nil
}

// CheckPassword returns every password rule the candidate breaks.
func CheckPassword(password string) validation.CustomValidationErrors {
	var problems validation.CustomValidationErrors

	if len([]rune(password)) < MinPasswordLength {
		problems.Add("password", fmt.Sprintf("Passwords must be at least %d characters.", MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		problems.Add("password", fmt.Sprintf("Passwords must be at most %d bytes.", MaxPasswordBytes))
	}

	var digit, lower, upper, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	if !symbol {
		problems.Add("password", "Passwords must have at least one non alphanumeric character.")
	}
	if !digit {
		problems.Add("password", "Passwords must have at least one digit ('0'-'9').")
	}
	if !lower {
		problems.Add("password", "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !upper {
		problems.Add("password", "Passwords must have at least one uppercase ('A'-'Z').")
	}

	return problems
}

func registrationFailed(problems validation.CustomValidationErrors) error {
	code := errs.CodeValidationFailed
	return errs.NewBadRequestError(RegistrationFailedMessage, true, &code, validation.FieldErrors(problems), nil)
}

// Register creates a user with the requested roles.
//
// Password rules and a taken username are reported together. The user row
// and its role links are written in one transaction; the welcome email is
// queued afterwards and its failure does not fail the registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	problems := CheckPassword(req.Password)

	taken, err := s.repos.User.UsernameTaken(ctx, req.Username)
	if err != nil {
		return err
	}
	if taken {
		problems.Add("username", fmt.Sprintf("Username '%s' is already taken.", req.Username))
	}

	if len(problems) > 0 {
		return registrationFailed(problems)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}

	names := slices.Compact(slices.Sorted(slices.Values(req.Roles)))

	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		roles, err := tx.Role.FindByNames(ctx, names)
		if err != nil {
			return err
		}
		if len(roles) != len(names) {
			var unknown validation.CustomValidationErrors
			unknown.Add("roles", "One or more roles do not exist.")
			return registrationFailed(unknown)
		}

		return tx.User.Create(ctx, &model.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Roles:        roles,
		})
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueWelcomeEmail(ctx, req.Username); err != nil {
			s.logger.Warn().Err(err).Str("username", req.Username).Msg("failed to enqueue welcome email")
		}
	}

	return nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.repos.User.GetByUsername(ctx, req.Username)
	if err != nil && !repository.IsNotFound(err) {
		return "", err
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil || user == nil {
		code := errs.CodeInvalidLogin
		return "", errs.NewBadRequestError(InvalidLoginMessage, true, &code, nil, nil)
	}

	accessToken, err := s.tokens.Issue(user.ID.String(), user.Username, user.RoleNames())
	if err != nil {
		return "", err
	}
	return accessToken, nil
}
