package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-community/internal/config"
	"github.com/MKhiriev/go-community/internal/forms"
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/sanitizer"
	"github.com/MKhiriev/go-community/internal/store"
	"github.com/MKhiriev/go-community/internal/utils"
	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
)

const (
	RegisterForm = "register"
	LoginForm    = "login"
)

// accountService is the concrete implementation of AccountService.
type accountService struct {
	userRepository store.UserRepository
	records        validation.RecordStore
	sanitizer      validation.Sanitizer
	definitions    forms.Definitions

	bcryptCost        int
	requireActivation bool

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
}

// NewAccountService constructs an AccountService. userRepository and records
// may be nil when no database is configured.
func NewAccountService(userRepository store.UserRepository, records validation.RecordStore, definitions forms.Definitions, cfg config.App, log *logger.Logger) AccountService {
	log.Debug().Int("forms", len(definitions)).Bool("records", records != nil).Msg("creating account service")

	return &accountService{
		userRepository:    userRepository,
		records:           records,
		sanitizer:         sanitizer.New(),
		definitions:       definitions,
		bcryptCost:        cfg.BcryptCost,
		requireActivation: cfg.RequireActivation,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
	}
}

// Register creates an account from a submission of the register form.
//
// Returns the persisted user or:
//   - *FormError (matching ErrValidationFailed) when the submission fails the form.
//   - ErrStorageUnavailable when no database is configured.
//   - store.ErrUserAlreadyExists when a concurrent registration won the race.
func (s *accountService) Register(ctx context.Context, source validation.Source) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.checkSubmission(ctx, RegisterForm, source); err != nil {
		return models.User{}, err
	}

	if s.userRepository == nil {
		return models.User{}, ErrStorageUnavailable
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(source["password"])), s.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		Username:     strings.TrimSpace(source["username"]),
		Email:        strings.TrimSpace(source["email"]),
		PasswordHash: string(hash),
		Timezone:     strings.TrimSpace(source["timezone"]),
		Active:       !s.requireActivation,
	}

	registeredUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")

	return registeredUser, nil
}

// Login authenticates a submission of the login form and issues a token.
//
// Returns the token or:
//   - *FormError when the submission fails the form (missing values,
//     inactive or banned account).
//   - ErrWrongCredentials when the username is unknown.
//   - ErrWrongPassword when the password does not match.
func (s *accountService) Login(ctx context.Context, source validation.Source) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := s.checkSubmission(ctx, LoginForm, source); err != nil {
		return models.Token{}, err
	}

	if s.userRepository == nil {
		return models.Token{}, ErrStorageUnavailable
	}

	username := strings.TrimSpace(source["username"])
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("username", username).Msg("login for unknown user")
		return models.Token{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(source["password"])))
	if err != nil {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.Token{}, fmt.Errorf("%w: %w", ErrWrongCredentials, ErrWrongPassword)
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.UserID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	token.UserID = user.UserID

	return token, nil
}

// CheckForm runs the named form against source and reports the outcome.
// A failing submission is a result, not an error.
func (s *accountService) CheckForm(ctx context.Context, name string, source validation.Source) (models.ValidationResult, error) {
	v, err := s.check(ctx, name, source)
	if err != nil {
		return models.ValidationResult{}, err
	}

	errs := v.Errors()
	if errs == nil {
		errs = []string{}
	}

	return models.ValidationResult{
		Form:   name,
		Passed: v.Passed(),
		Errors: errs,
	}, nil
}

// ParseToken normalises every validation failure to ErrTokenIsExpiredOrInvalid.
func (s *accountService) ParseToken(ctx context.Context, raw string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(raw, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// checkSubmission turns a failed check into a *FormError.
func (s *accountService) checkSubmission(ctx context.Context, name string, source validation.Source) error {
	v, err := s.check(ctx, name, source)
	if err != nil {
		return err
	}

	if !v.Passed() {
		return &FormError{Form: name, Messages: v.Errors()}
	}

	return nil
}

func (s *accountService) check(ctx context.Context, name string, source validation.Source) (*validation.FieldValidator, error) {
	form, ok := s.definitions.Form(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}

	var opts []validation.Option
	if s.records != nil {
		opts = append(opts, validation.WithRecordStore(s.records))
	}

	v, err := validation.New(s.sanitizer, opts...).
		Messages(form.Messages).
		Check(ctx, source, form.Fields)
	if err != nil {
		return nil, fmt.Errorf("checking form %q: %w", name, err)
	}

	return v, nil
}
