package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-community/internal/config"
	"github.com/MKhiriev/go-community/internal/forms"
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/mock"
	"github.com/MKhiriev/go-community/internal/store"
	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testAppConfig = config.App{
	Version:       "test",
	BcryptCost:    bcrypt.MinCost,
	TokenSignKey:  "sign-key",
	TokenIssuer:   "go-community-test",
	TokenDuration: time.Hour,
}

type accountFixture struct {
	users   *mock.MockUserRepository
	records *mock.MockRecordStore
	svc     AccountService
}

func newAccountFixture(t *testing.T, cfg config.App) accountFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	definitions, err := forms.Default()
	require.NoError(t, err)

	users := mock.NewMockUserRepository(ctrl)
	records := mock.NewMockRecordStore(ctrl)

	return accountFixture{
		users:   users,
		records: records,
		svc:     NewAccountService(users, records, definitions, cfg, logger.Nop()),
	}
}

func validRegistration() validation.Source {
	return validation.Source{
		"username":       "alice",
		"email":          "alice@example.com",
		"password":       "secret1",
		"password_again": "secret1",
		"timezone":       "Europe/Amsterdam",
		"t_and_c":        "1",
	}
}

func (f accountFixture) expectFreeIdentity(username, email string) {
	f.records.EXPECT().CountMatching(gomock.Any(), "users", "username", username).Return(0, nil)
	f.records.EXPECT().CountMatching(gomock.Any(), "users", "email", email).Return(0, nil)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.expectFreeIdentity("alice", "alice@example.com")

	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, "Europe/Amsterdam", user.Timezone)
			assert.True(t, user.Active)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
			user.UserID = 1
			return user, nil
		})

	user, err := f.svc.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
}

func TestRegister_RequireActivation(t *testing.T) {
	cfg := testAppConfig
	cfg.RequireActivation = true
	f := newAccountFixture(t, cfg)
	f.expectFreeIdentity("alice", "alice@example.com")

	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.False(t, user.Active)
			return user, nil
		})

	_, err := f.svc.Register(context.Background(), validRegistration())

	require.NoError(t, err)
}

func TestRegister_ValidationFailure(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().CountMatching(gomock.Any(), "users", "username", "alice").Return(1, nil)
	f.records.EXPECT().CountMatching(gomock.Any(), "users", "email", "alice@example.com").Return(0, nil)

	source := validRegistration()
	source["password_again"] = "different"
	delete(source, "t_and_c")

	_, err := f.svc.Register(context.Background(), source)

	require.ErrorIs(t, err, ErrValidationFailed)

	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, RegisterForm, formErr.Form)
	assert.Equal(t, []string{
		"The username/email username already exists!",
		"password must match password_again.",
		"You must agree to our terms and conditions in order to register.",
	}, formErr.Messages)
}

func TestRegister_DuplicateRace(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.expectFreeIdentity("alice", "alice@example.com")
	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := f.svc.Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestRegister_RecordStoreFailure(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().CountMatching(gomock.Any(), "users", "username", "alice").Return(0, errors.New("db down"))

	_, err := f.svc.Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, validation.ErrRecordStore)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestRegister_WithoutDatabase(t *testing.T) {
	definitions, err := forms.Default()
	require.NoError(t, err)
	svc := NewAccountService(nil, nil, definitions, testAppConfig, logger.Nop())

	_, err = svc.Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, validation.ErrRecordStoreNotBound)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().FindOne(gomock.Any(), "users", "username", "alice").
		Return(models.UserStatus{Active: true}, true, nil).Times(2)
	f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 9, Username: "alice", PasswordHash: hashPassword(t, "secret1"), Active: true}, nil)

	token, err := f.svc.Login(context.Background(), validation.Source{"username": " alice ", "password": "secret1"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), token.UserID)
	assert.NotEmpty(t, token.SignedString)

	parsed, err := f.svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(9), parsed.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().FindOne(gomock.Any(), "users", "username", "alice").
		Return(models.UserStatus{Active: true}, true, nil).Times(2)
	f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 9, PasswordHash: hashPassword(t, "secret1")}, nil)

	_, err := f.svc.Login(context.Background(), validation.Source{"username": "alice", "password": "nope"})

	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().FindOne(gomock.Any(), "users", "username", "ghost").
		Return(models.UserStatus{}, false, nil).Times(2)
	f.users.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := f.svc.Login(context.Background(), validation.Source{"username": "ghost", "password": "x"})

	assert.ErrorIs(t, err, ErrWrongCredentials)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_BannedUser(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.records.EXPECT().FindOne(gomock.Any(), "users", "username", "bob").
		Return(models.UserStatus{Active: true, Banned: true}, true, nil).Times(2)

	_, err := f.svc.Login(context.Background(), validation.Source{"username": "bob", "password": "x"})

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, []string{"The username username is banned."}, formErr.Messages)
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)

	_, err := f.svc.Login(context.Background(), validation.Source{})

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, []string{"username is required", "password is required"}, formErr.Messages)
	assert.True(t, strings.Contains(err.Error(), "username is required"))
}

// ─────────────────────────────────────────────
// CheckForm / ParseToken
// ─────────────────────────────────────────────

func TestCheckForm(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)
	f.expectFreeIdentity("alice", "alice@example.com")

	result, err := f.svc.CheckForm(context.Background(), RegisterForm, validRegistration())

	require.NoError(t, err)
	assert.Equal(t, models.ValidationResult{Form: RegisterForm, Passed: true, Errors: []string{}}, result)
}

func TestCheckForm_Failing(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)

	result, err := f.svc.CheckForm(context.Background(), LoginForm, validation.Source{"password": "x"})

	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, []string{"username is required"}, result.Errors)
}

func TestCheckForm_UnknownForm(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)

	_, err := f.svc.CheckForm(context.Background(), "newsletter", validation.Source{})

	assert.ErrorIs(t, err, ErrUnknownForm)
}

func TestParseToken_Invalid(t *testing.T) {
	f := newAccountFixture(t, testAppConfig)

	_, err := f.svc.ParseToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestNewServices_WithoutStorages(t *testing.T) {
	definitions, err := forms.Default()
	require.NoError(t, err)

	services, err := NewServices(nil, definitions, config.StructuredConfig{App: testAppConfig}, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, services.AccountService)
	assert.Equal(t, "test", services.AppInfoService.GetAppVersion(context.Background()))
}
