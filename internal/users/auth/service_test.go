// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/users/auth"
)

// # Test Fakes

type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := f.users[userID]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

func (f *fakeUserRepository) StampLastLogin(_ context.Context, userID string, at time.Time) error {
	if user, ok := f.users[userID]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (f *fakeUserRepository) SetActive(_ context.Context, userID string, active bool) error {
	if user, ok := f.users[userID]; ok {
		user.IsActive = active
	}
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: map[string]string{}}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeAuthorEnroller struct {
	enrolled map[string]string // userID -> penName
}

func newFakeAuthorEnroller() *fakeAuthorEnroller {
	return &fakeAuthorEnroller{enrolled: map[string]string{}}
}

func (f *fakeAuthorEnroller) EnrollAuthor(_ context.Context, userID, penName string) error {
	f.enrolled[userID] = penName
	return nil
}

// fakeTokenProvider records the claims it was asked to sign.
type fakeTokenProvider struct {
	lastUserID   string
	lastUsername string
	lastIsAuthor bool
}

func (f *fakeTokenProvider) GenerateAccessToken(userID, username string, isAuthor bool, _ time.Duration) (string, error) {
	f.lastUserID = userID
	f.lastUsername = username
	f.lastIsAuthor = isAuthor
	return fmt.Sprintf("signed-token-for-%s", username), nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeResetTokenRepository, *fakeAuthorEnroller, *fakeTokenProvider) {
	users := newFakeUserRepository()
	resets := newFakeResetTokenRepository()
	enroller := newFakeAuthorEnroller()
	tokens := &fakeTokenProvider{}
	service := auth.NewService(users, resets, enroller, tokens, 30*time.Minute)
	return service, users, resets, enroller, tokens
}

// # Registration

/*
TestService_Register_And_Login covers the happy-path roundtrip: a registered
user can immediately log in with the same credentials.
*/
func TestService_Register_And_Login(t *testing.T) {
	service, _, _, _, tokens := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  "Str0ng!pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int64(1800), session.ExpiresIn)
	assert.Equal(t, "jdoe", tokens.lastUsername)
	assert.False(t, tokens.lastIsAuthor)

	assert.Equal(t, "jdoe", session.User.Username)
	assert.False(t, session.User.IsAuthor)
	assert.True(t, session.User.IsActive)
	assert.NotNil(t, session.User.LastLogin)
	assert.NotEqual(t, "Str0ng!pass", session.User.PasswordHash, "password must never be stored in plain text")

	login, err := service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
}

/*
TestService_Register_AuthorEnrollment verifies that opting in at registration
creates an author profile and snapshots the flag into the token claims.
*/
func TestService_Register_AuthorEnrollment(t *testing.T) {
	service, _, _, enroller, tokens := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username:     "writer",
		Email:        "writer@example.com",
		Password:     "Str0ng!pass",
		FirstName:    "Mary",
		BecomeAuthor: true,
	})
	require.NoError(t, err)

	// Pen name falls back to the first name when not provided.
	assert.Equal(t, "Mary", enroller.enrolled[session.User.ID])
	assert.True(t, session.User.IsAuthor)
	assert.True(t, tokens.lastIsAuthor)
}

/*
TestService_Register_PenNameFallsBackToUsername covers the second fallback
step when neither pen name nor first name is provided.
*/
func TestService_Register_PenNameFallsBackToUsername(t *testing.T) {
	service, _, _, enroller, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username:     "ghost",
		Email:        "ghost@example.com",
		Password:     "Str0ng!pass",
		BecomeAuthor: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ghost", enroller.enrolled[session.User.ID])
}

/*
TestService_Register_DuplicateIdentity verifies that username collisions are
reported before email collisions, and both map to Conflict.
*/
func TestService_Register_DuplicateIdentity(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "other@example.com", Password: "Str0ng!pass",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Username is already taken", ae.Message)

	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "other", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Email is already registered", ae.Message)
}

// # Authentication

/*
TestService_Login_GenericFailureMessage pins the enumeration guard: an unknown
login and a wrong password must produce byte-identical error messages.
*/
func TestService_Login_GenericFailureMessage(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, auth.LoginInput{Login: "nobody", Password: "whatever1!A"})
	_, wrongPassErr := service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "wrong1!Apass"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())

	ae := apperr.As(wrongPassErr)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
}

/*
TestService_Login_ByEmail verifies the username-then-email lookup order by
logging in with the email address.
*/
func TestService_Login_ByEmail(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, auth.LoginInput{Login: "jdoe@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", session.User.Username)
}

/*
TestService_Login_DeactivatedAccount ensures a deactivated account is rejected
with a Forbidden error even when credentials are correct.
*/
func TestService_Login_DeactivatedAccount(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	require.NoError(t, service.Deactivate(ctx, session.User.ID))

	_, err = service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "Str0ng!pass"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 403, ae.HTTPStatus)
	assert.Equal(t, "Account is deactivated", ae.Message)
}

// # Credential Management

/*
TestService_ChangePassword verifies current-password verification and that the
new password takes effect on the next login.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	userID := session.User.ID

	err = service.ChangePassword(ctx, userID, "wrong-password", "N3w!password")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Current password is incorrect", ae.Message)

	require.NoError(t, service.ChangePassword(ctx, userID, "Str0ng!pass", "N3w!password"))

	_, err = service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "Str0ng!pass"})
	assert.Error(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "N3w!password"})
	assert.NoError(t, err)
}

/*
TestService_PasswordResetFlow covers the full forgot/reset roundtrip and the
single-use property of reset tokens.
*/
func TestService_PasswordResetFlow(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	// Unknown email yields no token and no error (enumeration guard).
	token, err := service.RequestPasswordReset(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = service.RequestPasswordReset(ctx, "jdoe@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(ctx, token, "N3w!password"))

	_, err = service.Login(ctx, auth.LoginInput{Login: "jdoe", Password: "N3w!password"})
	assert.NoError(t, err)

	// The token is consumed and cannot be replayed.
	err = service.ResetPassword(ctx, token, "An0ther!pass")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
