// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
stateless access tokens (RSA-signed JWT) and password recovery (Redis-backed
reset tokens).

Architecture:

  - Service: Orchestrates business logic (Register, Login, Recovery).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Tokens).
  - Security: Leverages Bcrypt hashing and RSA-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform’s lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - isAuthor: Whether the account has an author profile at issuance time.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username string, isAuthor bool, timeToLive time.Duration) (string, error)
}

// AuthorEnroller creates an author profile for a freshly registered user.
//
// # Why an interface?
//
// Author profiles live in the core/author domain. This contract lets the
// registration flow enroll authors without importing that package.
type AuthorEnroller interface {
	// EnrollAuthor creates the author profile and flips the account's
	// author flag in the same transaction.
	EnrollAuthor(context context.Context, userID, penName string) error
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	authorEnroller       AuthorEnroller
	tokenProvider        TokenProvider
	accessTokenTTL       time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	enroller AuthorEnroller,
	tokenProv TokenProvider,
	accessTokenTTL time.Duration,
) *Service {
	if accessTokenTTL <= 0 {
		accessTokenTTL = DefaultAccessTokenTTL
	}
	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		authorEnroller:       enroller,
		tokenProvider:        tokenProv,
		accessTokenTTL:       accessTokenTTL,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	BecomeAuthor bool
	PenName      string
}

// AuthSession represents a successfully established stateless session.
type AuthSession struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	User        *User
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, handling password hashing and the optional
author-profile enrollment. This is the only path that can create an account
with an author profile in one step.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Access token plus the created user
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Verify username uniqueness first. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsAuthor:     false,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Optional author enrollment. Pen name falls back to the first name,
	// then to the username.
	if input.BecomeAuthor {
		penName := strings.TrimSpace(input.PenName)
		if penName == "" {
			penName = strings.TrimSpace(input.FirstName)
		}
		if penName == "" {
			penName = input.Username
		}

		if err := service.authorEnroller.EnrollAuthor(context, user.ID, penName); err != nil {
			return nil, fmt.Errorf("auth_service_author_enrollment_failed: %w", err)
		}
		user.IsAuthor = true
	}

	return service.issueSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity, performs constant-time password comparison,
and issues a signed stateless token carrying an author-flag snapshot.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - err: Unauthorized, Forbidden (deactivated account) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	// Flexible login: look up by Username or Email
	user, err := service.userRepository.FindByUsername(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByEmail(context, input.Login)
	}

	// If (err != nil) the user does not exist. The message must be identical
	// to the wrong-password case to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Verify password hash using bcrypt's constant-time comparison to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Credentials are valid but the account is switched off
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	return service.issueSession(context, user)
}

// issueSession stamps last_login and wraps the user into a signed session.
func (service *Service) issueSession(context context.Context, user *User) (*AuthSession, error) {

	// Generate short-lived Access Token. The author flag is a snapshot:
	// becoming an author later requires a fresh login.
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.IsAuthor, service.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	now := time.Now()
	if err := service.userRepository.StampLastLogin(context, user.ID, now); err != nil {
		return nil, fmt.Errorf("auth_service_last_login_stamp_failed: %w", err)
	}
	user.LastLogin = &now

	return &AuthSession{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.accessTokenTTL / time.Second),
		User:        user,
	}, nil
}

// # Account Lifecycle

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before rotating the stored hash.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

/*
Deactivate switches off the authenticated user's account.

Description: A deactivated account keeps its data but can no longer log in
until reactivated by support.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Lookup or update failures
*/
func (service *Service) Deactivate(context context.Context, userID string) error {

	// The account must exist before we flip the flag
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.userRepository.SetActive(context, userID, false); err != nil {
		return fmt.Errorf("auth_service_deactivate_failed: %w", err)
	}

	return nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Recovery token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, and updates the DB.
The token is single-use and deleted after a successful reset.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
