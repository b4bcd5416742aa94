// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management.

It provides functionalities for users to view and update their private
identity data (names, bio, profile image).

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Persistence: Reuses the auth [UserRepository] contract; profile data
    lives on the same users.account row.
*/
package account

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/pointer"
)

// ProfileRepository is the subset of the auth user store needed here.
type ProfileRepository interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	Update(context context.Context, user *auth.User) error
}

// Service implements profile management use cases.
type Service struct {
	profileRepository ProfileRepository
}

// NewService constructs a new [Service].
func NewService(repo ProfileRepository) *Service {
	return &Service{profileRepository: repo}
}

// ProfilePatch holds optional profile changes. Nil fields are left untouched.
type ProfilePatch struct {
	FirstName       *string
	LastName        *string
	Bio             *string
	ProfileImageURL *string
}

/*
GetProfile returns the authenticated user's own profile.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated profile
  - err: NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.profileRepository.FindByID(context, userID)
}

/*
UpdateProfile applies a partial patch to the user's profile fields.

Description: Only non-nil patch fields are written. Identity fields
(username, email) are immutable through this path.

Parameters:
  - context: context.Context
  - userID: string
  - patch: ProfilePatch

Returns:
  - *auth.User: Updated profile
  - err: NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, patch ProfilePatch) (*auth.User, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = pointer.Fallback(patch.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(patch.LastName, user.LastName)
	user.Bio = pointer.Fallback(patch.Bio, user.Bio)
	user.ProfileImageURL = pointer.Fallback(patch.ProfileImageURL, user.ProfileImageURL)

	if err := service.profileRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	return user, nil
}
