// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

type fakeProfileRepository struct {
	users map[string]*auth.User
}

func (r *fakeProfileRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeProfileRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func newTestService() (*account.Service, *fakeProfileRepository) {
	repo := &fakeProfileRepository{users: map[string]*auth.User{
		"user-1": {
			ID:        "user-1",
			Username:  "mary",
			Email:     "mary@example.com",
			FirstName: "Mary",
			LastName:  "Shelley",
			Bio:       "Gothic novelist.",
		},
	}}
	return account.NewService(repo), repo
}

func TestService_GetProfile(t *testing.T) {
	service, _ := newTestService()

	user, err := service.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "mary", user.Username)

	_, err = service.GetProfile(context.Background(), "user-unknown")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestService_UpdateProfile_PartialPatch(t *testing.T) {
	service, repo := newTestService()

	newBio := "Author of Frankenstein."
	updated, err := service.UpdateProfile(context.Background(), "user-1", account.ProfilePatch{
		Bio: &newBio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Author of Frankenstein.", updated.Bio)
	assert.Equal(t, "Mary", updated.FirstName, "untouched fields keep their values")
	assert.Equal(t, "mary@example.com", updated.Email, "identity fields are immutable here")

	stored, err := repo.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Author of Frankenstein.", stored.Bio)
}

func TestService_UpdateProfile_AllFields(t *testing.T) {
	service, _ := newTestService()

	first, last := "M.", "Wollstonecraft Shelley"
	image := "https://cdn.folio.app/avatars/mary.png"
	bio := ""

	updated, err := service.UpdateProfile(context.Background(), "user-1", account.ProfilePatch{
		FirstName:       &first,
		LastName:        &last,
		Bio:             &bio,
		ProfileImageURL: &image,
	})
	require.NoError(t, err)

	assert.Equal(t, "M.", updated.FirstName)
	assert.Equal(t, "Wollstonecraft Shelley", updated.LastName)
	assert.Empty(t, updated.Bio, "an explicit empty string clears the field")
	assert.Equal(t, image, updated.ProfileImageURL)
}
