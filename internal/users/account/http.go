// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] for the authenticated /users surface.
//
// # Endpoints
//   - GET /me : Returns the caller's profile.
//   - PUT /me : Applies a partial profile update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getProfile)
	router.Put("/me", handler.updateProfile)

	return router
}

type updateProfileRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

/*
GetProfile returns the authenticated user's profile.

GET /api/v1/users/me

Response:
  - 200: User: The caller's own profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile applies a partial update to the caller's profile.

PUT /api/v1/users/me

Request:
  - Body: updateProfileRequest (all fields optional)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Malformed body or oversized fields
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.FirstName != nil {
		v.MaxLen("first_name", *input.FirstName, 100)
	}
	if input.LastName != nil {
		v.MaxLen("last_name", *input.LastName, 100)
	}
	if input.Bio != nil {
		v.MaxLen("bio", *input.Bio, 2000)
	}
	if input.ProfileImageURL != nil {
		v.MaxLen("profile_image_url", *input.ProfileImageURL, 500)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, ProfilePatch{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Bio:             input.Bio,
		ProfileImageURL: input.ProfileImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
