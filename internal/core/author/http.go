package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listAuthors)
	router.Get("/{id}", handler.getAuthor)

	// Any authenticated user can become an author
	router.With(middleware.RequireAuth).Post("/", handler.createProfile)

	// Author-only self-service
	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(middleware.RequireAuthor)

		authorRoute.Get("/me", handler.getOwnProfile)
		authorRoute.Patch("/me", handler.updateOwnProfile)
		authorRoute.Post("/me/social-links", handler.addSocialLink)
	})
}

type createProfileRequest struct {
	PenName string  `json:"pen_name"`
	Bio     *string `json:"bio"`
	Website *string `json:"website"`
}

type updateProfileRequest struct {
	PenName *string `json:"pen_name"`
	Bio     *string `json:"bio"`
	Website *string `json:"website"`
}

type socialLinkRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	authors, total, err := handler.service.ListAuthors(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID := requestutil.ID(request, "id")

	profile, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) createProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	profile, err := handler.service.CreateProfile(request.Context(), userID, CreateProfileInput{
		PenName: input.PenName,
		Bio:     input.Bio,
		Website: input.Website,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, profile)
}

func (handler *Handler) getOwnProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetByUserID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) updateOwnProfile(writer http.ResponseWriter, request *http.Request) {
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

	profile, err := handler.service.UpdateProfile(request.Context(), userID, ProfilePatch{
		PenName: input.PenName,
		Bio:     input.Bio,
		Website: input.Website,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) addSocialLink(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input socialLinkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	profile, err := handler.service.AddSocialLink(request.Context(), userID, input.Platform, input.URL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
