package book

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
	// Public catalog
	router.Get("/", handler.listBooks)
	router.Get("/search", handler.searchBooks)
	router.Get("/{id}", handler.getBook)

	// Author-only catalog management
	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(middleware.RequireAuthor)

		authorRoute.Get("/mine", handler.authorBooks)
		authorRoute.Post("/", handler.createBook)
		authorRoute.Patch("/{id}", handler.updateBook)
		authorRoute.Post("/{id}/publish", handler.publishBook)
		authorRoute.Post("/{id}/unpublish", handler.unpublishBook)
		authorRoute.Delete("/{id}", handler.deleteBook)
	})
}

type createBookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	Language      string  `json:"language"`
	ISBN          *string `json:"isbn"`
	Publisher     *string `json:"publisher"`
	TotalPages    *int    `json:"total_pages"`
	CoverImageURL *string `json:"cover_image_url"`
	FileURL       *string `json:"file_url"`
	FileSize      *int64  `json:"file_size"`
	FileType      *string `json:"file_type"`
}

type updateBookRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	Language      *string `json:"language"`
	ISBN          *string `json:"isbn"`
	Publisher     *string `json:"publisher"`
	TotalPages    *int    `json:"total_pages"`
	CoverImageURL *string `json:"cover_image_url"`
	FileURL       *string `json:"file_url"`
	FileSize      *int64  `json:"file_size"`
	FileType      *string `json:"file_type"`
	IsPublished   *bool   `json:"is_published"`
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		Genre:    queryValues.Get("genre"),
		AuthorID: queryValues.Get("author_id"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")

	v := &validate.Validator{}
	v.Required("q", query)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, total, err := handler.service.SearchBooks(request.Context(), query, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	// Anonymous callers have no claims; drafts stay hidden from them.
	callerUserID := ""
	if claims := requestutil.Claims(request); claims != nil {
		callerUserID = claims.UserID
	}

	b, err := handler.service.GetBook(request.Context(), bookID, callerUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) authorBooks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	books, total, err := handler.service.AuthorBooks(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	b, err := handler.service.CreateBook(request.Context(), userID, CreateBookInput{
		Title:         input.Title,
		Description:   input.Description,
		Genre:         input.Genre,
		Language:      input.Language,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		TotalPages:    input.TotalPages,
		CoverImageURL: input.CoverImageURL,
		FileURL:       input.FileURL,
		FileSize:      input.FileSize,
		FileType:      input.FileType,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, b)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	b, err := handler.service.UpdateBook(request.Context(), userID, requestutil.ID(request, "id"), UpdatePatch{
		Title:         input.Title,
		Description:   input.Description,
		Genre:         input.Genre,
		Language:      input.Language,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		TotalPages:    input.TotalPages,
		CoverImageURL: input.CoverImageURL,
		FileURL:       input.FileURL,
		FileSize:      input.FileSize,
		FileType:      input.FileType,
		IsPublished:   input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) publishBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.PublishBook(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) unpublishBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.UnpublishBook(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
