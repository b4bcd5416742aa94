package reading

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

// RegisterRoutes mounts the reading-progress API. Everything here is scoped
// to the authenticated reader; books are addressed by ID inside that scope.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.currentlyReading)
	router.Get("/history", handler.history)

	router.Route("/{bookID}", func(bookRoute chi.Router) {
		bookRoute.Post("/start", handler.start)
		bookRoute.Get("/", handler.get)
		bookRoute.Patch("/", handler.update)
		bookRoute.Post("/complete", handler.complete)
		bookRoute.Post("/reset", handler.reset)
		bookRoute.Delete("/", handler.remove)
		bookRoute.Get("/stats", handler.bookStats)
	})
}

type updateProgressRequest struct {
	CurrentPage        *int    `json:"current_page"`
	ReadingTimeMinutes int     `json:"reading_time_minutes"`
	Status             *string `json:"status"`
}

func (handler *Handler) currentlyReading(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	entries, total, err := handler.service.CurrentlyReading(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	status := request.URL.Query().Get("status")

	entries, total, err := handler.service.History(request.Context(), userID, status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.Start(request.Context(), userID, requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, progress)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	progress, err := handler.service.UpdateProgress(request.Context(), userID, requestutil.ID(request, "bookID"), UpdateInput{
		CurrentPage:        input.CurrentPage,
		ReadingTimeMinutes: input.ReadingTimeMinutes,
		Status:             input.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.MarkCompleted(request.Context(), userID, requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.Reset(request.Context(), userID, requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "bookID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) bookStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.BookStats(request.Context(), requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
