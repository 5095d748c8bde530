package web

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"portfolio/internal"
	"portfolio/internal/catalog"
)

const (
	msgLoadProjectsFailed = "Не удалось загрузить проекты. Попробуйте обновить страницу."
	msgLoadProjectFailed  = "Не удалось загрузить проект. Попробуйте обновить страницу."
	msgProjectNotFound    = "Проект не найден"
	msgPageNotFound       = "Страница не найдена"
)

// Catalog is the read side the pages render from.
type Catalog interface {
	Featured(ctx context.Context) ([][]internal.Project, error)
	Browse(ctx context.Context, search, technology string) (catalog.GalleryPage, error)
	Project(ctx context.Context, id string) (*internal.Project, error)
}

type Handler struct {
	catalog     Catalog
	pages       map[string]*template.Template
	logger      *slog.Logger
	submitDelay time.Duration
}

func NewHandler(c Catalog, logger *slog.Logger) (*Handler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: c, pages: pages, logger: logger, submitDelay: time.Second}, nil
}

// NewRouter configures all routes and returns the router
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.Home)
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}", h.GetProject)
	r.Get("/order", h.OrderForm)
	r.Post("/order", h.SubmitOrder)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusNotFound, msgPageNotFound)
	})

	return r
}

type homePage struct {
	Slides [][]internal.Project
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	slides, err := h.catalog.Featured(r.Context())
	v := view{Title: "Главная", Data: homePage{Slides: slides}}
	if err != nil {
		h.logger.Warn("featured projects unavailable", "error", err)
		v.Error = msgLoadProjectsFailed
	}
	h.render(w, r, http.StatusOK, "home", v)
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	technology := strings.TrimSpace(r.URL.Query().Get("technology"))

	page, err := h.catalog.Browse(r.Context(), search, technology)
	v := view{Title: "Проекты", Data: page}
	if err != nil {
		h.logger.Warn("projects unavailable", "search", search, "technology", technology, "error", err)
		v.Error = msgLoadProjectsFailed
	}
	h.render(w, r, http.StatusOK, "projects", v)
}

type projectPage struct {
	Project      internal.Project
	Images       []string
	Selected     int
	CurrentImage string
}

// GetProject handles GET /projects/{id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.catalog.Project(r.Context(), id)
	if err != nil {
		h.logger.Warn("project unavailable", "id", id, "error", err)
		if project == nil {
			h.renderError(w, r, http.StatusBadGateway, msgLoadProjectFailed)
			return
		}
	}
	if project == nil {
		h.renderError(w, r, http.StatusNotFound, msgProjectNotFound)
		return
	}

	images := project.Gallery()
	selected, convErr := strconv.Atoi(r.URL.Query().Get("image"))
	if convErr != nil || selected < 0 || selected >= len(images) {
		selected = 0
	}

	h.render(w, r, http.StatusOK, "project", view{
		Title: project.Title,
		Data: projectPage{
			Project:      *project,
			Images:       images,
			Selected:     selected,
			CurrentImage: images[selected],
		},
	})
}
