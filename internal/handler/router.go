package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/themis-api/internal/middleware"
)

// Resource - обработчики коллекции /api/<name>/ и её элементов
type Resource interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// Handlers - набор обработчиков API
type Handlers struct {
	Auth            *AuthHandler
	Employees       *EmployeeHandler
	Uploads         *UploadHandler
	Projects        *ProjectHandler
	Teams           *TeamHandler
	Tasks           *TaskHandler
	Areas           *AreaHandler
	Departments     *DepartmentHandler
	Positions       Resource
	PositionLevels  Resource
	Degrees         Resource
	ProjectTypes    Resource
	ProjectStatuses Resource
	Customers       Resource
}

type action struct {
	method  string
	handler http.HandlerFunc
}

type route struct {
	resource Resource
	actions  map[string]action // /api/<name>/{id}/<action>/
}

// Router настраивает маршруты API
type Router struct {
	mux    *http.ServeMux
	logger *slog.Logger
	auth   func(http.Handler) http.Handler
	h      Handlers
	routes map[string]route
}

// NewRouter создаёт новый роутер. auth оборачивает все маршруты /api/, кроме выдачи токенов
func NewRouter(h Handlers, auth func(http.Handler) http.Handler, logger *slog.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: logger,
		auth:   auth,
		h:      h,
	}

	r.routes = map[string]route{
		"employees": {
			resource: h.Employees,
			actions: map[string]action{
				"basicInfo": {http.MethodGet, h.Employees.BasicInfo},
				"avatar":    {http.MethodPost, h.Uploads.Avatar},
				"password":  {http.MethodPost, h.Employees.SetPassword},
			},
		},
		"projects": {
			resource: h.Projects,
			actions: map[string]action{
				"detail":   {http.MethodGet, h.Projects.Detail},
				"snapshot": {http.MethodPost, h.Uploads.Snapshot},
				"tasks":    {http.MethodGet, h.Projects.Tasks},
			},
		},
		"teams": {
			resource: h.Teams,
			actions: map[string]action{
				"tree": {http.MethodGet, h.Teams.Tree},
			},
		},
		"tasks":            {resource: h.Tasks},
		"areas":            {resource: h.Areas},
		"departments":      {resource: h.Departments},
		"positions":        {resource: h.Positions},
		"position-levels":  {resource: h.PositionLevels},
		"degrees":          {resource: h.Degrees},
		"project-types":    {resource: h.ProjectTypes},
		"project-statuses": {resource: h.ProjectStatuses},
		"customers":        {resource: h.Customers},
	}

	return r
}

// MountFiles раздаёт загруженные файлы под prefix (только для локального хранилища)
func (r *Router) MountFiles(prefix string, files http.Handler) {
	r.mux.Handle(prefix, http.StripPrefix(prefix, files))
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.Handle("/api/token/", middleware.ContentType(http.HandlerFunc(r.tokenRouter)))
	r.mux.Handle("/api/", middleware.ContentType(r.auth(http.HandlerFunc(r.apiRouter))))

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.Logger(r.logger)(r.mux)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// tokenRouter обрабатывает /api/token/, /api/token/refresh/ и /api/token/revoke/
func (r *Router) tokenRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/api/token"), "/")

	if req.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	switch path {
	case "":
		r.h.Auth.Token(w, req)
	case "refresh":
		r.h.Auth.Refresh(w, req)
	case "revoke":
		r.h.Auth.Revoke(w, req)
	default:
		notFound(w)
	}
}

// apiRouter разбирает путь /api/<resource>/[{id}/[<action>/]]
func (r *Router) apiRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/api"), "/")
	parts := strings.Split(path, "/")

	rt, ok := r.routes[parts[0]]
	if !ok || rt.resource == nil {
		notFound(w)
		return
	}

	switch len(parts) {
	case 1:
		// /api/<resource>/
		switch req.Method {
		case http.MethodGet:
			rt.resource.List(w, req)
		case http.MethodPost:
			rt.resource.Create(w, req)
		default:
			methodNotAllowed(w)
		}

	case 2:
		// /api/<resource>/{id}/
		req.SetPathValue("id", parts[1])
		switch req.Method {
		case http.MethodGet:
			rt.resource.Get(w, req)
		case http.MethodPut, http.MethodPatch:
			rt.resource.Update(w, req)
		case http.MethodDelete:
			rt.resource.Delete(w, req)
		default:
			methodNotAllowed(w)
		}

	case 3:
		// /api/<resource>/{id}/<action>/
		act, ok := rt.actions[parts[2]]
		if !ok {
			notFound(w)
			return
		}
		if req.Method != act.method {
			methodNotAllowed(w)
			return
		}
		req.SetPathValue("id", parts[1])
		act.handler(w, req)

	default:
		notFound(w)
	}
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}
