package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"socialhub/internal/config"
	"socialhub/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	ProfileService service.ProfileService
	PostService    service.PostService
	TagService     service.TagService
	TablesService  service.TablesService
	DB             HealthChecker
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		ProfileService: service.Profile,
		PostService:    service.Post,
		TagService:     service.Tag,
		TablesService:  service.Tables,
		DB:             db,
		Cfg:            config,
		Validate:       NewValidator(),
	}
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"service": "socialhub", "api": "/api"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		WriteError(w, "database is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database is unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
