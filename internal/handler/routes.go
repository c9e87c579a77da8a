package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint. Fixed paths such as /posts/my_posts
// are registered before their /{id} siblings.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	jsonErrors(router)

	router.HandleFunc("/", HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/stats", h.StatsHandler).Methods(http.MethodGet)

	// a subrouter without its own handlers turns a method mismatch into a 404
	api := router.PathPrefix("/api").Subrouter()
	jsonErrors(api)

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	api.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/me", h.DeleteCurrentUser).Methods(http.MethodDelete)

	api.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/my_posts", h.MyPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", h.PatchPost).Methods(http.MethodPatch)
	api.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)

	api.HandleFunc("/tags", h.ListTags).Methods(http.MethodGet)
	api.HandleFunc("/tags", h.CreateTag).Methods(http.MethodPost)
	api.HandleFunc("/tags/{id}", h.GetTag).Methods(http.MethodGet)
	api.HandleFunc("/tags/{id}", h.UpdateTag).Methods(http.MethodPut)
	api.HandleFunc("/tags/{id}", h.PatchTag).Methods(http.MethodPatch)

	api.HandleFunc("/profiles", h.ListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profiles", h.CreateProfile).Methods(http.MethodPost)
	api.HandleFunc("/profiles/me", h.MyProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}", h.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/profiles/{id}", h.PatchProfile).Methods(http.MethodPatch)
	api.HandleFunc("/profiles/{id}", h.DeleteProfile).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{id}/following", h.Following).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}/followers", h.Followers).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}/follow", h.Follow).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{id}/unfollow", h.Unfollow).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{id}/upload-photo", h.UploadPhoto).Methods(http.MethodPost)

	return router
}

func jsonErrors(router *mux.Router) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})
}
