package handlers

import (
	"net/http"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetMe(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newUserResponse(user), http.StatusOK)
}

// DeleteCurrentUser removes the account together with its profile and posts.
func (h *Handlers) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteMe(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
