package transport

import (
	"errors"
	"net/http"

	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/middleware"
	"amalkitchen-be/internal/utils"
)

type sessionResponse struct {
	Token string        `json:"token"`
	User  identity.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		utils.WriteJSONError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, u, err := h.identity.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		utils.WriteJSONError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, token)
	utils.WriteJSON(w, sessionResponse{Token: token, User: u}, http.StatusCreated)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteJSONError(w, identity.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	setAuthCookie(w, token)
	utils.WriteJSON(w, sessionResponse{Token: token, User: u}, http.StatusOK)
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	utils.WriteJSON(w, map[string]string{"status": "signed out"}, http.StatusOK)
}

// SendMagicLink always answers 200 so the endpoint cannot be used to
// probe which addresses have accounts.
func (h *Handler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		utils.WriteJSONError(w, "email is required", http.StatusBadRequest)
		return
	}

	_ = h.identity.SendMagicLink(r.Context(), req.Email)
	utils.WriteJSON(w, map[string]string{"status": "if the address is registered, a link is on its way"}, http.StatusOK)
}

func (h *Handler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		utils.WriteJSONError(w, "token is required", http.StatusBadRequest)
		return
	}

	session, u, err := h.identity.VerifyMagicLink(r.Context(), tokenStr)
	if err != nil {
		utils.WriteJSONError(w, identity.ErrInvalidToken.Error(), http.StatusUnauthorized)
		return
	}

	setAuthCookie(w, session)
	utils.WriteJSON(w, sessionResponse{Token: session, User: u}, http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, u, http.StatusOK)
}
