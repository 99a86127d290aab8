package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/example/monelog/internal/auth"
	"github.com/example/monelog/internal/types"
	"github.com/example/monelog/pkg/jsonutil"
	"github.com/rs/zerolog"
)

// AdminHandler provisions session tokens. Requests must carry X-Admin-Token.
type AdminHandler struct {
	Store      auth.SessionCreator
	AdminToken string
	Log        zerolog.Logger
}

func NewAdminHandler(store auth.SessionCreator, adminToken string, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{Store: store, AdminToken: adminToken, Log: log}
}

// ServeHTTP handles POST /admin/sessions
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonutil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.AdminToken == "" || r.Header.Get("X-Admin-Token") != h.AdminToken {
		jsonutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "bad request")
		return
	}
	token := req.Token
	if token == "" {
		var err error
		if token, err = auth.NewToken(); err != nil {
			jsonutil.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if err := h.Store.Create(r.Context(), token, true, req.Owner); err != nil {
		h.Log.Error().Err(err).Str("event", "session_create").Str("token", auth.HashPrefix(token)).Msg("create failed")
		jsonutil.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info().Str("event", "session_create").Str("token", auth.HashPrefix(token)).Str("owner", req.Owner).Msg("session provisioned")
	jsonutil.JSON(w, http.StatusOK, types.CreateSessionResponse{
		Token:   token,
		Active:  true,
		Owner:   req.Owner,
		Created: types.NowRFC3339(),
	})
}
