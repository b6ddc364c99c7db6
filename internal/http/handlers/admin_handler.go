// README: Admin login; exchanges the configured password for a bearer token.
package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	GenerateToken(subject string) (string, time.Time, error)
}

type AdminHandler struct {
	password string
	tokens   TokenIssuer
}

func NewAdminHandler(password string, tokens TokenIssuer) *AdminHandler {
	return &AdminHandler{password: password, tokens: tokens}
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		writeError(c, http.StatusBadRequest, "password is required")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		writeError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, exp, err := h.tokens.GenerateToken("admin")
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": token, "expiresAt": exp.UTC()})
}
