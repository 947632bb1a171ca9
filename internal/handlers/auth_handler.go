package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cri010101/toelettatura-system/internal/httperr"
	ucAuth "github.com/Cri010101/toelettatura-system/internal/usecase/auth"
)

type AuthHandler struct {
	login *ucAuth.Login
}

func NewAuthHandler(login *ucAuth.Login) *AuthHandler {
	return &AuthHandler{login: login}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.BadRequest(ucAuth.MsgMissingCredentials))
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login effettuato con successo",
		"token":   res.Token,
		"user":    res.User,
	})
}
