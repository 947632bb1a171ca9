package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/middleware"
	ucAuth "github.com/Cri010101/toelettatura-system/internal/usecase/auth"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the identity carried by the session token.
func (h *MeHandler) GetMe(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		httperr.Write(c, httperr.Unauthorized(middleware.MsgTokenRequired))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": ucAuth.UserView{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		},
	})
}
