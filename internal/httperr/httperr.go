package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	MsgInternal  = "Errore interno del server"
	MsgNotFound  = "Endpoint non trovato"
	MsgRateLimit = "Troppi tentativi, riprova più tardi"
)

type HTTPError struct {
	Error string `json:"error"`
}

func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: message})
}

// Write maps err to its status code. Errors without a Kind are logged with
// their cause and answered with the generic internal message.
func Write(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		Abort(c, e.Kind.Status(), e.Message)
		return
	}

	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	Abort(c, KindInternal.Status(), MsgInternal)
}

func Internal(c *gin.Context) {
	Abort(c, KindInternal.Status(), MsgInternal)
}

func RouteNotFound(c *gin.Context) {
	Abort(c, KindNotFound.Status(), MsgNotFound)
}
