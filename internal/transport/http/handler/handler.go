package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nemukerja/internal/domain"
	mdw "nemukerja/internal/transport/http/middleware"
	resp "nemukerja/internal/transport/http/response"
)

// respond writes the unified envelope: HTTP is always 200, the app-level
// code carries the outcome.
func respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(data))
}

// bindErr folds gin binding failures into the validation branch of the
// error taxonomy.
func bindErr(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}

// actor pulls the authenticated identity; routes behind AuthJWT always have
// one, so a miss is a wiring bug surfaced as unauthorized.
func actor(c *gin.Context) (domain.Actor, bool) {
	a, ok := mdw.Actor(c)
	if !ok {
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
	}
	return a, ok
}
