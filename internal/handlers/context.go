package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/middleware"
	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/errors"
	"github.com/clinivent/clinivent/pkg/response"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user's identifier, writing a 401
// when the auth middleware did not run.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// currentWorkspace resolves the caller's user and clinic. On failure an error
// response has already been written; a missing clinic surfaces as NO_CLINIC
// so clients can route to the setup flow.
func currentWorkspace(c *gin.Context, clinics *services.ClinicService) (userID, clinicID string, ok bool) {
	userID, ok = currentUserID(c)
	if !ok {
		return "", "", false
	}

	clinicID, err := clinics.ResolveClinicID(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return "", "", false
	}
	return userID, clinicID, true
}
