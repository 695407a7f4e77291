package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/dto"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
)

// uuidParam parses a path parameter as a uuid and answers 400 when it is
// malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses a required query parameter as a uuid
func uuidQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{
			name: "The field '" + name + "' is required.",
		})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the request body. Validation failures are
// reported per field.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := dto.ValidationDetails(err); details != nil {
			apierrors.BadRequestWithDetails(c, "Validation failed", details)
		} else {
			apierrors.BadRequest(c, "Invalid request body")
		}
		return false
	}
	return true
}
