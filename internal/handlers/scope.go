package handlers

import (
	"net/http"

	"menucraft/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// tenantScope pulls the tenant from the request context set by the JWT
// middleware.
func tenantScope(c echo.Context) (uuid.UUID, error) {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}
	return tenantID, nil
}

// branchScope resolves the branch a request operates on: the token's branch
// claim when present, otherwise an explicit branch_id query parameter.
func branchScope(c echo.Context) (uuid.UUID, error) {
	if branchID, ok := common.GetBranchIDFromContext(c.Request().Context()); ok {
		return branchID, nil
	}
	branchStr := c.QueryParam("branch_id")
	if branchStr == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "branch_id is required")
	}
	branchID, err := uuid.Parse(branchStr)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid branch_id format")
	}
	return branchID, nil
}

// pathID parses a UUID path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	idStr := c.Param(name)
	if idStr == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" format")
	}
	return id, nil
}
