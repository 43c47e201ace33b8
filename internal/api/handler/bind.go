package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// statusParam reads the status from the query string, falling back to a
// JSON body.
func statusParam(c echo.Context) (string, error) {
	if s := c.QueryParam("status"); s != "" {
		return s, nil
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return "", err
	}
	return req.Status, nil
}
