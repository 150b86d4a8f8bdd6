package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/apperror"
	"millstock/internal/infrastructure/http/v1/middleware"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func serveWithError(t *testing.T, err error) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	router.ServeHTTP(w, req)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorHandlerMapsAppError(t *testing.T) {
	w, body := serveWithError(t, apperror.NewNotFound("Product", "p-1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, body.Code)
	assert.Contains(t, body.Message, "Product")
}

func TestErrorHandlerKeepsValidationDetails(t *testing.T) {
	err := apperror.NewValidation("quantity must be positive").
		WithDetail("field", "quantity")

	w, body := serveWithError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, body.Code)
	assert.Equal(t, "quantity", body.Details["field"])
}

func TestErrorHandlerInsufficientStock(t *testing.T) {
	err := apperror.NewInsufficientStock("p-1", "25.00", "10.00")

	w, body := serveWithError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInsufficientStock, body.Code)
	assert.Equal(t, "25.00", body.Details["requested"])
	assert.Equal(t, "10.00", body.Details["available"])
}

func TestErrorHandlerDuplicateName(t *testing.T) {
	err := apperror.NewDuplicate("Product", "name", "board 3ply")

	w, body := serveWithError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeDuplicate, body.Code)
	assert.Equal(t, "name", body.Details["field"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	w, body := serveWithError(t, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "pq:")
}

func TestErrorHandlerDoesNotOverrideWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/partial", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": false})
		_ = c.Error(errors.New("late failure"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/partial", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
}
