package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"commerce/internal/usecase"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		kind usecase.Kind
		want int
	}{
		{usecase.KindNotFound, http.StatusNotFound},
		{usecase.KindConflict, http.StatusConflict},
		{usecase.KindInvalidState, http.StatusBadRequest},
		{usecase.KindInsufficientStock, http.StatusBadRequest},
		{usecase.KindValidation, http.StatusBadRequest},
		{usecase.KindInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.kind), c.kind.String())
	}
}

func TestWriteError(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := writeError(c, usecase.NewError(usecase.KindConflict, "payment already exists for this order"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"payment already exists for this order"}`, rec.Body.String())

	// unclassified errors never leak their message
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	err = writeError(c, errors.New("pq: connection refused"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
