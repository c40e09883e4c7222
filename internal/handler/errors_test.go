package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandloop/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrNoPriceConfigured, http.StatusBadRequest},
		{domain.ErrMissingProof, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrInsufficientFunds, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: create checkout: timeout", domain.ErrUpstreamGateway), http.StatusBadGateway},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}
