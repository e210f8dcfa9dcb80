package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

type uiHintServiceMock struct {
	subject string
	key     string
	req     dto.UIHintRequest
	err     error
}

func (m *uiHintServiceMock) Get(ctx context.Context, subject, key string) (*dto.UIHintResponse, error) {
	m.subject, m.key = subject, key
	if m.err != nil {
		return nil, m.err
	}
	return &dto.UIHintResponse{Key: key, Subject: subject}, nil
}

func (m *uiHintServiceMock) Set(ctx context.Context, key string, req dto.UIHintRequest) (*dto.UIHintResponse, error) {
	m.key, m.req = key, req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.UIHintResponse{Key: key, Subject: req.Subject, Seen: req.Seen}, nil
}

func newUIHintRouter(svc *uiHintServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUIHintHandler(svc)
	r := gin.New()
	r.GET("/ui-hints/:key", h.Get)
	r.PUT("/ui-hints/:key", h.Set)
	return r
}

func TestUIHintHandlerGet(t *testing.T) {
	svc := &uiHintServiceMock{}
	w := perform(newUIHintRouter(svc), http.MethodGet, "/ui-hints/multi-cell-selection?subject=user-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.subject)
	assert.Equal(t, "multi-cell-selection", svc.key)
}

func TestUIHintHandlerSet(t *testing.T) {
	svc := &uiHintServiceMock{}
	w := perform(newUIHintRouter(svc), http.MethodPut, "/ui-hints/multi-cell-selection", []byte(`{"subject":"user-1","seen":true}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.req.Seen)
}

func TestUIHintHandlerValidation(t *testing.T) {
	svc := &uiHintServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "hint subject is required")}
	w := perform(newUIHintRouter(svc), http.MethodGet, "/ui-hints/multi-cell-selection", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
