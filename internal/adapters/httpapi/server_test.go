package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squares/internal/adapters/httpapi"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Solve(t *testing.T) {
	ctrl := gomock.NewController(t)
	solver := mocks.NewMockSolver(ctrl)
	solver.EXPECT().Solve(gomock.Any(), "a b c d e f g h i", 4).Return([]string{"cat", "bat"}, nil)

	rec := post(t, httpapi.NewServer(solver, nil).Handler(), `{"grid":"a b c d e f g h i","depth":4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"output":"cat bat"}`, rec.Body.String())
}

func TestServer_SolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation",
			err:      zerr.Wrap(domain.ErrValidation, "depth must be between 4 and 16"),
			wantCode: http.StatusBadRequest,
			wantErr:  domain.CodeInvalidInput,
		},
		{
			name:     "timeout",
			err:      zerr.Wrap(domain.ErrSolverTimeout, "solver timed out"),
			wantCode: http.StatusGatewayTimeout,
			wantErr:  domain.CodeSolverTimeout,
		},
		{
			name:     "execution",
			err:      zerr.Wrap(errors.Join(domain.ErrSolverExecution, errors.New("exit status 1")), "solver failed"),
			wantCode: http.StatusInternalServerError,
			wantErr:  domain.CodeSolverError,
		},
		{
			name:     "internal",
			err:      errors.New("unexpected"),
			wantCode: http.StatusInternalServerError,
			wantErr:  domain.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			solver := mocks.NewMockSolver(ctrl)
			solver.EXPECT().Solve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)
			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Error(gomock.Any()).AnyTimes()

			rec := post(t, httpapi.NewServer(solver, log).Handler(), `{"grid":"a b","depth":4}`)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body httpapi.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body.ErrorCode)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestServer_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	solver := mocks.NewMockSolver(ctrl)

	rec := post(t, httpapi.NewServer(solver, nil).Handler(), `{"grid":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := httpapi.NewServer(mocks.NewMockSolver(ctrl), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := httpapi.NewServer(mocks.NewMockSolver(ctrl), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/solve", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := httpapi.NewServer(mocks.NewMockSolver(ctrl), nil)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
