package dispatcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/squares/internal/adapters/httpapi"
	"go.trai.ch/squares/internal/adapters/store"
	"go.trai.ch/squares/internal/adapters/telemetry"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/core/ports/mocks"
	"go.trai.ch/squares/internal/engine/cache"
	"go.trai.ch/squares/internal/engine/dispatcher"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const grid = "a b c d e f g h i"

func newCache() ports.ResultCache {
	return cache.New(store.NewMemoryStore(), nil)
}

func TestSolve_CacheMissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockSolverRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "a b c d e f g h i 4\n").Return("cat bat\n", nil).Times(1)

	d := dispatcher.New(runner, newCache(), telemetry.NewNoOpTracer(), nil, time.Second)

	words, err := d.Solve(t.Context(), grid, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "bat"}, words)

	again, err := d.Solve(t.Context(), grid, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "bat"}, again)
}

func TestSolve_RejectsInvalidParameters(t *testing.T) {
	for _, tt := range []struct {
		name  string
		grid  string
		depth int
	}{
		{name: "depth above range", grid: grid, depth: 20},
		{name: "depth below range", grid: grid, depth: 3},
		{name: "empty grid", grid: " ", depth: 4},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// No expectations: any call fails the test.
			runner := mocks.NewMockSolverRunner(ctrl)
			rc := mocks.NewMockResultCache(ctrl)

			d := dispatcher.New(runner, rc, telemetry.NewNoOpTracer(), nil, time.Second)
			_, err := d.Solve(t.Context(), tt.grid, tt.depth)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSolve_HTTPRejectsDepthWithoutSpawning(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockSolverRunner(ctrl)

	d := dispatcher.New(runner, newCache(), telemetry.NewNoOpTracer(), nil, time.Second)
	srv := httpapi.NewServer(d, nil)

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(`{"grid":"a b c d e f g h i","depth":20}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolve_TimeoutLeavesSolverRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		finished := make(chan struct{})
		runner := runnerFunc(func(ctx context.Context, _ string) (string, error) {
			time.Sleep(time.Minute)
			close(finished)
			return "late", ctx.Err()
		})
		ctrl := gomock.NewController(t)
		rc := mocks.NewMockResultCache(ctrl)
		rc.EXPECT().Get(gomock.Any(), domain.PuzzleKey(grid)).Return(nil, false)

		d := dispatcher.New(runner, rc, telemetry.NewNoOpTracer(), nil, domain.DefaultSolverTimeout)

		start := time.Now()
		_, err := d.Solve(t.Context(), grid, 4)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, domain.ErrSolverTimeout)
		assert.Equal(t, domain.DefaultSolverTimeout, elapsed)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "30s", zErr.Metadata()["timeout"])

		// The solver was not cancelled and completes on its own.
		<-finished
		assert.Equal(t, time.Minute, time.Since(start))
	})
}

func TestSolve_ExecutionFailureIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockSolverRunner(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	failure := zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverExecution, errors.New("exit status 2")), "solver failed"), "stderr", "bad grid")
	rc.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", failure)

	d := dispatcher.New(runner, rc, telemetry.NewNoOpTracer(), nil, time.Second)
	_, err := d.Solve(t.Context(), grid, 4)

	require.ErrorIs(t, err, domain.ErrSolverExecution)
	assert.Equal(t, domain.CodeSolverError, domain.ErrorCode(err))
}

func TestSolve_CallerCancellation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := runnerFunc(func(context.Context, string) (string, error) {
			time.Sleep(time.Hour)
			return "", nil
		})
		rc := cache.New(store.NewMemoryStore(), nil)
		d := dispatcher.New(runner, rc, telemetry.NewNoOpTracer(), nil, 2*time.Hour)

		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()

		_, err := d.Solve(ctx, grid, 4)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		// Let the detached solver finish so the bubble has no blocked goroutines.
		time.Sleep(time.Hour)
	})
}

func TestSolve_Span(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tracer := telemetry.NewOTelTracer("test", telemetry.WithTracerProvider(tp))

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockSolverRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", errors.Join(domain.ErrSolverExecution, errors.New("exit status 1")))

	d := dispatcher.New(runner, newCache(), tracer, nil, time.Second)
	_, err := d.Solve(t.Context(), "A B", 5)
	require.Error(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "solve", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String(dispatcher.AttrGrid, "a b"))
	assert.Contains(t, span.Attributes(), attribute.Int(dispatcher.AttrDepth, 5))
	assert.Contains(t, span.Attributes(), attribute.Bool(dispatcher.AttrCacheHit, false))
}

type runnerFunc func(ctx context.Context, input string) (string, error)

func (f runnerFunc) Run(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}
