package page_test

import (
	"context"
	"encoding/json"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squares/internal/adapters/broadcast"
	"go.trai.ch/squares/internal/adapters/store"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/engine/classifier"
	"go.trai.ch/squares/internal/engine/page"
)

var board = []string{"0-0-c-x-y", "0-1-r-x-y", "0-2-a-x-y", "1-0-n-x-y", "1-1-e-x-y"}

type harness struct {
	store *store.MemoryStore
	bc    *broadcast.Broadcaster
}

func newHarness() *harness {
	return &harness{store: store.NewMemoryStore(), bc: broadcast.New(nil)}
}

func (h *harness) page(id string, opts ...page.Option) *page.Context {
	cls := classifier.New(h.store, h.bc, nil)
	p := page.New(id, cls, nil, opts...)
	h.bc.Subscribe(p)
	return p
}

func (h *harness) invalid(t *testing.T) []string {
	t.Helper()
	raw, err := h.store.Get(t.Context(), []string{domain.InvalidWordsKey})
	require.NoError(t, err)
	var words []string
	require.NoError(t, json.Unmarshal(raw[domain.InvalidWordsKey], &words))
	return words
}

func TestContext_SuccessUpdatesViewAndStore(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness()
		p := h.page("tab-1", page.WithEvidence(classifier.Evidence{Invalid: []string{"crane"}}))

		signals := make(chan domain.Signal)
		errc := make(chan error, 1)
		go func() { errc <- p.Run(t.Context(), signals) }()

		signals <- domain.InputSignal{Value: "crane"}
		signals <- domain.SubmitSignal{Token: "t1"}
		signals <- domain.OutcomeSignal{Kind: domain.OutcomeSuccess, Token: "t1"}
		close(signals)
		require.NoError(t, <-errc)

		view := p.View()
		assert.Equal(t, []string{"crane"}, view.Found.Sorted())
		assert.Empty(t, view.Invalid.Sorted())
		assert.Empty(t, h.invalid(t))
	})
}

func TestContext_ShowResults(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness()
		var changes []page.View
		p := h.page("tab-1", page.WithOnChange(func(v page.View) { changes = append(changes, v) }))

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})
		go func() {
			_ = p.Run(ctx, make(chan domain.Signal))
			close(done)
		}()

		require.NoError(t, p.Deliver(ctx, domain.ShowResults{
			Words:        []string{"crane", "ace", "acne"},
			FoundWords:   []string{"ace"},
			InvalidWords: []string{"nacre"},
		}))
		synctest.Wait()

		view := p.View()
		assert.Equal(t, []string{"crane", "ace", "acne"}, view.Words)
		assert.True(t, view.Found.Has("ace"))
		assert.True(t, view.Invalid.Has("nacre"))
		assert.Equal(t, []domain.WordGroup{
			{Length: 3, Words: []string{"ace"}},
			{Length: 4, Words: []string{"acne"}},
			{Length: 5, Words: []string{"crane"}},
		}, view.Groups())

		// An empty result clears the list but keeps the sets.
		require.NoError(t, p.Deliver(ctx, domain.ShowResults{}))
		synctest.Wait()
		view = p.View()
		assert.Empty(t, view.Words)
		assert.True(t, view.Found.Has("ace"))

		cancel()
		<-done
		assert.Len(t, changes, 2)
	})
}

func TestContext_DeliverFailures(t *testing.T) {
	p := page.New("tab-1", classifier.New(store.NewMemoryStore(), broadcast.New(nil), nil), nil, page.WithInboxSize(1))

	require.NoError(t, p.Deliver(t.Context(), domain.UpdateFoundWords{}))
	err := p.Deliver(t.Context(), domain.UpdateFoundWords{})
	require.ErrorIs(t, err, domain.ErrUndeliverable)

	signals := make(chan domain.Signal)
	close(signals)
	require.NoError(t, p.Run(t.Context(), signals))

	err = p.Deliver(t.Context(), domain.UpdateFoundWords{})
	require.ErrorIs(t, err, domain.ErrUndeliverable)
}

func TestContext_ExtractGrid(t *testing.T) {
	p := page.New("tab-1", nil, nil, page.WithBoard(board))
	key, err := p.ExtractGrid(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.PuzzleKey("c r a n e"), key)

	empty := page.New("tab-2", nil, nil)
	_, err = empty.ExtractGrid(t.Context())
	require.ErrorIs(t, err, domain.ErrNoGridElements)
}

func TestContext_TwoContextsLoseAnUpdate(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness()
		first := h.page("tab-1")
		second := h.page("tab-2")

		firstSignals := make(chan domain.Signal)
		secondSignals := make(chan domain.Signal)
		go func() { _ = first.Run(t.Context(), firstSignals) }()
		go func() { _ = second.Run(t.Context(), secondSignals) }()
		synctest.Wait()

		firstSignals <- domain.InputSignal{Value: "crane"}
		firstSignals <- domain.SubmitSignal{}
		firstSignals <- domain.OutcomeSignal{Kind: domain.OutcomeFailure}
		synctest.Wait()

		// The second context sees the broadcast but its own sets are unchanged.
		assert.Equal(t, []string{"crane"}, second.View().Invalid.Sorted())

		secondSignals <- domain.InputSignal{Value: "slate"}
		secondSignals <- domain.SubmitSignal{}
		secondSignals <- domain.OutcomeSignal{Kind: domain.OutcomeFailure}
		synctest.Wait()

		assert.Equal(t, []string{"slate"}, h.invalid(t))
		assert.Equal(t, []string{"slate"}, first.View().Invalid.Sorted())

		close(firstSignals)
		close(secondSignals)
	})
}
