// Package app implements the application layer for squares.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/squares/internal/adapters/broadcast"
	"go.trai.ch/squares/internal/adapters/detector"
	"go.trai.ch/squares/internal/adapters/httpapi"
	"go.trai.ch/squares/internal/adapters/telemetry"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/classifier"
	"go.trai.ch/squares/internal/engine/dispatcher"
	"go.trai.ch/squares/internal/engine/hub"
	"go.trai.ch/squares/internal/engine/page"
	"go.trai.ch/squares/internal/ui/render"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	settings    domain.Settings
	logger      ports.Logger
	store       ports.StateStore
	broadcaster *broadcast.Broadcaster
	hub         *hub.Hub
	dispatcher  *dispatcher.Dispatcher
	watcher     ports.Watcher
}

// New creates a new App instance.
func New(
	settings domain.Settings,
	log ports.Logger,
	store ports.StateStore,
	bc *broadcast.Broadcaster,
	h *hub.Hub,
	d *dispatcher.Dispatcher,
	w ports.Watcher,
) *App {
	return &App{
		settings:    settings,
		logger:      log,
		store:       store,
		broadcaster: bc,
		hub:         h,
		dispatcher:  d,
		watcher:     w,
	}
}

// Close releases the state store.
func (a *App) Close() error {
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Listen opens the configured listen address.
func (a *App) Listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", a.settings.ListenAddr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to listen"), "addr", a.settings.ListenAddr)
	}
	return l, nil
}

// Serve runs the solve server on l until ctx is done. Finished solve spans
// are logged.
func (a *App) Serve(ctx context.Context, l net.Listener) error {
	shutdown := telemetry.Setup(a.logger)
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	a.logger.Info("listening on " + l.Addr().String())
	return httpapi.NewServer(a.dispatcher, a.logger).Serve(ctx, l)
}

// SolveOptions configuration for the Solve method.
type SolveOptions struct {
	Grid       string
	BoardFile  string
	Depth      int
	OutputMode string
}

// Solve asks the server for the words of a grid and prints them grouped by
// length, marking words already known to be found or invalid.
func (a *App) Solve(ctx context.Context, out io.Writer, opts SolveOptions) error {
	grid := opts.Grid
	if opts.BoardFile != "" {
		attrs, err := readBoard(opts.BoardFile)
		if err != nil {
			return err
		}
		key, err := domain.ExtractGrid(attrs)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read grid from board"), "file", opts.BoardFile)
		}
		grid = string(key)
	}

	words, err := a.hub.Solve(ctx, grid, opts.Depth)
	if err != nil {
		return err
	}

	sets, err := classifier.LoadSets(ctx, a.store)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "showing results without word sets"))
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	return render.New(out, mode == detector.ModePlain).Render(words, sets.Found, sets.Invalid)
}

// ObserveOptions configuration for the Observe method.
type ObserveOptions struct {
	ID         string
	BoardFile  string
	Found      []string
	Invalid    []string
	Depth      int
	Recency    bool
	OutputMode string
}

// Observe runs one observing context fed by line-oriented signals from in.
// Besides signal lines it accepts "found <words>", "invalid <words>" and
// "solve [depth]", which are sent to the hub.
func (a *App) Observe(ctx context.Context, in io.Reader, out io.Writer, opts ObserveOptions) error {
	var board []string
	if opts.BoardFile != "" {
		var err error
		if board, err = readBoard(opts.BoardFile); err != nil {
			return err
		}
	}

	id := opts.ID
	if id == "" {
		id = "observer-" + uuid.NewString()[:8]
	}

	var clsOpts []classifier.Option
	if opts.Recency {
		clsOpts = append(clsOpts, classifier.WithRecencyCorrelation())
	}
	cls := classifier.New(a.store, a.broadcaster, a.logger, clsOpts...)

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	results := render.New(out, mode == detector.ModePlain)

	p := page.New(id, cls, a.logger,
		page.WithBoard(board),
		page.WithEvidence(classifier.Evidence{Found: opts.Found, Invalid: opts.Invalid}),
		page.WithOnChange(func(v page.View) { printView(out, results, v) }),
	)
	unsubscribe := a.broadcaster.Subscribe(p)
	defer unsubscribe()

	signals := make(chan domain.Signal)
	g, ctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to read signals"))
		}
	}()

	g.Go(func() error {
		return p.Run(ctx, signals)
	})
	g.Go(func() error {
		defer close(signals)
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				sig := a.handleLine(ctx, id, line, opts.Depth)
				if sig == nil {
					continue
				}
				select {
				case signals <- sig:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return g.Wait()
}

// handleLine sends hub commands itself and returns anything else as a signal.
// A solve line makes the context id the active one, so the grid is read from it.
func (a *App) handleLine(ctx context.Context, id, line string, depth int) domain.Signal {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "found":
		a.report(a.hub.Handle(ctx, domain.StoreFoundWordRequest{Words: fields[1:]}))
		return nil
	case "invalid":
		a.report(a.hub.Handle(ctx, domain.StoreInvalidWordRequest{Words: fields[1:]}))
		return nil
	case "solve":
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				a.logger.Warn("solve: depth must be a number, got " + fields[1])
				return nil
			}
			depth = n
		}
		a.broadcaster.Activate(id)
		a.solveActive(ctx, depth)
		return nil
	}

	sig, err := domain.ParseSignal(line)
	if err != nil {
		a.logger.Error(err)
		return nil
	}
	return sig
}

func (a *App) solveActive(ctx context.Context, depth int) {
	resp := a.hub.Handle(ctx, domain.ExtractGridRequest{})
	if !a.report(resp) {
		return
	}
	resp = a.hub.Handle(ctx, domain.SolveRequest{Grid: string(resp.Grid), Depth: depth})
	if !a.report(resp) {
		return
	}
	a.hub.ShowResults(ctx, resp.Words)
}

func (a *App) report(resp domain.Response) bool {
	if !resp.Success {
		a.logger.Warn(resp.ErrorCode + ": " + resp.Error)
	}
	return resp.Success
}

// Watch prints the stored word sets whenever another process changes them.
// It requires the file store backend.
func (a *App) Watch(ctx context.Context, out io.Writer) error {
	if a.settings.StoreBackend != domain.StoreFile {
		return zerr.With(zerr.Wrap(domain.ErrWatchUnsupported, "cannot watch store"), "backend", a.settings.StoreBackend)
	}

	path := a.settings.StorePath
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create state directory"), "path", path)
	}

	if err := a.watcher.Start(ctx, path); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	a.logger.Info("watching " + path)
	a.printSets(ctx, out)
	for range a.watcher.Events() {
		a.printSets(ctx, out)
	}
	return nil
}

func (a *App) printSets(ctx context.Context, out io.Writer) {
	sets, err := classifier.LoadSets(ctx, a.store)
	if err != nil {
		a.logger.Error(err)
		return
	}
	writeSets(out, sets.Found, sets.Invalid)
}

func printView(out io.Writer, results *render.Results, v page.View) {
	if len(v.Words) > 0 {
		_ = results.Render(v.Words, v.Found, v.Invalid)
	}
	writeSets(out, v.Found, v.Invalid)
}

func writeSets(out io.Writer, found, invalid domain.WordSet) {
	_, _ = fmt.Fprintf(out, "found: %s\ninvalid: %s\n",
		strings.Join(found.Sorted(), " "),
		strings.Join(invalid.Sorted(), " "),
	)
}

// readBoard reads whitespace-separated board cell attributes from path.
func readBoard(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrValidation, err), "failed to read board"), "file", path)
	}
	return strings.Fields(string(data)), nil
}
