// Package ports defines the core interfaces for the application.
package ports

import "context"

// SolverRunner runs one instance of the external solver.
//
//go:generate go run go.uber.org/mock/mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks
type SolverRunner interface {
	// Run starts a fresh solver, writes input to its standard input, closes it,
	// and returns everything the solver wrote to standard output.
	//
	// A non-zero exit is reported as domain.ErrSolverExecution carrying the
	// solver's diagnostics.
	Run(ctx context.Context, input string) (string, error)
}

// Solver resolves a grid to its words. The dispatcher implements it locally
// and the HTTP client implements it against a remote server.
type Solver interface {
	// Solve returns the words the server found for grid at depth.
	Solve(ctx context.Context, grid string, depth int) ([]string, error)
}
