package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ro706/Project-MARS/entity"
)

// AnswerProvider is the capability the chat API depends on: one query in,
// one answer with an alignment score out. Implementations may shell out
// to a local process or call a remote service.
type AnswerProvider interface {
	Answer(ctx context.Context, query string) (*entity.Answer, error)
}

var (
	// ErrEmptyQuery is returned before any external work is started.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrDeadline marks a dispatch that was killed after the configured
	// deadline elapsed.
	ErrDeadline = errors.New("answer deadline exceeded")
)

// ProcessError reports an answering process that exited non-zero. Stderr
// holds the accumulated error stream for operator diagnostics; it must
// not be echoed back to clients.
type ProcessError struct {
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("answer process exited with code %d", e.ExitCode)
}

// ParseError reports a clean exit whose output did not contain both
// expected markers. Output preserves the full captured stdout.
type ParseError struct {
	Output string
}

func (e *ParseError) Error() string {
	return "answer process output did not match expected format"
}
