package rag

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/config"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
)

// The answering process prints a labeled answer block followed by a
// labeled score, e.g.
//
//	LLM Answer: Paris
//
//	Reward Score (semantic alignment): 0.87
var (
	answerPattern = regexp.MustCompile(`(?s)LLM Answer:\s*(.*?)\s*Reward Score`)
	scorePattern  = regexp.MustCompile(`Reward Score \(semantic alignment\):\s*([0-9.]+)`)
)

// Dispatcher answers queries by spawning one external process per query,
// feeding the query over stdin and scraping the labeled result from
// stdout. Dispatches share no state, so concurrent queries are isolated.
type Dispatcher struct {
	command string
	args    []string
	timeout time.Duration
	log     *slog.Logger
}

func NewDispatcher(conf *config.Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		command: conf.Rag.Command,
		args:    conf.Rag.Args,
		timeout: time.Duration(conf.Rag.TimeoutSeconds) * time.Second,
		log:     logger.With(sl.Module("rag-dispatcher")),
	}
}

// Answer runs one answering process for the query. The wait is bounded:
// past the configured deadline the process is killed and ErrDeadline is
// returned. Cancelling ctx kills the process the same way.
func (d *Dispatcher) Answer(ctx context.Context, query string) (*entity.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.command, d.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdin pipe: %w", err)
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start answer process: %w", err)
	}

	// Closing stdin signals end-of-input to the process.
	if _, err := io.WriteString(stdin, query); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return nil, fmt.Errorf("write query to process: %w", err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return nil, fmt.Errorf("close process stdin: %w", err)
	}

	err = cmd.Wait()
	d.log.With(
		slog.Float64("duration", time.Since(started).Seconds()),
	).Debug("answer process finished")

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrDeadline, d.timeout)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("answer dispatch cancelled: %w", ctx.Err())
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			d.log.With(
				slog.Int("exit_code", exitErr.ExitCode()),
				slog.String("stderr", stderr.String()),
			).Error("answer process failed")
			return nil, &ProcessError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("wait for answer process: %w", err)
	}

	return parseOutput(stdout.String())
}

// parseOutput extracts the answer text and the alignment score from the
// process output. Both markers must be present.
func parseOutput(output string) (*entity.Answer, error) {
	answerMatch := answerPattern.FindStringSubmatch(output)
	scoreMatch := scorePattern.FindStringSubmatch(output)
	if answerMatch == nil || scoreMatch == nil {
		return nil, &ParseError{Output: output}
	}

	score, err := strconv.ParseFloat(scoreMatch[1], 64)
	if err != nil {
		return nil, &ParseError{Output: output}
	}

	return &entity.Answer{
		Text:        strings.TrimSpace(answerMatch[1]),
		RewardScore: score,
	}, nil
}
