package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// RetryPolicy bounds how often a transaction hitting a transient storage failure is re-run.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	Retry     RetryPolicy
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// WithTransaction runs fn inside one database transaction. It commits when fn succeeds and
// rolls back otherwise. Transient storage failures re-run the whole transaction per Retry.
func (s *BaseService) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return s.withRetry(ctx, func() error {
		return s.runInTx(ctx, s.TxManager.Begin, fn)
	})
}

// WithSnapshot runs fn inside a read-only transaction, so all of fn's reads agree with
// each other.
func (s *BaseService) WithSnapshot(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return s.withRetry(ctx, func() error {
		return s.runInTx(ctx, s.TxManager.BeginSnapshot, fn)
	})
}

func (s *BaseService) withRetry(ctx context.Context, run func() error) error {
	attempts := s.Retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = run()
		if err == nil || !errors.Is(err, apperrors.ErrTransient) {
			return err
		}
		if attempt == attempts {
			break
		}
		s.GetLogger(ctx).Warn("Transient storage failure, retrying transaction",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Retry.Backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (s *BaseService) runInTx(ctx context.Context, begin func(context.Context) (pgx.Tx, error), fn func(tx pgx.Tx) error) error {
	tx, err := begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// No-op once committed.
		if rbErr := s.TxManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return s.TxManager.Commit(ctx, tx)
}
