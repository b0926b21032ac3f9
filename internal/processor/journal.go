package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/log"
)

// ErrJournalAppend wraps failures to persist an applied mutation.
var ErrJournalAppend = errors.New("journal append failed")

// Appender persists applied mutations. Satisfied by *sqlite.Journal.
type Appender interface {
	Append(ctx context.Context, m command.Mutation) (int64, error)
}

// Undoer reverts the transition the handler just applied. Satisfied by *engine.Engine.
type Undoer interface {
	Undo() error
}

// JournalMiddlewareConfig configures the journal middleware.
type JournalMiddlewareConfig struct {
	// Journal receives successful mutations. If nil, the middleware is a no-op.
	Journal Appender
	// Rollback reverts the applied transition when the append fails.
	// Must sit directly around the handler that applied it.
	Rollback Undoer
}

// NewJournalMiddleware appends every successful mutation to the journal.
// Refused commands, queries and replayed commands are never written.
// When the append fails the transition is rolled back, its events are dropped
// and the command reports ErrJournalAppend.
func NewJournalMiddleware(cfg JournalMiddlewareConfig) Middleware {
	return func(next CommandHandler) CommandHandler {
		if cfg.Journal == nil {
			return next
		}
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			result, err := next.Handle(ctx, cmd)
			if err != nil || result == nil || !result.Success {
				return result, err
			}
			if !cmd.Type().IsMutation() || sourceOf(cmd) == command.SourceReplay {
				return result, nil
			}
			m, ok := cmd.(command.Mutation)
			if !ok {
				return result, nil
			}

			seq, appendErr := cfg.Journal.Append(ctx, m)
			if appendErr != nil {
				err := fmt.Errorf("%w: %w", ErrJournalAppend, appendErr)
				if cfg.Rollback == nil {
					log.ErrorErr(log.CatJournal, "mutation applied but not journaled", appendErr,
						"command_id", cmd.ID(),
						"command_type", cmd.Type().String(),
					)
					return nil, err
				}
				if undoErr := cfg.Rollback.Undo(); undoErr != nil {
					log.ErrorErr(log.CatJournal, "rollback after failed append", undoErr,
						"command_id", cmd.ID(),
						"command_type", cmd.Type().String(),
					)
					return nil, errors.Join(err, fmt.Errorf("rollback: %w", undoErr))
				}
				log.ErrorErr(log.CatJournal, "mutation rolled back, journal append failed", appendErr,
					"command_id", cmd.ID(),
					"command_type", cmd.Type().String(),
				)
				return nil, err
			}
			log.Debug(log.CatJournal, "mutation journaled", "seq", seq, "command_id", cmd.ID())
			return result, nil
		})
	}
}
