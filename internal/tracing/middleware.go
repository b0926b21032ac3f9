package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/processor"
)

// TracingMiddlewareConfig configures the tracing middleware.
type TracingMiddlewareConfig struct {
	// Tracer creates the spans. Nil disables the middleware.
	Tracer trace.Tracer
}

// NewTracingMiddleware creates middleware that wraps each command in a span
// named command.process.<type>. Refused transitions record their wire code.
func NewTracingMiddleware(cfg TracingMiddlewareConfig) processor.Middleware {
	if cfg.Tracer == nil {
		return func(next processor.CommandHandler) processor.CommandHandler {
			return next
		}
	}

	return func(next processor.CommandHandler) processor.CommandHandler {
		return processor.HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			ctx = restoreSpanContext(ctx, cmd)

			ctx, span := cfg.Tracer.Start(ctx, SpanPrefixCommand+cmd.Type().String(),
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String(AttrCommandID, cmd.ID()),
				attribute.String(AttrCommandType, cmd.Type().String()),
				attribute.Int(AttrCommandPriority, cmd.Priority()),
			)
			if hasSource, ok := cmd.(interface{ Source() command.CommandSource }); ok {
				span.SetAttributes(attribute.String(AttrCommandSource, hasSource.Source().String()))
			}
			span.SetAttributes(commandAttributes(cmd)...)

			// Commands without a trace id adopt the span's so logs and events correlate.
			if setter, ok := cmd.(interface {
				TraceID() string
				SetTraceID(string)
			}); ok && setter.TraceID() == "" {
				setter.SetTraceID(span.SpanContext().TraceID().String())
			}

			result, err := next.Handle(ctx, cmd)

			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case result != nil && !result.Success:
				recordFailure(span, result.Error)
			default:
				if result != nil && len(result.Events) > 0 {
					span.AddEvent(EventEventsEmitted, trace.WithAttributes(
						attribute.Int("events.count", len(result.Events)),
					))
				}
				span.SetStatus(codes.Ok, "")
			}

			return result, err
		})
	}
}

func recordFailure(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Error, "command failed without error details")
		return
	}
	if de, ok := domain.AsError(err); ok {
		span.AddEvent(EventCommandRefused, trace.WithAttributes(
			attribute.Int(AttrErrorCode, de.Code()),
			attribute.String(AttrErrorMessage, de.Error()),
		))
		span.SetAttributes(attribute.Int(AttrErrorCode, de.Code()))
	} else {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, err.Error())
}

// commandAttributes extracts the entity references a command targets.
func commandAttributes(cmd command.Command) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if m, ok := cmd.(command.Mutation); ok {
		attrs = append(attrs, attribute.String(AttrCallerID, m.CallerID().String()))
	}
	switch c := cmd.(type) {
	case *command.AddContributionCommand:
		attrs = append(attrs, attribute.String(AttrArtworkID, c.ArtworkID.String()))
	case *command.FinalizeArtworkCommand:
		attrs = append(attrs, attribute.String(AttrArtworkID, c.ArtworkID.String()))
	case *command.MintNftCommand:
		attrs = append(attrs, attribute.String(AttrArtworkID, c.ArtworkID.String()))
	case *command.BuyNftCommand:
		attrs = append(attrs, attribute.String(AttrNftID, c.NftID.String()))
	case *command.GetArtworkQuery:
		attrs = append(attrs, attribute.String(AttrArtworkID, c.ArtworkID.String()))
	case *command.GetNftQuery:
		attrs = append(attrs, attribute.String(AttrNftID, c.NftID.String()))
	}
	return attrs
}

// restoreSpanContext parents the new span under a span context carried by
// the command, e.g. the HTTP request span.
func restoreSpanContext(ctx context.Context, cmd command.Command) context.Context {
	if hasSpanContext, ok := cmd.(interface{ SpanContext() trace.SpanContext }); ok {
		if sc := hasSpanContext.SpanContext(); sc.IsValid() {
			return trace.ContextWithRemoteSpanContext(ctx, sc)
		}
	}
	return ctx
}
