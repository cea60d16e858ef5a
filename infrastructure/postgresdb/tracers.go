package postgresdb

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// QueryLogger is a pgx.QueryTracer that writes one record per statement,
// with its duration and the task id it touched when one was bound.
type QueryLogger struct {
	log *slog.Logger
}

// NewQueryLogger returns a tracer writing to log.
func NewQueryLogger(log *slog.Logger) *QueryLogger {
	return &QueryLogger{log: log}
}

type queryKey struct{}

type queryStart struct {
	sql    string
	taskID string
	at     time.Time
}

// TraceQueryStart remembers the statement for TraceQueryEnd.
func (q *QueryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryKey{}, queryStart{
		sql:    prettyPrintSQL(data.SQL),
		taskID: taskIDArg(data.Args),
		at:     time.Now(),
	})
}

// TraceQueryEnd logs the finished statement. Failures other than an empty
// result are logged at error level.
func (q *QueryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, _ := ctx.Value(queryKey{}).(queryStart)

	attrs := []slog.Attr{
		slog.String("sql", start.sql),
		slog.String("command_tag", data.CommandTag.String()),
	}
	if start.taskID != "" {
		attrs = append(attrs, slog.String("task_id", start.taskID))
	}
	if !start.at.IsZero() {
		attrs = append(attrs, slog.Duration("took", time.Since(start.at)))
	}

	if data.Err != nil && !errors.Is(HandlePgError(data.Err), ErrDBNotFound) {
		attrs = append(attrs, slog.String("err", data.Err.Error()))
		q.log.LogAttrs(ctx, slog.LevelError, "query", attrs...)
		return
	}

	q.log.LogAttrs(ctx, slog.LevelDebug, "query", attrs...)
}

// taskIDArg finds the task_id named argument, if the statement has one.
func taskIDArg(args []any) string {
	for _, arg := range args {
		named, ok := arg.(pgx.NamedArgs)
		if !ok {
			continue
		}
		if id, ok := named["task_id"].(string); ok {
			return id
		}
	}
	return ""
}

var (
	replaceTabs                      = regexp.MustCompile(`\t+`)
	replaceSpacesBeforeOpeningParens = regexp.MustCompile(`\s+\(`)
	replaceSpacesAfterOpeningParens  = regexp.MustCompile(`\(\s+`)
	replaceSpacesBeforeClosingParens = regexp.MustCompile(`\s+\)`)
	replaceSpacesAfterClosingParens  = regexp.MustCompile(`\)\s+`)
	replaceSpaces                    = regexp.MustCompile(`\s+`)
)

// prettyPrintSQL folds a statement onto one line.
func prettyPrintSQL(sql string) string {
	pretty := strings.ReplaceAll(sql, "\n", " ")
	pretty = replaceTabs.ReplaceAllString(pretty, "")
	pretty = replaceSpacesBeforeOpeningParens.ReplaceAllString(pretty, "(")
	pretty = replaceSpacesAfterOpeningParens.ReplaceAllString(pretty, "(")
	pretty = replaceSpacesAfterClosingParens.ReplaceAllString(pretty, ")")
	pretty = replaceSpacesBeforeClosingParens.ReplaceAllString(pretty, ")")
	pretty = replaceSpaces.ReplaceAllString(pretty, " ")

	return strings.TrimSpace(pretty)
}
