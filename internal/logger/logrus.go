package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxKeyLog ctxKey = iota
)

// Entry returns the log entry carried by ctx, or an entry on the standard logger
// when there is none.
func Entry(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(ctxKeyLog).(*logrus.Entry); ok && e != nil {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogEntry(ctx context.Context, e *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKeyLog, e)
}

// WithFields derives a child entry and returns both the new context and the entry.
func WithFields(ctx context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	e := Entry(ctx).WithFields(fields)
	return WithLogEntry(ctx, e), e
}
