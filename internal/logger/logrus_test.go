package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, Entry(ctx), "falls back to the standard logger")

	l := logrus.New()
	e := logrus.NewEntry(l).WithField("op", "erosion")
	ctx = WithLogEntry(ctx, e)
	require.Same(t, e, Entry(ctx))

	ctx, child := WithFields(ctx, logrus.Fields{"radius": 3})
	require.Same(t, child, Entry(ctx))
	require.Equal(t, "erosion", child.Data["op"])
	require.Equal(t, 3, child.Data["radius"])
}
