package notification

import (
	"context"
	"testing"

	"go-attendance/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	n := NewLogNotifier(zap.New(core))
	ctx := context.Background()

	require.NoError(t, n.LeaveApplied(ctx, events.LeaveAppliedEvent{LeaveID: "l1", UserID: "u1", ManagerID: "m1"}))
	require.NoError(t, n.LeaveApplied(ctx, events.LeaveAppliedEvent{LeaveID: "l2", UserID: "u2"}))

	feedback := "enjoy"
	require.NoError(t, n.LeaveDecided(ctx, events.LeaveStatusChangedEvent{
		LeaveID:  "l1",
		UserID:   "u1",
		Status:   "APPROVED",
		Feedback: &feedback,
	}))

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "notify manager of leave request", entries[0].Message)
	assert.Equal(t, "m1", entries[0].ContextMap()["manager_id"])

	assert.Equal(t, zap.DebugLevel, entries[1].Level)

	assert.Equal(t, "notify employee of leave decision", entries[2].Message)
	assert.Equal(t, "APPROVED", entries[2].ContextMap()["status"])
	assert.Equal(t, "enjoy", entries[2].ContextMap()["feedback"])
}
