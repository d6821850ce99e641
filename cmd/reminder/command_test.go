package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/lomoval/reminder/internal/app"
	"github.com/lomoval/reminder/internal/storage"
	memorystorage "github.com/lomoval/reminder/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake()
	clk.Set(time.Date(2025, 1, 10, 8, 45, 0, 0, time.UTC))
	var out bytes.Buffer
	cmd := newCommand(app.New(memorystorage.New(clk, time.UTC)), &out, time.UTC)

	run := func(args ...string) []byte {
		t.Helper()
		out.Reset()
		require.NoError(t, cmd.Run(ctx, args))
		return out.Bytes()
	}

	var added map[string]int64
	require.NoError(t, json.Unmarshal(
		run("add", "-title", "Standup", "-at", "2025-01-10T09:00", "-advance", "15"), &added))
	require.NotZero(t, added["id"])
	run("add", "-title", "Review", "-at", "2025-01-10 12:00", "-description", "code review")

	var events []storage.Event
	require.NoError(t, json.Unmarshal(run("list"), &events))
	require.Len(t, events, 2)
	require.Equal(t, "Standup", events[0].Title)
	require.Equal(t, "2025-01-10T12:00", events[1].EventTime)
	require.Equal(t, storage.DefaultAdvanceMinutes, events[1].AdvanceMinutes)

	var pending []storage.PendingEvent
	require.NoError(t, json.Unmarshal(run("pending"), &pending))
	require.Len(t, pending, 1)
	require.Equal(t, added["id"], pending[0].ID)

	run("notify", "1")
	require.NoError(t, json.Unmarshal(run("pending"), &pending))
	require.Empty(t, pending)

	run("update", "1", "-title", "Standup", "-at", "2025-01-11T09:00")
	var reset map[string]int64
	require.NoError(t, json.Unmarshal(run("reset"), &reset))
	require.Equal(t, int64(1), reset["reset"])

	run("delete", "1")
	run("delete", "1")
	require.NoError(t, json.Unmarshal(run("list"), &events))
	require.Len(t, events, 1)
}

func TestCommandErrors(t *testing.T) {
	ctx := context.Background()
	cmd := newCommand(app.New(memorystorage.New(clock.NewFake(), time.UTC)), &bytes.Buffer{}, time.UTC)

	require.ErrorIs(t, cmd.Run(ctx, nil), ErrIncorrectArgs)
	require.ErrorIs(t, cmd.Run(ctx, []string{"shout"}), ErrUnknownCommand)
	require.ErrorIs(t, cmd.Run(ctx, []string{"delete"}), ErrIncorrectArgs)
	require.ErrorIs(t, cmd.Run(ctx, []string{"notify", "one"}), ErrIncorrectArgs)
	require.ErrorIs(t, cmd.Run(ctx, []string{"add", "-title", "t", "-at", "soon"}), ErrIncorrectTimeArg)
	require.ErrorIs(t, cmd.Run(ctx, []string{"add", "-at", "2025-01-10T09:00"}), storage.ErrEmptyTitle)
	require.ErrorIs(t, cmd.Run(ctx, []string{"add", "-bogus"}), ErrIncorrectArgs)
}
