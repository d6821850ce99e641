package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lomoval/reminder/internal/app"
	"github.com/lomoval/reminder/internal/storage"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrIncorrectArgs    = errors.New("incorrect arguments")
	ErrIncorrectTimeArg = errors.New("incorrect event time")
)

type command struct {
	app *app.App
	out io.Writer
	loc *time.Location
}

func newCommand(a *app.App, out io.Writer, loc *time.Location) *command {
	return &command{app: a, out: out, loc: loc}
}

func (c *command) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("command is not provided: %w", ErrIncorrectArgs)
	}
	name, args := args[0], args[1:]
	switch name {
	case "init":
		// Storage is prepared on start.
		return c.print(map[string]string{"status": "ok"})
	case "add":
		p, err := c.parseEvent(name, args)
		if err != nil {
			return err
		}
		id, err := c.app.CreateEvent(ctx, p)
		if err != nil {
			return err
		}
		return c.print(map[string]int64{"id": id})
	case "update":
		id, rest, err := parseID(args)
		if err != nil {
			return err
		}
		p, err := c.parseEvent(name, rest)
		if err != nil {
			return err
		}
		if err := c.app.UpdateEvent(ctx, id, p); err != nil {
			return err
		}
		return c.print(map[string]int64{"id": id})
	case "list":
		events, err := c.app.ListEvents(ctx)
		if err != nil {
			return err
		}
		return c.print(events)
	case "delete":
		id, _, err := parseID(args)
		if err != nil {
			return err
		}
		if err := c.app.RemoveEvent(ctx, id); err != nil {
			return err
		}
		return c.print(map[string]int64{"id": id})
	case "notify":
		id, _, err := parseID(args)
		if err != nil {
			return err
		}
		if err := c.app.MarkNotified(ctx, id); err != nil {
			return err
		}
		return c.print(map[string]int64{"id": id})
	case "reset":
		n, err := c.app.ResetNotifiedForFuture(ctx)
		if err != nil {
			return err
		}
		return c.print(map[string]int64{"reset": n})
	case "pending":
		events, err := c.app.PendingEvents(ctx)
		if err != nil {
			return err
		}
		return c.print(events)
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
}

func (c *command) parseEvent(name string, args []string) (app.EventParams, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "event title")
	at := fs.String("at", "", "event time, YYYY-MM-DDTHH:MM or YYYY-MM-DD HH:MM")
	description := fs.String("description", "", "event description")
	advance := fs.Int("advance", storage.DefaultAdvanceMinutes, "minutes before the event to notify")
	if err := fs.Parse(args); err != nil {
		return app.EventParams{}, fmt.Errorf("%s: %w: %v", name, ErrIncorrectArgs, err)
	}

	eventTime, ok := storage.ParseEventTime(*at, c.loc)
	if !ok {
		return app.EventParams{}, fmt.Errorf("%q: %w", *at, ErrIncorrectTimeArg)
	}
	return app.EventParams{
		Title:          *title,
		Time:           eventTime,
		Description:    *description,
		AdvanceMinutes: advance,
	}, nil
}

func (c *command) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("event id is not provided: %w", ErrIncorrectArgs)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("event id %q: %w", args[0], ErrIncorrectArgs)
	}
	return id, args[1:], nil
}
