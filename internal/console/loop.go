// Package console is the operator-facing side of sockchat: startup
// prompts, the line-oriented input loop and the notification renderer.
package console

//go:generate go run go.uber.org/mock/mockgen -source=loop.go -destination=../../mocks/mock_console.go -package=mocks

import (
	"context"
	"io"
	"strings"

	ncerr "sockchat/internal/errors"
	"sockchat/util"
)

// Literal in-session commands.
const (
	CommandList = "/list"
	CommandQuit = "/quit"
)

// Action is what one input line asks for.
type Action int

const (
	ActionNone Action = iota // blank line
	ActionChat
	ActionList
	ActionQuit
)

// Commander is the set of controller operations the loop drives.
type Commander interface {
	SendPublicMessage(text string) error
	SendListUsersRequest() error
	SendQuitRequest() error
	Disconnect() error
}

// Classify trims line and decides what it means.  Commands match
// exactly and case-sensitively; everything else non-empty is chat text.
func Classify(line string) (Action, string) {
	text := strings.TrimSpace(line)
	switch text {
	case "":
		return ActionNone, ""
	case CommandList:
		return ActionList, text
	case CommandQuit:
		return ActionQuit, text
	default:
		return ActionChat, text
	}
}

// Run reads operator lines from in until /quit, end of input, a fatal
// send failure or ctx cancellation.  The transport is released exactly once
// on every path.  End of input behaves like /quit; cancellation only
// disconnects.
func Run(ctx context.Context, in io.Reader, cmd Commander, logger *util.Logger) error {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	lines, errc := util.ReadLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			logger.Verbose("input loop cancelled")
			cmd.Disconnect() //nolint:errcheck
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil && ctx.Err() == nil {
					cmd.Disconnect() //nolint:errcheck
					return err
				}
				if ctx.Err() != nil {
					cmd.Disconnect() //nolint:errcheck
					return nil
				}
				logger.Verbose("end of input")
				return quit(cmd)
			}

			action, text := Classify(line)
			var err error
			switch action {
			case ActionNone:
				continue
			case ActionList:
				err = cmd.SendListUsersRequest()
			case ActionQuit:
				return quit(cmd)
			case ActionChat:
				err = cmd.SendPublicMessage(text)
			}
			if err != nil {
				if !ncerr.IsFatal(err) {
					logger.Warn("%v", err)
					continue
				}
				cmd.Disconnect() //nolint:errcheck
				return err
			}
		}
	}
}

// quit emits the quit command and then disconnects, even when the
// emission fails.
func quit(cmd Commander) error {
	err := cmd.SendQuitRequest()
	if derr := cmd.Disconnect(); err == nil {
		err = derr
	}
	return err
}
