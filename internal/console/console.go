// Package console runs the interactive manager and mechanic menus on top of
// a workshop.Shop. Input is read line by line; malformed input is reported
// and never ends the session. End of input does.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcus/workshop/internal/logging"
	"github.com/marcus/workshop/internal/tasks"
	"github.com/marcus/workshop/internal/workshop"
)

// maxLineBytes caps a single input line. Longer lines are discarded.
const maxLineBytes = 1 << 20

var (
	errNotNumber   = errors.New("not a number")
	errLineTooLong = errors.New("input line too long")
)

// BoardFunc shows the read-only workshop board and returns when it closes.
type BoardFunc func(*workshop.Shop) error

// Console reads menu choices from in and writes prompts and results to out.
type Console struct {
	shop  *workshop.Shop
	in    *bufio.Reader
	out   io.Writer
	st    styles
	board BoardFunc
	log   *logging.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithBoard sets the function behind the "Workshop Board" menu item.
func WithBoard(fn BoardFunc) Option {
	return func(c *Console) { c.board = fn }
}

// WithNoColor disables styling.
func WithNoColor(noColor bool) Option {
	return func(c *Console) {
		if noColor {
			c.st = newStyles(c.out, true)
		}
	}
}

// New creates a console session for shop.
func New(shop *workshop.Shop, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		shop: shop,
		in:   bufio.NewReader(in),
		out:  out,
		st:   newStyles(out, false),
		log:  logging.Component("console"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the user-type menu until the user exits, input ends or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.log.Info("console session started")
	defer c.log.Info("console session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.heading("User Type:")
		c.println("1. Manager")
		c.println("2. Mechanic")
		c.println("3. Exit")

		choice, err := c.readInt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			c.println("")
			c.println("Exiting the system. Goodbye!")
			return nil
		}
		if err != nil {
			c.warn("Invalid input. Please enter a number (1, 2, or 3).")
			continue
		}

		switch choice {
		case 1:
			err = c.managerMenu(ctx)
		case 2:
			if !c.shop.HasMechanics() {
				c.warn("No mechanics available. Please ask the manager to add mechanics.")
				continue
			}
			err = c.mechanicMenu(ctx)
		case 3:
			c.println("Exiting the system. Goodbye!")
			return nil
		default:
			c.warn("Invalid choice. Please try again.")
		}

		if errors.Is(err, io.EOF) {
			c.println("")
			c.println("Exiting the system. Goodbye!")
			return nil
		}
		if errors.Is(err, errLineTooLong) {
			c.log.WarnCtx("input line discarded", map[string]any{"limit": maxLineBytes})
			c.warn("Input line too long. Returning to main menu.")
			continue
		}
		if err != nil {
			return err
		}
	}
}

// readLine prompts and returns the next input line without its newline.
// It returns io.EOF once input is exhausted and errLineTooLong, after
// consuming the whole line, when it exceeds maxLineBytes.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	var b strings.Builder
	read, tooLong := false, false
	for {
		chunk, more, err := c.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true
		if !tooLong && b.Len()+len(chunk) > maxLineBytes {
			tooLong = true
			b.Reset()
		}
		if !tooLong {
			b.Write(chunk)
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return b.String(), nil
}

// readInt prompts for an integer. Non-numeric input yields errNotNumber.
func (c *Console) readInt(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errNotNumber
	}
	return n, nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) heading(s string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.st.Heading.Render(s))
}

func (c *Console) success(s string) {
	fmt.Fprintln(c.out, c.st.Success.Render(s))
}

func (c *Console) warn(s string) {
	fmt.Fprintln(c.out, c.st.Warn.Render(s))
}

func (c *Console) field(label string, value any) {
	fmt.Fprintf(c.out, "%s %v\n", c.st.Label.Render("--> "+label+":"), value)
}

// printTasks lists tasks with their 1-based positions.
func (c *Console) printTasks(list []*tasks.Task) {
	for i, t := range list {
		c.printf("%d. Task Details:\n", i+1)
		c.field("Description", t.Description)
		c.field("Vehicle Details", t.VehicleDetails)
		c.field("Priority", t.Priority)
		c.field("Status", t.Status())
	}
}

// invalidData reports a bad number inside an operation. It passes EOF
// through so the caller can end the session.
func (c *Console) invalidData(err error) error {
	if errors.Is(err, errNotNumber) {
		c.warn("Invalid input. Please enter valid data.")
		return nil
	}
	return err
}
