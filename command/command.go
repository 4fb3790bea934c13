// Package command implements nested subcommand parsing.
package command

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

type (
	// HandlerFunc is called when a subcommand matches, with the remaining arguments.
	HandlerFunc = func(args []string) error

	// LogFunc is the function signature of a printf function.
	LogFunc = func(format string, a ...any)
)

// Command is a node in a subcommand tree.
type Command struct {
	name, usage string
	prefix      []string
	suffix      strings.Builder

	sub []*Command

	out  io.Writer
	logf LogFunc

	init HandlerFunc
	f    HandlerFunc
	set  *flag.FlagSet
}

// New initialises a root Command. A non-nil init is called once after root
// flags are parsed, before any handler runs.
func New(output io.Writer, logf LogFunc, name string, init HandlerFunc) *Command {
	c := newCommand(output, logf, name, "")
	c.init = init
	return c
}

func newCommand(output io.Writer, logf LogFunc, name, usage string) *Command {
	c := &Command{
		name: name, usage: usage,
		out: output, logf: logf,
		set: flag.NewFlagSet(name, flag.ContinueOnError),
	}
	c.set.SetOutput(output)
	c.set.Usage = func() {
		_ = c.writeHelp()
		if c.suffix.Len() > 0 {
			_, _ = fmt.Fprintln(output, "Flags:")
			c.set.PrintDefaults()
			_, _ = fmt.Fprintln(output)
		}
	}
	return c
}

// Command appends a directly handled subcommand and returns the receiver.
func (c *Command) Command(name, usage string, f HandlerFunc) *Command {
	c.NewCommand(name, usage, f)
	return c
}

// NewCommand appends a directly handled subcommand and returns it for
// attaching flags.
func (c *Command) NewCommand(name, usage string, f HandlerFunc) *Command {
	if f == nil {
		panic("invalid handler")
	}
	s := c.adopt(name, usage)
	s.f = f
	return s
}

// Group appends a subcommand tree and returns it.
func (c *Command) Group(name, usage string) *Command {
	return c.adopt(name, usage)
}

func (c *Command) adopt(name, usage string) *Command {
	if name == "" || usage == "" {
		panic("invalid subcommand")
	}
	for _, s := range c.sub {
		if s.name == name {
			panic("attempted to initialise subcommand with non-unique name")
		}
	}
	s := newCommand(c.out, c.logf, name, usage)
	s.prefix = append(append([]string{}, c.prefix...), c.name)
	c.sub = append(c.sub, s)
	return s
}
