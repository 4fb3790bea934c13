package command

import (
	"errors"
	"flag"
	"log"
)

var (
	ErrEmptyTree = errors.New("subcommand tree has no nodes")
	ErrNoMatch   = errors.New("did not match any subcommand")
)

func (c *Command) Parse(arguments []string) error {
	if c.set.Parsed() {
		panic("invalid set state")
	}
	if err := c.set.Parse(arguments); err != nil {
		return FlagError{err}
	}
	args := c.set.Args()

	if c.init != nil {
		// root node calls init for setup shared by all handlers
		if err := c.init(nil); err != nil {
			return err
		}
	}

	if len(c.sub) > 0 {
		if len(args) == 0 {
			return c.writeHelp()
		}
		for _, s := range c.sub {
			if s.name == args[0] {
				return s.Parse(args[1:])
			}
		}
		c.printf("%q is not a valid command", args[0])
		return ErrNoMatch
	}

	if c.f == nil {
		c.printf("%q has no subcommands", c.name)
		return ErrEmptyTree
	}
	return c.f(args)
}

// MustParse parses arguments and calls handle for any error that does not
// represent a successful early exit from parsing.
func (c *Command) MustParse(arguments []string, handle func(error)) {
	switch err := c.Parse(arguments); {
	case err == nil, errors.Is(err, ErrHelp), errors.Is(err, flag.ErrHelp):
	default:
		handle(err)
	}
}

func (c *Command) printf(format string, a ...any) {
	if c.logf == nil {
		log.Printf(format, a...)
	} else {
		c.logf(format, a...)
	}
}
