package command

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
)

var ErrHelp = errors.New("help requested")

// PrintHelp prints a help message to the configured writer.
func (c *Command) PrintHelp() { _ = c.writeHelp() }

func (c *Command) writeHelp() error {
	suffix := c.suffix.String()
	if len(c.sub) > 0 {
		suffix += " COMMAND [OPTIONS]"
	}
	if _, err := fmt.Fprintf(c.out,
		"\nUsage:\t%s [-h | --help]%s\n",
		strings.Join(append(c.prefix, c.name), " "), suffix,
	); err != nil {
		return err
	}
	if len(c.sub) > 0 {
		if _, err := fmt.Fprint(c.out, "\nCommands:\n"); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(c.out, 0, 1, 4, ' ', 0)
		for _, s := range c.sub {
			if _, err := fmt.Fprintf(tw, "\t%s\t%s\n", s.name, s.usage); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := c.out.Write([]byte{'\n'})
	if err == nil {
		err = ErrHelp
	}
	return err
}
