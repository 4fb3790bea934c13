package main

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"oncd.app/blob"
	"oncd.app/command"
	"oncd.app/internal"
	"oncd.app/internal/doze"
	"oncd.app/internal/omsg"
	"oncd.app/livedisplay"
	"oncd.app/power"
	"oncd.app/sdm"
	"oncd.app/vndbus"
)

var (
	errRejected  = errors.New("adjustment rejected")
	errUnhandled = errors.New("mode not handled")
)

func buildCommand(out io.Writer) *command.Command {
	var (
		flagVerbose bool
		flagJSON    bool
	)
	c := command.New(out, log.Printf, "oncd", func([]string) error { omsg.Store(flagVerbose); return nil }).
		Flag(&flagVerbose, "v", command.BoolFlag(false), "Increase log verbosity").
		Flag(&flagJSON, "json", command.BoolFlag(false), "Serialise output in JSON when applicable")

	c.Command("status", "Show vendor service status", func(args []string) error {
		conn, err := vndbus.Connect()
		if err != nil {
			return omsg.WrapErrorSuffix(err, "cannot connect to vendor bus:")
		}
		defer func() { _ = conn.Close() }()

		status := &busStatus{Version: internal.Version(), Address: vndbus.Address(), Services: make(map[string]bool, 2)}
		for _, name := range []string{livedisplay.BusName, power.BusName} {
			owned, err := vndbus.NameHasOwner(conn, name)
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot query owner of "+name+":")
			}
			status.Services[name] = owned
		}
		printStatus(os.Stdout, flagJSON, status)
		return errSuccess
	})

	{
		var (
			checkManifest string
			checkRoot     string
		)
		c.NewCommand("check", "Check vendor blob presence and dependencies", func(args []string) error {
			if checkManifest != "" {
				data, err := os.ReadFile(checkManifest)
				if err != nil {
					return omsg.WrapErrorSuffix(err, "cannot read manifest:")
				}
				entries, err := blob.Parse(data)
				if err != nil {
					return omsg.WrapErrorSuffix(err, "cannot parse manifest:")
				}
				if problems := blob.Verify(checkRoot, entries); len(problems) != 0 {
					for _, p := range problems {
						mustPrintln(os.Stdout, p)
					}
					return omsg.WrapError(problems[0],
						fmt.Sprintf("%d of %d entries failed verification", len(problems), len(entries)))
				}
				mustPrintln(os.Stdout, len(entries), "entries verified")
				return errSuccess
			}

			name := sdm.Library
			switch len(args) {
			case 0:
			case 1:
				name = args[0]
			default:
				log.Fatal("check requires at most 1 argument")
			}

			dirs := append(blob.LibDirs(elf.ELFCLASS64), blob.LibDirs(elf.ELFCLASS32)...)
			path, err := blob.Locate(name, dirs)
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot locate "+name+":")
			}
			report, err := blob.Check(path, nil)
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot inspect "+path+":")
			}
			printReport(os.Stdout, flagJSON, report)
			if len(report.Missing) != 0 {
				return omsg.WrapError(fs.ErrNotExist,
					fmt.Sprintf("%s is missing %d of %d dependencies", path, len(report.Missing), len(report.Needed)))
			}
			return errSuccess
		}).
			Flag(&checkManifest, "m", command.StringFlag(""), "Verify a proprietary files manifest instead of a library").
			Flag(&checkRoot, "root", command.StringFlag("/"), "Tree to verify manifest entries against")
	}

	pa := c.Group("pa", "Inspect and adjust the display picture")
	pa.Command("show", "Show the applied picture adjustment", func(args []string) error {
		return withLiveDisplay(func(client *livedisplay.Client) error {
			config, err := client.Current()
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot get picture adjustment:")
			}
			printHSIC(os.Stdout, flagJSON, config)
			return errSuccess
		})
	})
	pa.Command("default", "Show the startup picture adjustment", func(args []string) error {
		return withLiveDisplay(func(client *livedisplay.Client) error {
			config, err := client.Default()
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot get default picture adjustment:")
			}
			printHSIC(os.Stdout, flagJSON, config)
			return errSuccess
		})
	})
	pa.Command("ranges", "Show the valid picture adjustment ranges", func(args []string) error {
		return withLiveDisplay(func(client *livedisplay.Client) error {
			ranges, err := client.Ranges()
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot get picture adjustment ranges:")
			}
			printRanges(os.Stdout, flagJSON, ranges)
			return errSuccess
		})
	})
	pa.Command("set", "Apply a picture adjustment", func(args []string) error {
		if len(args) != 4 && len(args) != 5 {
			log.Fatal("set requires HUE SATURATION INTENSITY CONTRAST [THRESHOLD]")
		}

		var config livedisplay.HSIC
		if hue, err := strconv.ParseInt(args[0], 10, 32); err != nil {
			log.Fatalf("invalid hue %q", args[0])
		} else {
			config.Hue = int32(hue)
		}
		for i, p := range []*float64{&config.Saturation, &config.Intensity, &config.Contrast} {
			if v, err := strconv.ParseFloat(args[1+i], 64); err != nil {
				log.Fatalf("invalid adjustment value %q", args[1+i])
			} else {
				*p = v
			}
		}
		haveThreshold := len(args) == 5
		if haveThreshold {
			if v, err := strconv.ParseFloat(args[4], 64); err != nil {
				log.Fatalf("invalid saturation threshold %q", args[4])
			} else {
				config.SaturationThreshold = v
			}
		}

		return withLiveDisplay(func(client *livedisplay.Client) error {
			if !haveThreshold {
				// carry over the threshold so a partial set does not clobber it
				current, err := client.Current()
				if err != nil {
					return omsg.WrapErrorSuffix(err, "cannot get picture adjustment:")
				}
				config.SaturationThreshold = current.SaturationThreshold
			}

			if ok, err := client.Set(config); err != nil {
				return omsg.WrapErrorSuffix(err, "cannot set picture adjustment:")
			} else if !ok {
				return omsg.WrapError(errRejected, "the vendor backend rejected the adjustment")
			}
			return errSuccess
		})
	})

	pw := c.Group("power", "Inspect and apply power mode hints")
	pw.Command("supported", "Report whether a power mode is supported", func(args []string) error {
		if len(args) != 1 {
			log.Fatal("supported requires 1 argument")
		}
		mode := parseModeArg(args[0])
		return withPower(func(client *power.Client) error {
			supported, err := client.IsModeSupported(mode)
			if err != nil {
				return omsg.WrapErrorSuffix(err, "cannot query mode "+mode.String()+":")
			}
			printMode(os.Stdout, flagJSON, mode, supported)
			return errSuccess
		})
	})
	pw.Command("set", "Apply a power mode hint", func(args []string) error {
		if len(args) != 2 {
			log.Fatal("set requires MODE on|off")
		}
		mode := parseModeArg(args[0])
		var enabled bool
		switch args[1] {
		case "on":
			enabled = true
		case "off":
		default:
			log.Fatalf("invalid mode state %q", args[1])
		}
		return withPower(func(client *power.Client) error {
			if ok, err := client.SetMode(mode, enabled); err != nil {
				return omsg.WrapErrorSuffix(err, "cannot set mode "+mode.String()+":")
			} else if !ok {
				return omsg.WrapError(errUnhandled, "mode "+mode.String()+" is not handled by the power service")
			}
			return errSuccess
		})
	})

	var dozePrefs string
	dz := c.Group("doze", "Manage the persisted wakeup gesture preference")
	dz.NewCommand("show", "Show persisted wake preferences", func(args []string) error {
		settings, err := doze.NewStore(dozePrefs).Load()
		if err != nil {
			return omsg.WrapErrorSuffix(err, "cannot load wake preferences:")
		}
		printSettings(os.Stdout, flagJSON, settings)
		return errSuccess
	}).Flag(&dozePrefs, "prefs", command.StringFlag(doze.DefaultPath), "Path to the wake preference file")
	dz.NewCommand("enable", "Enable the wakeup gesture", func([]string) error {
		return setWakeGesture(dozePrefs, true)
	}).Flag(&dozePrefs, "prefs", command.StringFlag(doze.DefaultPath), "Path to the wake preference file")
	dz.NewCommand("disable", "Disable the wakeup gesture", func([]string) error {
		return setWakeGesture(dozePrefs, false)
	}).Flag(&dozePrefs, "prefs", command.StringFlag(doze.DefaultPath), "Path to the wake preference file")

	c.Command("version", "Display version information", func(args []string) error {
		fmt.Println(internal.Version())
		return errSuccess
	})
	c.Command("license", "Show full license text", func(args []string) error {
		fmt.Println(license)
		return errSuccess
	})
	c.Command("help", "Show this help message", func([]string) error {
		c.PrintHelp()
		return errSuccess
	})

	return c
}

// withLiveDisplay connects to the vendor bus and calls f with a LiveDisplay client.
func withLiveDisplay(f func(client *livedisplay.Client) error) error {
	conn, err := vndbus.Connect()
	if err != nil {
		return omsg.WrapErrorSuffix(err, "cannot connect to vendor bus:")
	}
	defer func() { _ = conn.Close() }()
	return f(livedisplay.NewClient(conn))
}

// withPower connects to the vendor bus and calls f with a power client.
func withPower(f func(client *power.Client) error) error {
	conn, err := vndbus.Connect()
	if err != nil {
		return omsg.WrapErrorSuffix(err, "cannot connect to vendor bus:")
	}
	defer func() { _ = conn.Close() }()
	return f(power.NewClient(conn))
}

// parseModeArg interprets arg as a power mode name or ordinal.
func parseModeArg(arg string) power.Mode {
	if mode, ok := power.ParseMode(arg); ok {
		return mode
	}
	if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
		return power.Mode(n)
	}
	log.Fatalf("invalid power mode %q", arg)
	panic("unreachable")
}

// setWakeGesture persists the wakeup gesture state and pokes a running power
// service so it takes effect immediately.
func setWakeGesture(prefs string, enabled bool) error {
	store := doze.NewStore(prefs)
	settings, err := store.Load()
	if err != nil {
		return omsg.WrapErrorSuffix(err, "cannot load wake preferences:")
	}
	settings.WakeGesture = enabled
	if err = store.Save(settings); err != nil {
		return omsg.WrapErrorSuffix(err, "cannot save wake preferences:")
	}

	// a stopped power service picks the preference up on startup
	if err = withPower(func(client *power.Client) error {
		if ok, err := client.SetMode(power.DoubleTapToWake, enabled); err != nil {
			return err
		} else if !ok {
			return errUnhandled
		}
		return nil
	}); err != nil {
		log.Printf("cannot apply wakeup gesture: %v", err)
	}
	return errSuccess
}
