package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"slices"
	"text/tabwriter"

	"oncd.app/blob"
	"oncd.app/internal/doze"
	"oncd.app/livedisplay"
	"oncd.app/power"
)

// busStatus describes the state of the oncd services on the vendor bus.
type busStatus struct {
	Version string `json:"version"`
	Address string `json:"address"`
	// Services maps well-known names to their current ownership state.
	Services map[string]bool `json:"services"`
}

// printStatus writes a representation of status to output.
func printStatus(output io.Writer, flagJSON bool, status *busStatus) {
	if flagJSON {
		encodeJSON(log.Fatal, output, status)
		return
	}

	t := newPrinter(output)
	defer t.MustFlush()

	t.Printf("Version:\t%s\n", status.Version)
	t.Printf("Address:\t%s\n", status.Address)
	for _, name := range []string{livedisplay.BusName, power.BusName} {
		state := "inactive"
		if status.Services[name] {
			state = "active"
		}
		t.Printf("%s:\t%s\n", name, state)
	}
}

// printReport writes a representation of report to output.
func printReport(output io.Writer, flagJSON bool, report *blob.Report) {
	if flagJSON {
		encodeJSON(log.Fatal, output, report)
		return
	}

	t := newPrinter(output)
	defer t.MustFlush()

	t.Printf("Path:\t%s\n", report.Path)
	t.Printf("Class:\t%v\n", report.Class)
	for _, name := range report.Needed {
		state := "found"
		if slices.Contains(report.Missing, name) {
			state = "missing"
		}
		t.Printf(" %s\t%s\n", name, state)
	}
}

// printHSIC writes a representation of config to output.
func printHSIC(output io.Writer, flagJSON bool, config livedisplay.HSIC) {
	if flagJSON {
		encodeJSON(log.Fatal, output, config)
		return
	}

	t := newPrinter(output)
	defer t.MustFlush()

	t.Printf("Hue:\t%d\n", config.Hue)
	t.Printf("Saturation:\t%v\n", config.Saturation)
	t.Printf("Intensity:\t%v\n", config.Intensity)
	t.Printf("Contrast:\t%v\n", config.Contrast)
	t.Printf("Saturation threshold:\t%v\n", config.SaturationThreshold)
}

// printRanges writes a representation of ranges to output.
func printRanges(output io.Writer, flagJSON bool, ranges livedisplay.HSICRanges) {
	if flagJSON {
		encodeJSON(log.Fatal, output, ranges)
		return
	}

	t := newPrinter(output)
	defer t.MustFlush()

	t.Printf("Hue:\t[%d, %d] step %d\n", ranges.Hue.Min, ranges.Hue.Max, ranges.Hue.Step)
	t.Printf("Saturation:\t[%v, %v] step %v\n", ranges.Saturation.Min, ranges.Saturation.Max, ranges.Saturation.Step)
	t.Printf("Intensity:\t[%v, %v] step %v\n", ranges.Intensity.Min, ranges.Intensity.Max, ranges.Intensity.Step)
	t.Printf("Contrast:\t[%v, %v] step %v\n", ranges.Contrast.Min, ranges.Contrast.Max, ranges.Contrast.Step)
	t.Printf("Saturation threshold:\t[%v, %v] step %v\n",
		ranges.SaturationThreshold.Min, ranges.SaturationThreshold.Max, ranges.SaturationThreshold.Step)
}

// printSettings writes a representation of settings to output.
func printSettings(output io.Writer, flagJSON bool, settings doze.Settings) {
	if flagJSON {
		encodeJSON(log.Fatal, output, settings)
		return
	}
	state := "disabled"
	if settings.WakeGesture {
		state = "enabled"
	}
	mustPrintln(output, "wake gesture "+state)
}

// modeStatus describes the support state of one power mode.
type modeStatus struct {
	Mode      string `json:"mode"`
	Supported bool   `json:"supported"`
}

// printMode writes the support state of mode to output.
func printMode(output io.Writer, flagJSON bool, mode power.Mode, supported bool) {
	if flagJSON {
		encodeJSON(log.Fatal, output, &modeStatus{mode.String(), supported})
		return
	}
	state := "not supported"
	if supported {
		state = "supported"
	}
	mustPrintln(output, mode.String()+": "+state)
}

// encodeJSON encodes v to output. A non-nil error results in a call to fatal.
func encodeJSON(fatal func(v ...any), output io.Writer, v any) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatal("cannot write json: " + err.Error())
	}
}

// newPrinter returns a configured, wrapped [tabwriter.Writer].
func newPrinter(output io.Writer) *tp { return &tp{tabwriter.NewWriter(output, 0, 1, 4, ' ', 0)} }

// tp wraps [tabwriter.Writer] to provide additional formatting methods.
type tp struct{ *tabwriter.Writer }

// Printf calls [fmt.Fprintf] on the underlying [tabwriter.Writer].
func (p *tp) Printf(format string, a ...any) {
	if _, err := fmt.Fprintf(p, format, a...); err != nil {
		log.Fatalf("cannot write to tabwriter: %v", err)
	}
}

// MustFlush calls the Flush method of [tabwriter.Writer] and calls [log.Fatalf] on a non-nil error.
func (p *tp) MustFlush() {
	if err := p.Writer.Flush(); err != nil {
		log.Fatalf("cannot flush tabwriter: %v", err)
	}
}

func mustPrintln(output io.Writer, a ...any) {
	if _, err := fmt.Fprintln(output, a...); err != nil {
		log.Fatalf("cannot print: %v", err)
	}
}
