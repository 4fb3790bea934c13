package omsg_test

import (
	"errors"
	"log"
	"strings"
	"testing"

	"oncd.app/internal/omsg"
)

func TestBaseError(t *testing.T) {
	wrapped := errors.New("unique test error")

	t.Run("nil passthrough", func(t *testing.T) {
		if err := omsg.WrapError(nil, "meaningless message"); err != nil {
			t.Errorf("WrapError(nil) = %v; want nil", err)
		}
		if err := omsg.WrapErrorSuffix(nil, "meaningless message"); err != nil {
			t.Errorf("WrapErrorSuffix(nil) = %v; want nil", err)
		}
	})

	t.Run("message", func(t *testing.T) {
		err := omsg.WrapError(wrapped, "cannot wrap:", "wrapped")
		var e *omsg.BaseError
		if !omsg.AsBaseError(err, &e) {
			t.Fatalf("AsBaseError = false; want true")
		}
		if got := e.Message(); got != "cannot wrap: wrapped\n" {
			t.Errorf("Message() = %q", got)
		}
		if !errors.Is(err, wrapped) {
			t.Errorf("errors.Is() = false; want true")
		}
	})

	t.Run("suffix", func(t *testing.T) {
		err := omsg.WrapErrorSuffix(wrapped, "cannot wrap:")
		var e *omsg.BaseError
		if !omsg.AsBaseError(err, &e) {
			t.Fatalf("AsBaseError = false; want true")
		}
		if got := e.Message(); got != "cannot wrap: unique test error\n" {
			t.Errorf("Message() = %q", got)
		}
	})

	t.Run("not base", func(t *testing.T) {
		var e *omsg.BaseError
		if omsg.AsBaseError(wrapped, &e) {
			t.Errorf("AsBaseError = true; want false")
		}
	})
}

func TestPrintBaseError(t *testing.T) {
	buf := new(strings.Builder)
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	t.Cleanup(func() { log.SetOutput(out); log.SetFlags(flags) })

	omsg.PrintBaseError(omsg.WrapError(errors.New("unwrapped"), "has message"), "fallback:")
	if got := buf.String(); !strings.Contains(got, "has message") {
		t.Errorf("PrintBaseError: got %q; want message", got)
	}

	buf.Reset()
	omsg.PrintBaseError(errors.New("plain"), "fallback:")
	if got := buf.String(); !strings.Contains(got, "fallback: plain") {
		t.Errorf("PrintBaseError: got %q; want fallback", got)
	}
}
