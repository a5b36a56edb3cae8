package util

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReadLines(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	lines, errc := ReadLines(ctx, strings.NewReader("hello\n\n  /list  \nlast"))

	var got []string
	for l := range lines {
		got = append(got, l)
	}
	want := []string{"hello", "", "  /list  ", "last"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if err := <-errc; err != nil {
		t.Errorf("err = %v, want nil on EOF", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadLines_Error(t *testing.T) {
	lines, errc := ReadLines(context.Background(), failingReader{})
	for range lines {
		t.Fatal("no lines expected")
	}
	if err := <-errc; !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReadLines_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines, errc := ReadLines(ctx, strings.NewReader("a\nb\nc\n"))

	// Take one line, then cancel while the reader is blocked on delivery.
	if l := <-lines; l != "a" {
		t.Fatalf("first line = %q", l)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop after cancel")
	}
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines, errc := ReadLines(context.Background(), strings.NewReader("hi\r\n"+long+"\nstill here\n"))

	var got []string
	for l := range lines {
		got = append(got, l)
	}
	if err := <-errc; err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	if got[0] != "hi" {
		t.Errorf("line 0 = %q, want %q (CRLF stripped)", got[0], "hi")
	}
	if got[1] != long {
		t.Errorf("line 1 has %d bytes, want %d", len(got[1]), len(long))
	}
	if got[2] != "still here" {
		t.Errorf("line 2 = %q", got[2])
	}
}
