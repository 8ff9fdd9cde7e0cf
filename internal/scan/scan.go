// Package scan abstracts the barcode scanner a client reads ISBNs from.
// Camera scanners live in the mobile apps; the implementations here cover
// keyboard-wedge readers, piped input and demos.
package scan

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
)

var (
	ErrNoResult  = errors.New("scan: no code read")
	ErrCancelled = errors.New("scan: cancelled")
)

// Scanner returns the raw value of the next code read. It does not validate
// the value as an ISBN.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// DemoISBNs are real editions used by the demo scanner.
var DemoISBNs = []string{
	"9780143127741", // Sapiens
	"9780316769174", // The Catcher in the Rye
	"9780544003415", // The Lord of the Rings
	"9780451524935", // 1984
	"9780142424179", // The Fault in Our Stars
	"9780061120084", // To Kill a Mockingbird
	"9780307277671", // The Da Vinci Code
	"9788804668827", // Io sono Malala
	"9788817050814", // L'alchimista
	"9788806220655", // Se questo è un uomo
}

// LineScanner reads one code per line, the way USB barcode readers type
// into a terminal. Blank lines are skipped. Call Close when done so the
// reader goroutine exits before the input ends; a read already blocked on
// src still returns only when src does.
type LineScanner struct {
	src       io.Reader
	once      sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
	err       error
}

func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{src: r, lines: make(chan string), done: make(chan struct{})}
}

func (s *LineScanner) start() {
	go func() {
		defer close(s.lines)
		sc := bufio.NewScanner(s.src)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case s.lines <- line:
			case <-s.done:
				return
			}
		}
		s.err = sc.Err()
	}()
}

// Close stops the scanner. Later Scan calls return ErrNoResult.
func (s *LineScanner) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *LineScanner) Scan(ctx context.Context) (string, error) {
	select {
	case <-s.done:
		return "", ErrNoResult
	default:
	}
	s.once.Do(s.start)

	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case line, ok := <-s.lines:
		if !ok {
			if s.err != nil {
				return "", s.err
			}
			return "", ErrNoResult
		}
		return line, nil
	}
}

// StaticScanner always reads the same code.
type StaticScanner struct {
	Code string
}

func (s StaticScanner) Scan(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrCancelled
	}
	if strings.TrimSpace(s.Code) == "" {
		return "", ErrNoResult
	}
	return strings.TrimSpace(s.Code), nil
}

// DemoScanner reads a random entry of DemoISBNs.
type DemoScanner struct {
	pick func(n int) int
}

func NewDemoScanner() *DemoScanner {
	return &DemoScanner{pick: rand.IntN}
}

func (s *DemoScanner) Scan(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrCancelled
	}
	return DemoISBNs[s.pick(len(DemoISBNs))], nil
}
