package scan

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"bookscan/internal/isbn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScanner(t *testing.T) {
	s := NewLineScanner(strings.NewReader("9780143127741\n\n  0-306-40615-2 \r\n"))
	ctx := context.Background()

	code, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9780143127741", code)

	code, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0-306-40615-2", code)

	_, err = s.Scan(ctx)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = s.Scan(ctx)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestLineScanner_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewLineScanner(pr).Scan(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
}

// endlessLines never reaches EOF.
type endlessLines struct{}

func (endlessLines) Read(p []byte) (int, error) {
	n := copy(p, "9780143127741\n")
	return n, nil
}

func TestLineScanner_CloseReleasesReader(t *testing.T) {
	s := NewLineScanner(endlessLines{})
	code, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9780143127741", code)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Scan(context.Background())
	assert.ErrorIs(t, err, ErrNoResult)

	finished := make(chan struct{})
	go func() {
		for range s.lines {
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
}

func TestLineScanner_CloseBeforeScan(t *testing.T) {
	s := NewLineScanner(strings.NewReader("9780143127741\n"))
	require.NoError(t, s.Close())
	_, err := s.Scan(context.Background())
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestStaticScanner(t *testing.T) {
	code, err := StaticScanner{Code: " 9780451524935 "}.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9780451524935", code)

	_, err = StaticScanner{}.Scan(context.Background())
	assert.ErrorIs(t, err, ErrNoResult)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StaticScanner{Code: "x"}.Scan(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestDemoScanner(t *testing.T) {
	s := NewDemoScanner()
	s.pick = func(n int) int { return n - 1 }

	code, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9788806220655", code)
}

func TestDemoISBNsAreValid(t *testing.T) {
	for _, code := range DemoISBNs {
		assert.True(t, isbn.IsValid(code), code)
	}
}
