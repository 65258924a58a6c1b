package eventlog_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Write(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), t.Name())
	require.NoError(t, err)

	l := eventlog.NewFileSystem(&eventlog.FileSystemConfig{
		Logger:  slogutil.NewDiscardLogger(),
		Metrics: eventlog.EmptyMetrics{},
		Path:    f.Name(),
	})

	ctx := context.Background()
	e := testEntry()

	err = l.Write(ctx, e)
	require.NoError(t, err)

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	b, err := io.ReadAll(f)
	require.NoError(t, err)

	rep := strings.NewReplacer(" ", "", "\n", "")
	want := rep.Replace(`
{
  "r":{"a":"||example.com^","f":1},
  "u":"event-1234",
  "n":"https://example.com/banner.png",
  "d":"example.com",
  "t":123000,
  "q":4
}`) + "\n"

	assert.Equal(t, []byte(want), b)

	t.Run("no_rule", func(t *testing.T) {
		e = testEntry()
		e.RequestRule = nil

		err = l.Write(ctx, e)
		require.NoError(t, err)

		b, err = io.ReadAll(f)
		require.NoError(t, err)

		rep = strings.NewReplacer(" ", "", "\n", "")
		want = rep.Replace(`
{
  "u":"event-1234",
  "n":"https://example.com/banner.png",
  "d":"example.com",
  "t":123000,
  "q":4
}`) + "\n"

		assert.Equal(t, []byte(want), b)
	})
}

var errSink error

func BenchmarkFileSystem_Write_file(b *testing.B) {
	f, err := os.CreateTemp(b.TempDir(), b.Name())
	require.NoError(b, err)

	l := eventlog.NewFileSystem(&eventlog.FileSystemConfig{
		Logger:  slogutil.NewDiscardLogger(),
		Metrics: eventlog.EmptyMetrics{},
		Path:    f.Name(),
	})

	e := testEntry()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		errSink = l.Write(ctx, e)
	}

	require.NoError(b, errSink)
}
