package form_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

var errRequired = errors.New("required")

func required(key string) form.Validator {
	return func(values form.Values, _ form.Meta) error {
		if s, _ := values[key].(string); s == "" {
			return errRequired
		}
		return nil
	}
}

func newForm(initial form.Values, opts ...form.Option) *form.Form {
	base := []form.Option{form.WithLogger(logger.Nop()), form.WithConfig(form.Config{})}
	return form.New(initial, append(base, opts...)...)
}

func wait(t *testing.T, f *form.Form) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.Wait(ctx))
}

// recorder collects published snapshots; listeners may run on any goroutine.
type recorder struct {
	mu        sync.Mutex
	snapshots []*form.Snapshot
}

func record(f *form.Form) *recorder {
	r := &recorder{}
	f.Subscribe(func(s *form.Snapshot) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.snapshots = append(r.snapshots, s)
	})
	return r
}

func (r *recorder) all() []*form.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*form.Snapshot(nil), r.snapshots...)
}

func (r *recorder) len() int {
	return len(r.all())
}

// safeBuffer is a bytes.Buffer safe for concurrent log writes.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
