package definition_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd {
	args := m.Called(ctx, key, member)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func loadSignup(t *testing.T) *definition.Definition {
	t.Helper()
	def, err := definition.Load("testdata/signup.yaml")
	require.NoError(t, err)
	return def
}

func buildForm(t *testing.T, def *definition.Definition, backends definition.Backends) *form.Form {
	t.Helper()
	opts, err := definition.Build(def, backends)
	require.NoError(t, err)
	base := []form.Option{form.WithLogger(logger.Nop()), form.WithConfig(form.Config{})}
	return form.New(def.Initial(), append(base, opts...)...)
}

func wait(t *testing.T, f *form.Form) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.Wait(ctx))
}

// stubQuerier answers EXISTS queries from a fixed set of values.
type stubQuerier struct {
	exists map[string]bool

	mu  sync.Mutex
	sql string
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	q.sql = sql
	q.mu.Unlock()

	value, _ := args[0].(string)
	return boolRow(q.exists[value])
}

func (q *stubQuerier) lastSQL() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sql
}

type boolRow bool

func (r boolRow) Scan(dest ...any) error {
	*dest[0].(*bool) = bool(r)
	return nil
}
