package lookup_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd {
	args := m.Called(ctx, key, member)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgx.Row)
}

type boolRow struct {
	value bool
	err   error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.value
	return nil
}
