// Package lookup provides asynchronous form validators that check a value
// against an external store, such as "this email is not registered yet" or
// "this project code exists".
//
// Unique and Known wrap any Checker. RedisSet checks membership of a redis
// set; PostgresQuery runs an EXISTS query through pgx. ConnectRedis and
// ConnectPostgres open the underlying connections with retries.
//
//	pool, err := lookup.ConnectPostgres(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	users := lookup.NewPostgresQuery(pool, "users", "email")
//	f := form.New(values, form.WithAsyncValidator("email", lookup.Unique("email", users)))
package lookup
