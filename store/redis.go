package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/stacker"
	"github.com/go-redis/redis/v8"
)

// Redis stores each document under the key "stack:<user>".
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects to the redis server at addr.
func OpenRedis(addr string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &Redis{rdb: rdb}, nil
}

func key(user string) string { return fmt.Sprintf("stack:%s", user) }

// Load reads the document of user.
func (r *Redis) Load(ctx context.Context, user string) (stacker.Document, error) {
	if err := checkUser(user); err != nil {
		return stacker.Document{}, err
	}
	data, err := r.rdb.Get(ctx, key(user)).Result()
	if errors.Is(err, redis.Nil) {
		return stacker.Document{}, nil
	}
	if err != nil {
		return stacker.Document{}, fmt.Errorf("cannot read stack of %q: %w", user, err)
	}
	doc, err := stacker.DecodeDocument(strings.NewReader(data))
	if err != nil {
		return stacker.Document{}, fmt.Errorf("stack of %q: %w", user, err)
	}
	return doc, nil
}

// Save replaces the document of user.
func (r *Redis) Save(ctx context.Context, user string, doc stacker.Document) error {
	if err := checkUser(user); err != nil {
		return err
	}
	var b strings.Builder
	if err := stacker.EncodeDocument(&b, doc); err != nil {
		return fmt.Errorf("cannot encode stack of %q: %w", user, err)
	}
	if err := r.rdb.Set(ctx, key(user), b.String(), 0).Err(); err != nil {
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	return nil
}

// Close closes the connection.
func (r *Redis) Close() error { return r.rdb.Close() }
