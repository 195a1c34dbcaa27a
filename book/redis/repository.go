package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository
 * A Redis List keeps the entry keys in insertion order: {prefix}:entries
 * Each entry is a Redis Hash with id, title and author: {prefix}:entry:{n}
 * Entry numbers come from {prefix}:entry_seq, book ids from {prefix}:last_id (monotonic strategy)
 *
 * Entries are not keyed by book id because the length strategy can hand out duplicate ids.
 */

const DefaultPrefix = "books"

type Repository struct {
	client   *redis.Client
	prefix   string
	strategy book.IDStrategy
}

var (
	_ book.Repository = (*Repository)(nil)
	_ book.Seeder     = (*Repository)(nil)
)

// Option configures a Repository
type Option func(*Repository)

// WithPrefix namespaces every key the repository touches
func WithPrefix(prefix string) Option {
	return func(r *Repository) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithIDStrategy sets how new ids are assigned. Default: book.Monotonic
func WithIDStrategy(s book.IDStrategy) Option {
	return func(r *Repository) {
		r.strategy = s
	}
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int, opts ...Option) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewRepositoryFromClient(client, opts...), nil
}

// NewRepositoryFromClient wraps an existing client. Close closes the client.
func NewRepositoryFromClient(client *redis.Client, opts ...Option) *Repository {
	r := &Repository{
		client:   client,
		prefix:   DefaultPrefix,
		strategy: book.Monotonic,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entry is a stored book together with the key of its hash
type entry struct {
	key  string
	book book.Book
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	e, err := r.find(ctx, id)
	if err != nil {
		return book.Book{}, err
	}
	return e.book, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}
	books := make([]book.Book, 0, len(entries))
	for _, e := range entries {
		books = append(books, e.book)
	}
	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}
	b.ID = id
	if err := r.append(ctx, b); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	e, err := r.find(ctx, b.ID)
	if err != nil {
		return err
	}
	err = r.client.HSet(ctx, e.key, map[string]interface{}{
		"title":  b.Title,
		"author": b.Author,
	}).Err()
	if err != nil {
		return fmt.Errorf("updating book hash: %w", err)
	}
	return nil
}

// Delete removes every entry holding the given id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	entries, err := r.entries(ctx)
	if err != nil {
		return err
	}
	var keys []string
	for _, e := range entries {
		if e.book.ID == id {
			keys = append(keys, e.key)
		}
	}
	if len(keys) == 0 {
		return book.ErrNotFound
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.LRem(ctx, r.entriesKey(), 1, key)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing book entry: %w", err)
	}
	return nil
}

// Reset implements book.Seeder. Everything under the prefix is dropped first.
func (r *Repository) Reset(ctx context.Context, books []book.Book) error {
	keys, err := r.client.LRange(ctx, r.entriesKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	keys = append(keys, r.entriesKey(), r.seqKey(), r.lastIDKey())
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clearing books: %w", err)
	}
	for _, b := range books {
		if err := r.append(ctx, b); err != nil {
			return err
		}
	}
	if err := r.client.Set(ctx, r.lastIDKey(), book.HighestID(books), 0).Err(); err != nil {
		return fmt.Errorf("storing last id: %w", err)
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}
	return nil
}

func (r *Repository) nextID(ctx context.Context) (int64, error) {
	if r.strategy == book.Length {
		n, err := r.client.LLen(ctx, r.entriesKey()).Result()
		if err != nil {
			return 0, fmt.Errorf("counting books: %w", err)
		}
		return r.strategy.NextID(int(n), 0), nil
	}
	id, err := r.client.Incr(ctx, r.lastIDKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing last id: %w", err)
	}
	return id, nil
}

// append stores b under a fresh entry key at the end of the collection
func (r *Repository) append(ctx context.Context, b book.Book) error {
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("incrementing entry sequence: %w", err)
	}
	key := r.entryKey(seq)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":     b.ID,
			"title":  b.Title,
			"author": b.Author,
		})
		pipe.RPush(ctx, r.entriesKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing book entry: %w", err)
	}
	return nil
}

func (r *Repository) find(ctx context.Context, id int64) (entry, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return entry{}, err
	}
	for _, e := range entries {
		if e.book.ID == id {
			return e, nil
		}
	}
	return entry{}, book.ErrNotFound
}

// entries loads every book hash in collection order
func (r *Repository) entries(ctx context.Context) ([]entry, error) {
	keys, err := r.client.LRange(ctx, r.entriesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	entries := make([]entry, 0, len(keys))
	for i, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		id, err := strconv.ParseInt(data["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing id of %s: %w", keys[i], err)
		}
		entries = append(entries, entry{
			key: keys[i],
			book: book.Book{
				ID:     id,
				Title:  data["title"],
				Author: data["author"],
			},
		})
	}
	return entries, nil
}

func (r *Repository) entriesKey() string {
	return r.prefix + ":entries"
}

func (r *Repository) seqKey() string {
	return r.prefix + ":entry_seq"
}

func (r *Repository) lastIDKey() string {
	return r.prefix + ":last_id"
}

func (r *Repository) entryKey(seq int64) string {
	return fmt.Sprintf("%s:entry:%d", r.prefix, seq)
}
