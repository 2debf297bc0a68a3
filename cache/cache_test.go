package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lexistack/config"
)

func TestLoadMemoizes(t *testing.T) {
	is := is.New(t)
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return key + "-obj", nil
	}
	obj, err := Load(nil, "test:memoize", loader)
	is.NoErr(err)
	is.Equal(obj, "test:memoize-obj")
	obj, err = Load(nil, "test:memoize", loader)
	is.NoErr(err)
	is.Equal(obj, "test:memoize-obj")
	is.Equal(calls, 1)
}

func TestLoadErrorNotCached(t *testing.T) {
	is := is.New(t)
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return 42, nil
	}
	_, err := Load(nil, "test:retry", loader)
	is.True(err != nil)
	obj, err := Load(nil, "test:retry", loader)
	is.NoErr(err)
	is.Equal(obj, 42)
}

func TestMemoryCache(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	mc := NewMemoryCache()
	_, err := mc.Get(ctx, "/words.txt")
	is.True(errors.Is(err, ErrNotFound))

	body := []byte("CAT\nDOG\n")
	is.NoErr(mc.Put(ctx, "/words.txt", body))
	// mutating the caller's slice must not change the stored copy
	body[0] = 'B'
	got, err := mc.Get(ctx, "/words.txt")
	is.NoErr(err)
	is.Equal(string(got), "CAT\nDOG\n")
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	sc, err := OpenSQLiteCache(ctx, path)
	is.NoErr(err)
	defer sc.Close()

	_, err = sc.Get(ctx, "/words.txt")
	is.True(errors.Is(err, ErrNotFound))

	is.NoErr(sc.Put(ctx, "/words.txt", []byte("CAT\nDOG\n")))
	is.NoErr(sc.Put(ctx, "/words.txt", []byte("EMBER\nFLAME\n")))
	got, err := sc.Get(ctx, "/words.txt")
	is.NoErr(err)
	is.Equal(string(got), "EMBER\nFLAME\n")
}

func TestSQLiteCachePersists(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	sc, err := OpenSQLiteCache(ctx, path)
	is.NoErr(err)
	is.NoErr(sc.Put(ctx, "/words.txt", []byte("OAK\n")))
	is.NoErr(sc.Close())

	sc, err = OpenSQLiteCache(ctx, path)
	is.NoErr(err)
	defer sc.Close()
	got, err := sc.Get(ctx, "/words.txt")
	is.NoErr(err)
	is.Equal(string(got), "OAK\n")
}

func TestSQLiteCacheChecksumMismatch(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	sc, err := OpenSQLiteCache(ctx, filepath.Join(t.TempDir(), "cache.db"))
	is.NoErr(err)
	defer sc.Close()

	is.NoErr(sc.Put(ctx, "/words.txt", []byte("OAK\n")))
	_, err = sc.db.ExecContext(ctx, `UPDATE response_cache SET body = ? WHERE key = ?`,
		[]byte("OA"), "/words.txt")
	is.NoErr(err)
	_, err = sc.Get(ctx, "/words.txt")
	is.True(errors.Is(err, ErrChecksumMismatch))
}
