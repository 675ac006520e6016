package atomkv_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rawbytedev/atomkv"
	"github.com/rawbytedev/atomkv/configs"
	"github.com/rawbytedev/atomkv/engine"
	"github.com/rawbytedev/atomkv/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	runAllEngines(t, []test{
		{name: "put_get", fn: testPutGet},
		{name: "absent_key", fn: testAbsentKey},
		{name: "overwrite", fn: testOverwrite},
		{name: "get_append", fn: testGetAppend},
		{name: "close_with_open_query", fn: testCloseWithOpenQuery},
		{name: "use_after_close", fn: testUseAfterClose},
		{name: "reopen", fn: testReopen},
		{name: "open_on_file", fn: testOpenOnFile},
	})
}

func testPutGet(t *testing.T, name string) {
	db := helpers.SetupDB(t, name)
	require.NoError(t, db.Put([]byte("hoge"), []byte("hogevalue")))

	value, found, err := db.Get([]byte("hoge"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("hogevalue"), value)

	keys, values := helpers.FillValues(t, db, "", 20)
	for i := range keys {
		value, found, err := db.Get(keys[i])
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, values[i], value)
	}
}

func testAbsentKey(t *testing.T, name string) {
	db := helpers.SetupDB(t, name)
	value, found, err := db.Get([]byte("never-written"))
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, value)
}

func testOverwrite(t *testing.T, name string) {
	db := helpers.SetupDB(t, name)
	require.NoError(t, db.Put([]byte("k"), []byte("v1")))
	require.NoError(t, db.Put([]byte("k"), []byte("v2")))

	value, found, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("v2"), value)
}

func testGetAppend(t *testing.T, name string) {
	db := helpers.SetupDB(t, name)
	require.NoError(t, db.Put([]byte("a"), []byte("first")))
	require.NoError(t, db.Put([]byte("b"), []byte("second")))

	buf := make([]byte, 0, 64)
	buf, found, err := db.GetAppend(buf, []byte("a"))
	require.NoError(t, err)
	require.True(t, found)
	buf, found, err = db.GetAppend(buf, []byte("b"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("firstsecond"), buf)

	buf, found, err = db.GetAppend(buf[:0], []byte("missing"))
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, buf)
}

func testCloseWithOpenQuery(t *testing.T, name string) {
	eng, err := configs.ParseEngine(name)
	require.NoError(t, err)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Engine = eng
	db, err := atomkv.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	q := db.Query(nil, false)
	require.ErrorIs(t, db.Close(), atomkv.ErrCursorsOpen)

	// the handle is still usable
	_, found, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, q.Each(func(_, _ []byte) bool { return true }))
	require.NoError(t, db.Close())
}

func testUseAfterClose(t *testing.T, name string) {
	eng, err := configs.ParseEngine(name)
	require.NoError(t, err)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Engine = eng
	db, err := atomkv.Open(cfg)
	require.NoError(t, err)

	q := db.Query(nil, false)
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "second close is a no-op")

	var werr *atomkv.WriteError
	err = db.Put([]byte("k"), []byte("v"))
	require.True(t, errors.As(err, &werr))
	require.ErrorIs(t, err, engine.ErrClosed)

	var rerr *atomkv.ReadError
	_, _, err = db.Get([]byte("k"))
	require.True(t, errors.As(err, &rerr))
	require.ErrorIs(t, err, engine.ErrClosed)

	var ierr *atomkv.IterationError
	err = db.Query(nil, false).Each(func(_, _ []byte) bool {
		t.Fatal("visitor called on a closed handle")
		return false
	})
	require.True(t, errors.As(err, &ierr))
	require.ErrorIs(t, err, engine.ErrClosed)
}

func testReopen(t *testing.T, name string) {
	eng, err := configs.ParseEngine(name)
	require.NoError(t, err)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Engine = eng

	db, err := atomkv.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("persist"), []byte("me")))
	require.NoError(t, db.Close())

	db, err = atomkv.Open(cfg)
	require.NoError(t, err)
	defer db.Close()
	value, found, err := db.Get([]byte("persist"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("me"), value)
}

func testOpenOnFile(t *testing.T, name string) {
	eng, err := configs.ParseEngine(name)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	cfg := configs.DefaultConfig(path)
	cfg.Engine = eng
	_, err = atomkv.Open(cfg)
	var oerr *atomkv.OpenError
	require.True(t, errors.As(err, &oerr))
	require.Equal(t, string(eng), oerr.Engine)
	require.Equal(t, path, oerr.Path)
}

func TestOpenInvalidConfig(t *testing.T) {
	_, err := atomkv.Open(configs.StoreConfig{Engine: configs.Pebble})
	require.ErrorIs(t, err, configs.ErrEmptyDir)

	_, err = atomkv.Open(configs.StoreConfig{Engine: "rocksdb", Default: &configs.DefaultOptions{Dir: t.TempDir()}})
	require.ErrorIs(t, err, configs.ErrUnknownEngine)
}

func TestOpenInMemory(t *testing.T) {
	for _, eng := range []configs.Engine{configs.Badger, configs.LevelDB} {
		db, err := atomkv.Open(configs.StoreConfig{Engine: eng, Default: &configs.DefaultOptions{InMemory: true}})
		require.NoError(t, err, eng)
		require.NoError(t, db.Put([]byte("k"), []byte("v")))
		value, found, err := db.Get([]byte("k"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("v"), value)
		require.NoError(t, db.Close())
	}
}

func TestOpenLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Logger = &logger

	db, err := atomkv.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out := buf.String()
	assert.Contains(t, out, `"engine":"pebble"`)
	assert.Contains(t, out, "store opened")
	assert.Contains(t, out, "store closed")
}

func TestOpenEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Engine = configs.Badger
	cfg.Logger = &logger

	db, err := atomkv.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// badger reports table and level state through the engine logger
	out := buf.String()
	assert.Contains(t, out, `"component":"engine"`)
	assert.Contains(t, out, `"engine":"badger"`)
}
