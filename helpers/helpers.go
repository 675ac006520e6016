// Package helpers holds test support shared by the engine and handle tests.
package helpers

import (
	"crypto/rand"
	"testing"

	"github.com/rawbytedev/atomkv"
	"github.com/rawbytedev/atomkv/configs"
	"github.com/stretchr/testify/require"
)

// SetupDB opens a DB on the named engine in a fresh temporary directory and
// closes it when the test ends.
func SetupDB(t testing.TB, name string) *atomkv.DB {
	t.Helper()
	eng, err := configs.ParseEngine(name)
	require.NoError(t, err)
	cfg := configs.DefaultConfig(t.TempDir())
	cfg.Engine = eng
	db, err := atomkv.Open(cfg)
	require.NoError(t, err, "open %s", name)
	t.Cleanup(func() { db.Close() })
	return db
}

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b) // never fails since Go 1.24
	return b
}

// FillValues writes count random keys under prefix and returns the suffixes and values.
func FillValues(t testing.TB, db *atomkv.DB, prefix string, count int) ([][]byte, [][]byte) {
	t.Helper()
	keys := make([][]byte, count)
	values := make([][]byte, count)
	for i := range count {
		keys[i] = RandomBytes(16)
		values[i] = RandomBytes(32)
		prefKey := append([]byte(prefix), keys[i]...)
		require.NoError(t, db.Put(prefKey, values[i]))
	}
	return keys, values
}

// PutAll writes every pair of kv.
func PutAll(t testing.TB, db *atomkv.DB, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		require.NoError(t, db.Put([]byte(k), []byte(v)))
	}
}
