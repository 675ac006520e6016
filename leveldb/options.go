package leveldb

import "github.com/syndtr/goleveldb/leveldb/opt"

// specific goleveldb options
type Config struct {
	Dir      string
	InMemory bool
	Options  *opt.Options
	// defaults to a synced write
	WriteOptions *opt.WriteOptions
}

func DefaultOptions(dir string) *Config {
	return &Config{Dir: dir, WriteOptions: &opt.WriteOptions{Sync: true}}
}
