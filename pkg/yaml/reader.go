package yaml

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shapestone/confyaml/pkg/value"
)

// Reader reads and parses YAML files from disk, optionally consulting a
// Cache so an unchanged file is not re-parsed on every call. The parser
// package itself stays I/O-free; Reader is the only layer in this module
// that touches the filesystem, which is why it is also the only layer
// that carries a logger.
type Reader struct {
	cache  Cache
	logger logrus.FieldLogger
	ttl    time.Duration
}

// Option configures a Reader constructed by NewReader.
type Option func(*Reader)

// WithCache installs the Cache collaborator a Reader consults before
// re-parsing a file. Without this option a Reader parses on every Read.
func WithCache(cache Cache) Option {
	return func(r *Reader) { r.cache = cache }
}

// WithLogger overrides the logrus.FieldLogger a Reader logs through.
// Passing nil is a no-op; NewReader defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCacheTTL sets the ttl passed to Cache.Store on each miss. The zero
// value (the default) means "no expiry, invalidate by mtime only".
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Reader) { r.ttl = ttl }
}

// NewReader returns a Reader ready to use. With no options it reads and
// parses files uncached, logging through logrus.StandardLogger().
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read opens path, verifies it exists, reads its bytes, and parses it.
// When the Reader was built WithCache, a cache entry whose stored
// timestamp is at or after the file's mtime is returned without
// re-parsing; otherwise the file is parsed and the result stored.
func (r *Reader) Read(path string) (value.Value, error) {
	readID := uuid.NewString()
	start := time.Now()
	log := r.logger.WithFields(logrus.Fields{"path": path, "read_id": readID})

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithError(err).Error("file not found")
			return value.Value{}, errors.Wrapf(err, "yaml: file not found: %s", path)
		}
		log.WithError(err).Error("file unreadable")
		return value.Value{}, errors.Wrapf(err, "yaml: file unreadable: %s", path)
	}

	if r.cache != nil {
		if storedAt, ok := r.cache.Time(path); ok && !storedAt.Before(info.ModTime()) {
			if v, ok := r.cache.Fetch(path); ok {
				log.WithFields(logrus.Fields{
					"cache_hit":   true,
					"duration_ms": time.Since(start).Milliseconds(),
				}).Debug("read served from cache")
				return v, nil
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Error("file unreadable")
		return value.Value{}, errors.Wrapf(err, "yaml: file unreadable: %s", path)
	}

	v, err := Parse(string(data))
	if err != nil {
		log.WithError(err).Error("parse failed")
		return value.Value{}, err
	}

	if r.cache != nil {
		r.cache.Store(path, v, r.ttl)
	}

	log.WithFields(logrus.Fields{
		"cache_hit":   false,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("read parsed from disk")

	return v, nil
}
