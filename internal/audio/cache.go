// Package audio maintains the daemon's local azan audio cache. Sources may
// be local files (copied in) or http(s) URLs (downloaded once); a marker
// file per asset records its source so an unchanged source never triggers
// another fetch. Resolved references carry the daemon-served media URL
// that the playback sink hands to the target device.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/minaret/minaret/pkg/azanlib"
	"github.com/minaret/minaret/pkg/logger"
)

// Logical source keys. Fajr gets its own audio when a fajr source is
// configured; every other prayer uses the default azan.
const (
	DefaultKey = "azan"
	FajrKey    = "fajr_azan"
)

// Source pairs a logical key with a local path or http(s) URL.
type Source struct {
	Key string
	URL string
}

// Config assembles a Cache.
type Config struct {
	// Fs defaults to the OS filesystem; tests use afero.NewMemMapFs.
	Fs afero.Fs

	// Dir is the cache directory.
	Dir string

	// BaseURL is the public prefix under which the web server exposes Dir,
	// e.g. "http://192.168.1.10:4270/media/azan".
	BaseURL string

	Client *http.Client
	Log    logger.Logger
}

// Cache resolves prayers to cached audio assets.
type Cache struct {
	fs      afero.Fs
	dir     string
	baseURL string
	client  *http.Client
	log     logger.Logger

	mu    sync.RWMutex
	files map[string]string // key -> file name within dir
}

// NewCache creates the cache directory if needed.
func NewCache(cfg Config) (*Cache, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("audio cache: empty directory")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 5 * time.Minute}
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	if err := cfg.Fs.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio cache: create %s: %w", cfg.Dir, err)
	}
	return &Cache{
		fs:      cfg.Fs,
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.Client,
		log:     cfg.Log,
		files:   make(map[string]string),
	}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Fs returns the backing filesystem, for the web server's media routes.
func (c *Cache) Fs() afero.Fs { return c.fs }

// Prepare populates the cache from the given sources. Each source is
// best-effort: a failed download leaves that key unresolvable but never
// fails the others. Safe to call again after a config change.
func (c *Cache) Prepare(ctx context.Context, sources []Source) {
	for _, src := range sources {
		if src.URL == "" {
			continue
		}
		if err := c.prepare(ctx, src); err != nil {
			c.log.Error("failed to prepare audio %q: %v", src.Key, err)
		}
	}
}

func (c *Cache) prepare(ctx context.Context, src Source) error {
	outName := src.Key + extOf(src.URL)
	outPath := filepath.Join(c.dir, outName)
	markerPath := filepath.Join(c.dir, "."+src.Key+".url")

	if c.isCached(outPath, markerPath, src.URL) {
		c.register(src.Key, outName)
		return nil
	}
	c.log.Info("preparing audio: %s -> %s", src.URL, src.Key)

	var err error
	if isRemote(src.URL) {
		err = c.download(ctx, src.URL, outPath)
	} else {
		err = c.copyLocal(src.URL, outPath)
	}
	if err != nil {
		return err
	}

	if werr := afero.WriteFile(c.fs, markerPath, []byte(src.URL), 0o644); werr != nil {
		c.log.Warning("failed to write source marker for %q: %v", src.Key, werr)
	}
	c.register(src.Key, outName)
	c.log.Info("audio ready: %s", src.Key)
	return nil
}

func (c *Cache) isCached(outPath, markerPath, url string) bool {
	if ok, _ := afero.Exists(c.fs, outPath); !ok {
		return false
	}
	prev, err := afero.ReadFile(c.fs, markerPath)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(prev)) == url
}

func (c *Cache) copyLocal(srcPath, outPath string) error {
	in, err := c.fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open local audio %s: %w", srcPath, err)
	}
	defer in.Close()

	out, err := c.fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", srcPath, err)
	}
	return nil
}

func (c *Cache) download(ctx context.Context, url, outPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}
	if err := checkDiskSpace(c.dir, resp.ContentLength); err != nil {
		return err
	}

	out, err := c.fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func (c *Cache) register(key, name string) {
	c.mu.Lock()
	c.files[key] = name
	c.mu.Unlock()
}

// Resolve implements azanlib.AudioProvider. Fajr prefers its dedicated
// audio when one is cached.
func (c *Cache) Resolve(name azanlib.PrayerName) (*azanlib.AudioRef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := DefaultKey
	if name == azanlib.Fajr {
		if _, ok := c.files[FajrKey]; ok {
			key = FajrKey
		}
	}
	file, ok := c.files[key]
	if !ok {
		return nil, azanlib.ErrAudioUnavailable
	}
	return &azanlib.AudioRef{
		Prayer: name,
		File:   file,
		URL:    c.baseURL + "/" + file,
	}, nil
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// extOf derives the cached file extension from the source, defaulting to mp3.
func extOf(url string) string {
	ext := path.Ext(path.Base(strings.TrimRight(url, "/")))
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, "?&=") {
		return ".mp3"
	}
	return ext
}

var _ azanlib.AudioProvider = (*Cache)(nil)
