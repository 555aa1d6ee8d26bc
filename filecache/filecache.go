// Package filecache discovers candidate manual-page files on disk and
// computes the content identity used to decide whether a file needs
// reindexing (C1 FileCache and C2 ContentHasher).
package filecache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Identity is the (device, inode, mtime) triple used to cheaply decide
// "nothing changed" without reading file content.
type Identity struct {
	Device uint64
	Inode  uint64
	Mtime  int64
}

// Entry is one candidate file discovered while walking the man roots.
type Entry struct {
	Path string
	Identity
}

// Cache is the in-memory stand-in for the original's metadb.file_cache
// temp table: one entry per (device, inode) pair seen this run, the
// first path encountered for a given inode wins, matching the original
// traversedir's implicit hardlink handling.
type Cache struct {
	entries []Entry
	seen    map[[2]uint64]bool
}

// Walk recursively visits every root, skipping dot-prefixed entries the
// same way traversedir does (strncmp(dirp->d_name, ".", 1)). Stat
// failures are logged and skipped rather than aborting the whole run.
func Walk(roots []string) (*Cache, error) {
	c := &Cache{seen: make(map[[2]uint64]bool)}
	for _, root := range roots {
		if err := c.walk(root); err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return c, nil
}

func (c *Cache) walk(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		slog.Warn("stat failed, skipping", "path", path, "error", err)
		return nil
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			slog.Warn("readdir failed, skipping", "path", path, "error", err)
			return nil
		}
		for _, de := range entries {
			if strings.HasPrefix(de.Name(), ".") {
				continue
			}
			if err := c.walk(filepath.Join(path, de.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	// Regular files and symlinks are both candidates; a symlink target
	// is resolved later by the hasher, the identity here is of the link
	// entry itself (os.Lstat above does not follow symlinks, unlike
	// build_file_cache's stat() call).
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		slog.Warn("unsupported stat_t, skipping", "path", path)
		return nil
	}

	id := Identity{
		Device: uint64(st.Dev),
		Inode:  uint64(st.Ino),
		Mtime:  info.ModTime().Unix(),
	}
	key := [2]uint64{id.Device, id.Inode}
	if c.seen[key] {
		return nil
	}
	c.seen[key] = true
	c.entries = append(c.entries, Entry{Path: path, Identity: id})
	return nil
}

// Entries returns every discovered candidate file.
func (c *Cache) Entries() []Entry {
	return c.entries
}

// Hash streams path through MD5 and returns the lowercase hex digest,
// the spec-mandated content identity (original_source names MD5
// explicitly; there is no reason to prefer a third-party hash over the
// standard library's implementation of the named algorithm).
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
