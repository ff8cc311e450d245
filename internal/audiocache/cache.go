// Package audiocache resolves duration and size for remote audio files,
// downloading and probing each file at most once. Probed results are keyed
// by the md5 of the file URL, so repeated feed builds never re-download a
// file the cache has already seen.
package audiocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"radiorsser/internal/db"
	"radiorsser/internal/fetch"
	"radiorsser/internal/textutil"
)

var execCommand = exec.Command

type Cache struct {
	fetcher *fetch.Fetcher
	tmpDir  string
}

func New(fetcher *fetch.Fetcher, tmpDir string) *Cache {
	return &Cache{fetcher: fetcher, tmpDir: tmpDir}
}

// FileInfo returns (duration seconds, byte size) for the audio file at
// fileURL. On a cache hit nothing touches the network. On a miss the file is
// downloaded to a temporary location, probed, recorded and removed.
// Concurrent misses on the same URL do redundant work; the record insert is
// idempotent, so the first writer wins.
func (c *Cache) FileInfo(ctx context.Context, fileURL, fileName string) (int, int64, error) {
	hash := textutil.StringHash(fileURL)

	record, err := db.GetEpisodeRecordByHash(hash)
	if err == nil {
		return record.Duration, record.Size, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("failed to look up episode record: %w", err)
	}

	tmpFile, err := c.download(ctx, fileURL, fileName)
	if err != nil {
		return 0, 0, err
	}
	defer os.Remove(tmpFile)

	duration, err := probeDuration(tmpFile)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe %s: %w", fileURL, err)
	}

	info, err := os.Stat(tmpFile)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat downloaded file: %w", err)
	}
	size := info.Size()

	if err := db.CreateEpisodeRecord(fileURL, hash, duration, size); err != nil {
		return 0, 0, fmt.Errorf("failed to persist episode record: %w", err)
	}

	return duration, size, nil
}

func (c *Cache) download(ctx context.Context, fileURL, fileName string) (string, error) {
	resp, err := c.fetcher.Get(ctx, fileURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(c.tmpDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create tmp dir: %w", err)
	}

	path := filepath.Join(c.tmpDir, filepath.Base(fileName))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create tmp file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func probeDuration(path string) (int, error) {
	cmd := execCommand("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-print_format", "json",
		path,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %v, output: %s", err, string(output))
	}

	// ffprobe may log warnings before the JSON.
	jsonStart := strings.Index(string(output), "{")
	if jsonStart == -1 {
		return 0, fmt.Errorf("no JSON found in ffprobe output: %s", string(output))
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(output[jsonStart:], &probed); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected duration %q in ffprobe output: %w", probed.Format.Duration, err)
	}

	return int(seconds), nil
}
