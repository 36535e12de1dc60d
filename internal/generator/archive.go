package generator

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// ArchiveResult describes a packaged dataset archive
type ArchiveResult struct {
	Path    string
	Entries []string // entry names in archive order
	Size    int64
}

// PackageArchive bundles every regular file under outputDir into a deflate zip
// at archivePath. Entries are flat (base name only), sorted by name and stamped
// with modTime so equal inputs give byte-identical archives. An existing
// archive is replaced. Every name in required must be present.
func PackageArchive(outputDir, archivePath string, required []string, modTime time.Time) (*ArchiveResult, error) {
	files, err := collectArchiveFiles(outputDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range required {
		if _, ok := files[name]; !ok {
			return nil, fmt.Errorf("table file %s missing from %s", name, outputDir)
		}
	}

	if dir := filepath.Dir(archivePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// Write beside the target and rename so a failed run never leaves a half archive
	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".archive-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive %s: %w", archivePath, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	zw := zip.NewWriter(tmp)
	for _, name := range names {
		if err := addArchiveEntry(zw, name, files[name], modTime); err != nil {
			zw.Close()
			tmp.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	if err := os.Rename(tmpPath, archivePath); err != nil {
		return nil, fmt.Errorf("failed to replace archive %s: %w", archivePath, err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	return &ArchiveResult{Path: archivePath, Entries: names, Size: info.Size()}, nil
}

// collectArchiveFiles maps base name to path for every regular file under dir
func collectArchiveFiles(dir string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if !d.Type().IsRegular() || strings.HasSuffix(name, partialSuffix) {
			return nil
		}
		if prev, ok := files[name]; ok {
			return fmt.Errorf("duplicate archive entry %s (%s and %s)", name, prev, path)
		}
		files[name] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}

// addArchiveEntry copies one file into the zip
func addArchiveEntry(zw *zip.Writer, name, path string, modTime time.Time) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}
	return nil
}
