package palette

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirSource wraps an on-disk directory as a folder-packed Source, per
// spec.md §6's "config sources: iterable of (path, reader) pairs; the
// zip/folder distinction is hidden". Paths are always forward-slash
// separated and relative to dir, matching the convention the palette
// loader's category prefixes (entities/, triggers/, ...) expect.
func DirSource(name, dir string) Source {
	fsys := os.DirFS(dir)
	return Source{
		Name: name,
		Kind: SourceFolder,
		List: func() ([]string, error) {
			var paths []string
			err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					paths = append(paths, p)
				}
				return nil
			})
			return paths, err
		},
		Open: func(p string) (io.ReadCloser, error) {
			return fsys.Open(p)
		},
	}
}

// ZipSource wraps a .zip archive as an archive-packed Source.
func ZipSource(name, zipPath string) (Source, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return Source{}, fmt.Errorf("opening pack archive %q: %w", zipPath, err)
	}
	return Source{
		Name: name,
		Kind: SourceArchive,
		List: func() ([]string, error) {
			var paths []string
			for _, f := range r.File {
				if !f.FileInfo().IsDir() {
					paths = append(paths, f.Name)
				}
			}
			return paths, nil
		},
		Open: func(p string) (io.ReadCloser, error) {
			return r.Open(p)
		},
	}, nil
}

// DiscoverSources scans root for content-pack modules: each immediate
// subdirectory becomes a folder-packed Source (its directory name is the
// pack name) and each immediate ".zip" file becomes an archive-packed
// Source, mirroring the reference editor's packs-directory convention
// (a flat directory of installed modules, some exploded, some still
// zipped) the way themes.Loader walks a theme directory with plain
// os/path/filepath calls rather than a VFS library.
func DiscoverSources(root string) ([]Source, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading pack directory %q: %w", root, err)
	}
	var sources []Source
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(root, name)
		switch {
		case entry.IsDir():
			sources = append(sources, DirSource(name, full))
		case strings.HasSuffix(strings.ToLower(name), ".zip"):
			src, err := ZipSource(strings.TrimSuffix(name, filepath.Ext(name)), full)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
	}
	return sources, nil
}
