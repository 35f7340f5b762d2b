package artifact

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// entryInfo is one entry in an archive's cached directory listing.
type entryInfo struct {
	path string // normalized, "/"-separated
	size int64  // uncompressed size in bytes
}

// Archive is a packaged container on the filesystem. ZIP containers
// (.zip, .jar) and gzipped tarballs (.tar.gz, .tgz) are supported; the
// format is selected by filename extension.
//
// The entry listing is read on first query and cached for the lifetime of
// the value. ArchivePath and ArchiveEntry values derived from an Archive
// share its cached listing.
type Archive struct {
	path string

	loadOnce sync.Once
	entries  []entryInfo
	loadErr  error
}

// NewArchive returns an Archive artifact for the given container path.
func NewArchive(path string) *Archive {
	return &Archive{path: path}
}

// Describe implements Artifact.
func (a *Archive) Describe() string {
	return "archive " + a.path
}

// Path addresses a location inside the archive by path prefix.
func (a *Archive) Path(prefix string) *ArchivePath {
	return &ArchivePath{archive: a, prefix: normalizePath(prefix)}
}

// Entry addresses a single entry inside the archive by exact path.
func (a *Archive) Entry(path string) *ArchiveEntry {
	return &ArchiveEntry{archive: a, path: normalizePath(path)}
}

// Exists reports whether the container file exists and is readable as an
// archive. An existing but unreadable container is an *AccessError, not a
// clean "does not exist".
func (a *Archive) Exists() (bool, error) {
	_, present, err := a.list()
	return present && err == nil, err
}

// Empty reports whether the archive exists and has zero entries.
func (a *Archive) Empty() (bool, error) {
	entries, present, err := a.list()
	if err != nil || !present {
		return false, err
	}
	return len(entries) == 0, nil
}

// DescendantPaths returns the paths of all entries, in archive order.
func (a *Archive) DescendantPaths() ([]string, error) {
	entries, present, err := a.list()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

// list returns the cached entry listing. present is false when the
// container file does not exist at all; err is non-nil for I/O or format
// failures on an existing file.
func (a *Archive) list() (entries []entryInfo, present bool, err error) {
	if _, statErr := os.Stat(a.path); statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, false, nil
		}
		return nil, false, accessErr("stat", a.path, statErr)
	}
	a.loadOnce.Do(func() {
		a.entries, a.loadErr = a.readListing()
	})
	return a.entries, true, a.loadErr
}

// find looks up an exact entry path in the cached listing.
func (a *Archive) find(path string) (entryInfo, bool, error) {
	entries, present, err := a.list()
	if err != nil || !present {
		return entryInfo{}, false, err
	}
	for _, e := range entries {
		if e.path == path {
			return e, true, nil
		}
	}
	return entryInfo{}, false, nil
}

func (a *Archive) readListing() ([]entryInfo, error) {
	switch {
	case a.isZip():
		return a.readZipListing()
	case a.isTarGz():
		return a.readTarGzListing()
	default:
		return nil, accessErr("open archive", a.path, fmt.Errorf("unsupported archive format"))
	}
}

func (a *Archive) isZip() bool {
	return strings.HasSuffix(a.path, ".zip") || strings.HasSuffix(a.path, ".jar")
}

func (a *Archive) isTarGz() bool {
	return strings.HasSuffix(a.path, ".tar.gz") || strings.HasSuffix(a.path, ".tgz")
}

func (a *Archive) readZipListing() ([]entryInfo, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer r.Close()

	entries := make([]entryInfo, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, entryInfo{
			path: normalizePath(f.Name),
			size: int64(f.UncompressedSize64),
		})
	}
	return entries, nil
}

func (a *Archive) readTarGzListing() ([]entryInfo, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer gz.Close()

	var entries []entryInfo
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, accessErr("read archive", a.path, err)
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}
		entries = append(entries, entryInfo{
			path: normalizePath(hdr.Name),
			size: hdr.Size,
		})
	}
	return entries, nil
}

// readEntry returns the decompressed content of one entry. The listing
// cache only holds paths and sizes; content is read on demand so that
// checking an archive never materializes entries nobody asked about.
func (a *Archive) readEntry(path string) ([]byte, error) {
	_, found, err := a.find(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("entry %q not found in archive %s", path, a.path)
	}
	if a.isZip() {
		return a.readZipEntry(path)
	}
	return a.readTarGzEntry(path)
}

func (a *Archive) readZipEntry(path string) ([]byte, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if normalizePath(f.Name) != path {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, accessErr("read entry", path, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, accessErr("read entry", path, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %q not found in archive %s", path, a.path)
}

func (a *Archive) readTarGzEntry(path string) ([]byte, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, accessErr("open archive", a.path, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, accessErr("read archive", a.path, err)
		}
		if normalizePath(hdr.Name) != path {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, accessErr("read entry", path, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %q not found in archive %s", path, a.path)
}

// ArchivePath is a path prefix inside an archive. It exists when at least
// one entry lives below the prefix.
type ArchivePath struct {
	archive *Archive
	prefix  string
}

// Describe implements Artifact.
func (p *ArchivePath) Describe() string {
	if p.prefix == "" {
		return p.archive.Describe()
	}
	return fmt.Sprintf("path %s in archive %s", p.prefix, p.archive.path)
}

// Path addresses a deeper location; Path("a").Path("b") is Path("a/b").
func (p *ArchivePath) Path(sub string) *ArchivePath {
	return &ArchivePath{archive: p.archive, prefix: normalizePath(p.prefix, sub)}
}

// Entry addresses an entry below the prefix; Path("a").Entry("b") is the
// same entry as Entry("a/b") on the archive.
func (p *ArchivePath) Entry(sub string) *ArchiveEntry {
	return &ArchiveEntry{archive: p.archive, path: normalizePath(p.prefix, sub)}
}

// Exists reports whether at least one entry lives below the prefix. An
// empty prefix addresses the archive root and exists when the archive does.
func (p *ArchivePath) Exists() (bool, error) {
	if p.prefix == "" {
		return p.archive.Exists()
	}
	entries, present, err := p.archive.list()
	if err != nil || !present {
		return false, err
	}
	marker := p.prefix + "/"
	for _, e := range entries {
		if strings.HasPrefix(e.path, marker) {
			return true, nil
		}
	}
	return false, nil
}

// Empty reports whether the archive is readable and no entry lives below
// the prefix.
func (p *ArchivePath) Empty() (bool, error) {
	if p.prefix == "" {
		return p.archive.Empty()
	}
	entries, present, err := p.archive.list()
	if err != nil || !present {
		return false, err
	}
	marker := p.prefix + "/"
	for _, e := range entries {
		if strings.HasPrefix(e.path, marker) {
			return false, nil
		}
	}
	return true, nil
}

// DescendantPaths returns the entry paths below the prefix, relative to
// the prefix, in archive order.
func (p *ArchivePath) DescendantPaths() ([]string, error) {
	if p.prefix == "" {
		return p.archive.DescendantPaths()
	}
	entries, present, err := p.archive.list()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	marker := p.prefix + "/"
	var paths []string
	for _, e := range entries {
		if strings.HasPrefix(e.path, marker) {
			paths = append(paths, strings.TrimPrefix(e.path, marker))
		}
	}
	return paths, nil
}

// ArchiveEntry is a single entry inside an archive, addressed by exact
// path.
type ArchiveEntry struct {
	archive *Archive
	path    string
}

// Describe implements Artifact.
func (e *ArchiveEntry) Describe() string {
	return fmt.Sprintf("entry %s in archive %s", e.path, e.archive.path)
}

// Exists reports whether the exact entry path is present in the archive.
func (e *ArchiveEntry) Exists() (bool, error) {
	_, found, err := e.archive.find(e.path)
	return found, err
}

// Empty reports whether the entry is present with zero-length content.
func (e *ArchiveEntry) Empty() (bool, error) {
	info, found, err := e.archive.find(e.path)
	if err != nil || !found {
		return false, err
	}
	return info.size == 0, nil
}

// Content returns the entry's decompressed content.
func (e *ArchiveEntry) Content() ([]byte, error) {
	return e.archive.readEntry(e.path)
}
