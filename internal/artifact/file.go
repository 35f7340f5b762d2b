package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// File is a loose file on the filesystem.
type File struct {
	path string
}

// NewFile returns a File artifact for the given filesystem path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Describe implements Artifact.
func (f *File) Describe() string {
	return "file " + f.path
}

// Exists reports whether the path exists as a regular file.
func (f *File) Exists() (bool, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, accessErr("stat", f.path, err)
	}
	return info.Mode().IsRegular(), nil
}

// Empty reports whether the file exists and has zero size.
func (f *File) Empty() (bool, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, accessErr("stat", f.path, err)
	}
	return info.Mode().IsRegular() && info.Size() == 0, nil
}

// Content returns the file's full content.
func (f *File) Content() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, accessErr("read", f.path, err)
	}
	return data, nil
}

// Dir is a directory on the filesystem.
type Dir struct {
	path string
}

// NewDir returns a Dir artifact for the given filesystem path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Describe implements Artifact.
func (d *Dir) Describe() string {
	return "directory " + d.path
}

// Exists reports whether the path exists as a directory.
func (d *Dir) Exists() (bool, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, accessErr("stat", d.path, err)
	}
	return info.IsDir(), nil
}

// Empty reports whether the directory exists and contains no files,
// recursively. Empty subdirectories do not count as content.
func (d *Dir) Empty() (bool, error) {
	ok, err := d.Exists()
	if err != nil || !ok {
		return false, err
	}
	paths, err := d.DescendantPaths()
	if err != nil {
		return false, err
	}
	return len(paths) == 0, nil
}

// DescendantPaths returns the relative "/"-separated paths of all files
// below the directory, in lexical walk order.
func (d *Dir) DescendantPaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(d.path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.path, p)
		if err != nil {
			return err
		}
		paths = append(paths, normalizePath(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, accessErr("walk", d.path, err)
	}
	sort.Strings(paths)
	return paths, nil
}
