// Package filesystem routes every file operation of the client through a swappable afero backend.
//
// Production code uses the OS filesystem; tests switch to an in-memory one so that history,
// caches and logs never touch the real disk.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteAtomic writes data to a sibling temporary file and renames it over path.
func WriteAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := backend.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return backend.Rename(tmp, path)
}
