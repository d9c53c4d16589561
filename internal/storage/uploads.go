package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// importedSuffix tags an upload that has already been consumed, so a retry of
// the same file name cannot be processed twice.
const importedSuffix = ".imported"

// UploadStore keeps raw statement uploads on disk, one subdirectory per user.
type UploadStore struct {
	root string
}

func NewUploadStore(root string) *UploadStore {
	return &UploadStore{root: root}
}

// Save writes the upload under <root>/<userID>/<fileName> and returns the
// resulting path. Only the base of fileName is used.
func (s *UploadStore) Save(userID, fileName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %v", err)
	}

	path := filepath.Join(dir, filepath.Base(fileName))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create upload file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("could not write upload file: %v", err)
	}
	return path, nil
}

// MarkImported renames the upload with the imported suffix and returns the new
// path. It refuses if the target name is already taken.
func (s *UploadStore) MarkImported(path string) (string, error) {
	imported := path + importedSuffix
	if _, err := os.Stat(imported); err == nil {
		return "", fmt.Errorf("file %s was already imported", filepath.Base(path))
	}
	if err := os.Rename(path, imported); err != nil {
		return "", fmt.Errorf("could not mark file as imported: %v", err)
	}
	return imported, nil
}

// Open opens a stored file for reading.
func (s *UploadStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open upload file: %v", err)
	}
	return f, nil
}

// PruneImported removes consumed uploads older than maxAge across all user
// directories and reports how many files were removed.
func (s *UploadStore) PruneImported(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("could not read upload root: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		userDir := filepath.Join(s.root, entry.Name())
		files, err := os.ReadDir(userDir)
		if err != nil {
			return removed, fmt.Errorf("could not read upload directory %s: %v", entry.Name(), err)
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), importedSuffix) {
				continue
			}
			info, err := file.Info()
			if err != nil {
				return removed, fmt.Errorf("could not stat %s: %v", file.Name(), err)
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(userDir, file.Name())); err != nil {
				return removed, fmt.Errorf("could not remove %s: %v", file.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}
