package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage persists uploaded binary assets on disk under a generated
// unique name. Assets are later addressed as /uploads/<filename>.
type LocalStorage struct {
	Dir      string
	AudioDir string
}

func NewLocalStorage(dir, audioDir string) (*LocalStorage, error) {
	for _, d := range []string{dir, audioDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", d, err)
		}
	}
	return &LocalStorage{Dir: dir, AudioDir: audioDir}, nil
}

// SaveUpload writes a multipart file under the uploads root and returns the
// generated filename.
func (s *LocalStorage) SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	filename := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return filename, nil
}

// SaveAudio writes a decoded audio blob under the audio directory and
// returns the generated filename. Voice notes arrive as m4a.
func (s *LocalStorage) SaveAudio(data []byte) (string, error) {
	filename := uuid.New().String() + ".m4a"

	if err := os.WriteFile(filepath.Join(s.AudioDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return filename, nil
}

// Delete removes a previously saved upload.
func (s *LocalStorage) Delete(filename string) error {
	if err := os.Remove(filepath.Join(s.Dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload %s: %w", filename, err)
	}
	return nil
}
