package apk

import (
	"archive/zip"
	"os"
)

// ArchiveFile is one member written by WriteArchiveForTest.
type ArchiveFile struct {
	Name string
	Data []byte
}

// WriteArchiveForTest writes a zip archive with the given members, in order.
func WriteArchiveForTest(path string, files []ArchiveFile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			_ = f.Close()
			return err
		}
		if _, err := w.Write(file.Data); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
