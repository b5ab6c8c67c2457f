package render

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArchiveDirectory упаковывает все файлы каталога (без рекурсии) в zip-архив.
func ArchiveDirectory(dir, zipPath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	added := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFileToZip(zipWriter, filepath.Join(dir, entry.Name()), entry.Name()); err != nil {
			return fmt.Errorf("failed to add %s: %w", entry.Name(), err)
		}
		added++
	}

	if added == 0 {
		return fmt.Errorf("no files to archive in %s", dir)
	}

	return nil
}

func addFileToZip(zipWriter *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer, err := zipWriter.Create(name)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
