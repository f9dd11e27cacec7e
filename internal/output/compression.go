package output

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/hyp3rd/ewrap"
)

// compressedExtension is the file extension appended to compressed backups.
const compressedExtension = ".gz"

// compressBackup compresses a rotated backup file in the background. The
// original backup is removed after successful compression; failures are
// reported through the writer's error handler and leave the plain backup in
// place.
func (w *FileWriter) compressBackup(path string) {
	err := compressGzip(path)
	if err != nil {
		w.reportError(ewrap.Wrapf(err, "compressing rotated log file").
			WithMetadata("path", path))
	}
}

// compressGzip compresses the file at path into path.gz and removes the
// original. A partial compressed file is cleaned up on failure.
func compressGzip(path string) error {
	source, err := os.Open(path)
	if err != nil {
		return ewrap.Wrap(err, "opening source file")
	}

	defer func() {
		_ = source.Close()
	}()

	compressedPath := path + compressedExtension

	compressed, err := os.OpenFile(compressedPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return ewrap.Wrap(err, "creating compressed file")
	}

	gzipWriter := gzip.NewWriter(compressed)
	gzipWriter.Name = filepath.Base(path)

	_, err = io.Copy(gzipWriter, source)
	if err == nil {
		err = gzipWriter.Close()
	}

	if err == nil {
		err = compressed.Close()
	}

	if err != nil {
		_ = compressed.Close()
		_ = os.Remove(compressedPath)

		return ewrap.Wrap(err, "writing compressed file")
	}

	err = os.Remove(path)
	if err != nil {
		return ewrap.Wrap(err, "removing original file after compression")
	}

	return nil
}
