// Package output provides output destinations for the logger package.
//
// This package implements the writers behind the logger's dispatch targets:
// - File output with numbered-backup rotation (size- and time-triggered)
//   and optional compression of rotated files
// - An async writer that serializes writes through a background worker
// - A writer adapter bridging plain io.Writer values
//
// Each writer implements the Writer interface, which extends io.Writer with
// methods for synchronization and cleanup:
//
//	type Writer interface {
//	    io.Writer
//	    Sync() error  // Ensures all data is written
//	    Close() error // Releases resources
//	}
//
// FileWriter provides file-based logging with:
// - Rotation to numbered backups (<path>.1 newest .. <path>.N oldest)
// - Concurrent size and interval rotation triggers
// - A cross-process file lock guarding the rotation rename sequence
// - Safe concurrent access and idempotent close
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/hyp3rd/ewrap"

	"github.com/shuliangfu/logger/internal/utils"
)

const (
	defaultMaxSizeMB = 100
	defaultMaxFiles  = 5
	bytesPerMB       = 1024 * 1024
	logDirMode       = 0o700
)

// FileWriter implements Writer for file-based logging. It manages the log
// file, rotating it to numbered backups when it reaches a maximum size or
// when the rotation interval elapses, and optionally compressing rotated
// files.
type FileWriter struct {
	mu           sync.Mutex
	file         *os.File
	path         string
	size         int64
	maxSize      int64
	maxFiles     int
	compress     bool
	fileMode     os.FileMode
	rotateOnSize bool
	fileLock     *flock.Flock
	ticker       *time.Ticker
	stopCh       chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	compressWG   sync.WaitGroup
	errorHandler func(error)
}

// FileConfig holds configuration for file output.
type FileConfig struct {
	// Path is the log file path
	Path string
	// MaxSize is the maximum size in bytes before size-based rotation
	MaxSize int64
	// MaxFiles is the number of numbered backups retained
	MaxFiles int
	// Compress determines if rotated files should be compressed
	Compress bool
	// FileMode sets the permissions for new log files
	FileMode os.FileMode
	// RotateOnSize enables the size trigger, checked after every write
	RotateOnSize bool
	// RotateInterval enables the time trigger when positive
	RotateInterval time.Duration
	// ErrorHandler is called when errors occur during file operations
	ErrorHandler func(error)
}

// NewFileWriter creates a new file-based log writer. It validates the path,
// ensures the containing directory exists, and opens the file for append,
// creating it if absent. When a rotation interval is configured, a recurring
// timer rotates the file independently of its size; the timer is cancelled
// by Close.
func NewFileWriter(config FileConfig) (*FileWriter, error) {
	securePath, err := utils.ValidateLogPath(config.Path)
	if err != nil {
		return nil, ewrap.Wrap(err, ErrInvalidPath.Error())
	}

	config.Path = securePath

	if config.MaxSize == 0 {
		config.MaxSize = defaultMaxSizeMB * bytesPerMB
	}

	if config.MaxFiles <= 0 {
		config.MaxFiles = defaultMaxFiles
	}

	if config.FileMode == 0 {
		config.FileMode = 0o644
	}

	// Ensure directory exists
	dir := filepath.Dir(config.Path)

	err = os.MkdirAll(dir, logDirMode)
	if err != nil {
		return nil, ewrap.Wrapf(err, "creating log directory").
			WithMetadata("path", dir)
	}

	// Open or create the log file
	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.FileMode)
	if err != nil {
		return nil, ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", config.Path)
	}

	// Get initial file size
	info, err := file.Stat()
	if err != nil {
		ioErr := file.Close()
		if ioErr != nil {
			return nil, ewrap.Wrapf(ioErr, "closing file").
				WithMetadata("path", config.Path).
				WithMetadata("err", err)
		}

		return nil, ewrap.Wrapf(err, "getting file stats").
			WithMetadata("path", config.Path)
	}

	writer := &FileWriter{
		file:         file,
		path:         config.Path,
		size:         info.Size(),
		maxSize:      config.MaxSize,
		maxFiles:     config.MaxFiles,
		compress:     config.Compress,
		fileMode:     config.FileMode,
		rotateOnSize: config.RotateOnSize,
		fileLock:     flock.New(config.Path + ".lock"),
		stopCh:       make(chan struct{}),
		errorHandler: config.ErrorHandler,
	}

	if config.RotateInterval > 0 {
		writer.startTimedRotation(config.RotateInterval)
	}

	return writer, nil
}

// Write implements io.Writer. It appends the provided data to the log file
// and, when the size trigger is enabled, checks after the write whether the
// file has reached the maximum size and rotates it. The write that crosses
// the threshold lands in the rotated backup, leaving a fresh active file.
func (w *FileWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, ErrWriterClosed
	}

	bytesWritten, err := w.file.Write(data)
	if err != nil {
		w.reportError(ewrap.Wrap(err, "failed writing to log file"))

		return bytesWritten, ewrap.Wrap(err, "failed writing to log file")
	}

	w.size += int64(bytesWritten)

	if w.rotateOnSize && w.size >= w.maxSize {
		w.rotate()
	}

	return bytesWritten, nil
}

// Rotate forces a rotation of the active log file.
func (w *FileWriter) Rotate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.rotate()
}

// rotate closes the current handle, shifts the numbered backups upward,
// renames the active file to <path>.1, and reopens a fresh active file. The
// reopen happens on every path, including failures, to keep the writer
// usable. Callers must hold w.mu.
func (w *FileWriter) rotate() {
	// Serialize rotation across processes appending to the same file.
	// Lock failures are not fatal; a single-process writer never contends.
	locked, lockErr := w.fileLock.TryLock()
	if lockErr == nil && locked {
		defer func() {
			unlockErr := w.fileLock.Unlock()
			if unlockErr != nil {
				w.reportError(ewrap.Wrap(unlockErr, "releasing rotation lock"))
			}
		}()
	}

	// Close current file first; renaming an open handle risks data loss.
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	// An in-flight compression still owns the newest backup slot; shifting
	// underneath it would strand a stale compressed file.
	w.compressWG.Wait()

	w.shiftBackups()

	// Rename the active file to the newest backup slot. A missing active
	// file (e.g. concurrent rotation) is not an error.
	backupPath := w.backupName(1)

	err := os.Rename(w.path, backupPath)
	if err != nil && !os.IsNotExist(err) {
		w.reportError(ewrap.Wrapf(err, "renaming log file").
			WithMetadata("from", w.path).
			WithMetadata("to", backupPath))
	} else if err == nil && w.compress {
		w.compressWG.Add(1)

		go func() {
			defer w.compressWG.Done()

			w.compressBackup(backupPath)
		}()
	}

	// Reopen the file for append regardless of outcome.
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, w.fileMode)
	if err != nil {
		w.reportError(ewrap.Wrapf(err, "creating new log file").
			WithMetadata("path", w.path))

		return
	}

	w.file = file
	w.size = 0
}

// shiftBackups renames <path>.i to <path>.(i+1) from the oldest slot down,
// discarding anything past maxFiles. Rename errors for non-existent backups
// are ignored. Compressed backups shift alongside their plain counterparts.
func (w *FileWriter) shiftBackups() {
	for i := w.maxFiles - 1; i >= 1; i-- {
		_ = os.Rename(w.backupName(i), w.backupName(i+1))
		_ = os.Rename(w.backupName(i)+compressedExtension, w.backupName(i+1)+compressedExtension)
	}
}

func (w *FileWriter) backupName(index int) string {
	return fmt.Sprintf("%s.%d", w.path, index)
}

// startTimedRotation launches the recurring rotation timer. The timer fires
// unconditionally, independent of file size.
func (w *FileWriter) startTimedRotation(interval time.Duration) {
	w.ticker = time.NewTicker(interval)

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		for {
			select {
			case <-w.ticker.C:
				w.Rotate()
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Size returns the tracked size of the active file.
func (w *FileWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

// Path returns the resolved path of the active file.
func (w *FileWriter) Path() string {
	return w.path
}

// Sync ensures any buffered data is written to the underlying file.
// If the file has already been closed, Sync returns nil without error.
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil // Already closed, no error
	}

	err := w.file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "syncing log file")
	}

	return nil
}

// Close cancels the rotation timer, waits for any in-flight compression, syncs
// any remaining data, and closes the underlying file. Close errors are swallowed; the handle may already be
// closed by a rotation in flight. Close is idempotent.
func (w *FileWriter) Close() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)

		if w.ticker != nil {
			w.ticker.Stop()
		}
	})

	w.wg.Wait()
	w.compressWG.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil // Already closed, no error
	}

	_ = w.file.Sync()
	_ = w.file.Close()

	w.file = nil

	return nil
}

func (w *FileWriter) reportError(err error) {
	if w.errorHandler != nil {
		w.errorHandler(err)
	}
}
