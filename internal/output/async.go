package output

import (
	"sync"
)

const defaultAsyncBufferSize = 1024

// AsyncConfig configures an AsyncWriter.
type AsyncConfig struct {
	// BufferSize is the size of the message buffer channel.
	BufferSize int
	// ErrorHandler is called when an error occurs during async writing.
	ErrorHandler func(error)
}

// AsyncWriter serializes writes to an underlying Writer through a buffered
// channel and a single background worker, decoupling logging calls from I/O.
// Writes are issued to the underlying writer in call order. When the buffer
// is full the incoming payload is dropped and reported.
type AsyncWriter struct {
	out          Writer
	msgCh        chan []byte
	flushCh      chan chan struct{}
	stopCh       chan struct{}
	wg           sync.WaitGroup
	closeMutex   sync.Mutex
	closed       bool
	errorHandler func(error)
}

// NewAsyncWriter creates a new AsyncWriter that writes to the given writer
// asynchronously.
func NewAsyncWriter(out Writer, config AsyncConfig) *AsyncWriter {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultAsyncBufferSize
	}

	if config.ErrorHandler == nil {
		config.ErrorHandler = func(error) {}
	}

	writer := &AsyncWriter{
		out:          out,
		msgCh:        make(chan []byte, config.BufferSize),
		flushCh:      make(chan chan struct{}),
		stopCh:       make(chan struct{}),
		errorHandler: config.ErrorHandler,
	}

	writer.wg.Add(1)

	go writer.run()

	return writer
}

// Write queues the payload for the background worker. The payload is copied
// so callers may reuse their buffer. Write never blocks: a full buffer drops
// the payload and reports ErrBufferFull through the error handler.
//
// The stop channel is checked on its own before the send. A combined select
// would pick randomly between a closed stop channel and a buffered send,
// silently enqueueing payloads the exited worker will never drain.
func (w *AsyncWriter) Write(p []byte) (int, error) {
	select {
	case <-w.stopCh:
		return 0, ErrWriterClosed
	default:
	}

	payload := make([]byte, len(p))
	copy(payload, p)

	select {
	case <-w.stopCh:
		return 0, ErrWriterClosed
	case w.msgCh <- payload:
		return len(p), nil
	default:
		w.errorHandler(ErrBufferFull)

		return 0, ErrBufferFull
	}
}

func (w *AsyncWriter) run() {
	defer w.wg.Done()

	for {
		select {
		case payload := <-w.msgCh:
			w.write(payload)
		case ack := <-w.flushCh:
			w.drain()
			close(ack)
		case <-w.stopCh:
			w.drain()

			return
		}
	}
}

// drain writes every currently buffered payload.
func (w *AsyncWriter) drain() {
	for {
		select {
		case payload := <-w.msgCh:
			w.write(payload)
		default:
			return
		}
	}
}

func (w *AsyncWriter) write(payload []byte) {
	_, err := w.out.Write(payload)
	if err != nil {
		w.errorHandler(err)
	}
}

// Sync drains the queue and syncs the underlying writer.
func (w *AsyncWriter) Sync() error {
	w.closeMutex.Lock()
	defer w.closeMutex.Unlock()

	if !w.closed {
		ack := make(chan struct{})

		select {
		case w.flushCh <- ack:
			<-ack
		case <-w.stopCh:
		}
	}

	return w.out.Sync()
}

// Close stops the worker after draining buffered payloads and closes the
// underlying writer. Close is idempotent.
func (w *AsyncWriter) Close() error {
	w.closeMutex.Lock()

	if w.closed {
		w.closeMutex.Unlock()

		return nil
	}

	w.closed = true
	close(w.stopCh)
	w.closeMutex.Unlock()

	w.wg.Wait()

	return w.out.Close()
}
