package buffer

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

// DefaultWriteSize is the size of the command buffer. Pixel commands are
// small, so a large buffer keeps the number of write syscalls per pass low.
const DefaultWriteSize = 256 << 10

// maxLineLength bounds a single response line.
const maxLineLength = 4 << 10

// ErrLineTooLong is returned when a response line exceeds the read buffer.
var ErrLineTooLong = errors.New("response line too long")

// ReadWriter is a line-oriented read/write buffer for Pixelflut connections.
// It is not safe for concurrent use.
type ReadWriter struct {
	c  net.Conn
	br *bufio.Reader
	bw *bufio.Writer

	writeTimeout time.Duration
}

// NewReadWriteBuffer returns a new ReadWriter for the given connection. A
// positive writeTimeout is applied as a deadline to every write that
// reaches the socket.
func NewReadWriteBuffer(c net.Conn, writeTimeout time.Duration) *ReadWriter {
	return &ReadWriter{
		c:            c,
		br:           bufio.NewReaderSize(c, maxLineLength),
		bw:           bufio.NewWriterSize(c, DefaultWriteSize),
		writeTimeout: writeTimeout,
	}
}

// ReadLine reads one response line without its trailing "\n" or "\r\n".
// A final line the server sent without a newline before closing is
// returned as is.
func (rw *ReadWriter) ReadLine() (string, error) {
	line, err := rw.br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		return "", ErrLineTooLong
	}
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

// Write buffers p, flushing to the connection when the buffer is full.
func (rw *ReadWriter) Write(p []byte) (int, error) {
	if len(p) > rw.bw.Available() {
		rw.armDeadline()
	}
	return rw.bw.Write(p)
}

// WriteString is the string form of Write.
func (rw *ReadWriter) WriteString(s string) (int, error) {
	if len(s) > rw.bw.Available() {
		rw.armDeadline()
	}
	return rw.bw.WriteString(s)
}

// Flush writes any buffered commands to the connection.
func (rw *ReadWriter) Flush() error {
	if rw.bw.Buffered() == 0 {
		return nil
	}
	rw.armDeadline()
	return rw.bw.Flush()
}

func (rw *ReadWriter) armDeadline() {
	if rw.writeTimeout > 0 {
		_ = rw.c.SetWriteDeadline(time.Now().Add(rw.writeTimeout))
	}
}
