// Package pftest provides an in-memory Pixelflut server for tests.
package pftest

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/kamrankamilli/gsflood/pkg/internal/util"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// Server is a loopback Pixelflut server backed by an RGBA canvas.
type Server struct {
	ln net.Listener

	mu        sync.Mutex
	canvas    *image.RGBA
	sizeReply string
	writes    int
	conns     int
	failNext  int
	lines     []string
	keepLines bool
	open      map[net.Conn]struct{}

	wg sync.WaitGroup
}

// NewServer starts a server with a width x height canvas. It is shut down
// when the test ends.
func NewServer(tb testing.TB, width, height int) *Server {
	tb.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("pftest: listen: %v", err)
	}
	s := &Server{
		ln:     ln,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		open:   make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	tb.Cleanup(s.Close)
	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Close stops accepting, drops every open connection and waits for the
// handlers to return.
func (s *Server) Close() {
	s.ln.Close()
	s.mu.Lock()
	for c := range s.open {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// SetSizeReply replaces the answer to SIZE with line (without newline).
func (s *Server) SetSizeReply(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizeReply = line
}

// FailNext makes the next n connections drop right after their first
// pixel write.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// RecordLines keeps every received line for Lines.
func (s *Server) RecordLines() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keepLines = true
}

// Lines returns the recorded lines in arrival order.
func (s *Server) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Writes returns the number of pixel writes received.
func (s *Server) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Conns returns the number of accepted connections.
func (s *Server) Conns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Pixel returns the canvas colour at (x, y).
func (s *Server) Pixel(x, y int) types.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.canvas.RGBAAt(x, y)
	return types.Color{R: c.R, G: c.G, B: c.B}
}

// SetPixel paints the canvas directly.
func (s *Server) SetPixel(x, y int, c types.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		s.open[c] = struct{}{}
		fail := s.failNext > 0
		if fail {
			s.failNext--
		}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(c, fail)
	}
}

func (s *Server) handle(c net.Conn, fail bool) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.open, c)
		s.mu.Unlock()
		c.Close()
	}()

	w := bufio.NewWriter(c)
	sc := bufio.NewScanner(c)
	for sc.Scan() {
		reply, wrote := s.apply(sc.Text())
		if reply != "" {
			w.WriteString(reply + "\n")
			if err := w.Flush(); err != nil {
				return
			}
		}
		if wrote && fail {
			return
		}
	}
}

// apply executes one command line and returns the reply, if any.
func (s *Server) apply(line string) (reply string, wrote bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keepLines {
		s.lines = append(s.lines, line)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	b := s.canvas.Bounds()
	switch fields[0] {
	case "SIZE":
		if s.sizeReply != "" {
			return s.sizeReply, false
		}
		return fmt.Sprintf("SIZE %d %d", b.Dx(), b.Dy()), false
	case "PX":
		if len(fields) < 3 {
			return "", false
		}
		x, errX := strconv.Atoi(fields[1])
		y, errY := strconv.Atoi(fields[2])
		if errX != nil || errY != nil {
			return "", false
		}
		if len(fields) == 3 {
			c := s.canvas.RGBAAt(x, y)
			return "PX " + fields[1] + " " + fields[2] + " " + string(util.AppendHexColor(nil, c.R, c.G, c.B)), false
		}
		col, err := types.ParseColor(fields[3])
		if err != nil {
			return "", false
		}
		s.writes++
		if (image.Point{X: x, Y: y}).In(b) {
			s.canvas.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xff})
		}
		return "", true
	}
	return "", false
}
