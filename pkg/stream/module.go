// Package stream implements a little-endian binary stream over either a file
// or a block of memory, with absolute seeking and relative skipping.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

type Mode int

const (
	Read Mode = iota
	Write
)

var (
	ErrNotOpen  = errors.New("stream is not open")
	ErrReadOnly = errors.New("stream is read-only")
)

// Stream is not safe for concurrent use. Writing to a stream that is closed
// or opened for reading is a programming error and panics.
type Stream struct {
	file *os.File
	data []byte
	pos  int64
	mode Mode
	open bool
}

// Open opens the file at path. Write mode creates or truncates the file.
func Open(path string, mode Mode) (*Stream, error) {
	var (
		file *os.File
		err  error
	)

	switch mode {
	case Read:
		file, err = os.Open(path)
	case Write:
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	default:
		return nil, fmt.Errorf("invalid stream mode %d", mode)
	}

	if err != nil {
		return nil, err
	}

	return &Stream{
		file: file,
		mode: mode,
		open: true,
	}, nil
}

// FromBytes wraps a caller-owned block of memory for reading. The block is
// not copied.
func FromBytes(data []byte) *Stream {
	return &Stream{
		data: data,
		mode: Read,
		open: true,
	}
}

// NewBuffer returns a writable stream backed by a growable block of memory.
func NewBuffer() *Stream {
	return &Stream{
		data: make([]byte, 0, 4096),
		mode: Write,
		open: true,
	}
}

func (s *Stream) IsOpen() bool {
	return s.open
}

func (s *Stream) Mode() Mode {
	return s.mode
}

func (s *Stream) Close() error {
	if !s.open {
		return nil
	}

	s.open = false

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}

	return nil
}

// Bytes returns the contents of a memory stream. It returns nil for file
// streams.
func (s *Stream) Bytes() []byte {
	if s.file != nil {
		return nil
	}
	return s.data
}

func (s *Stream) Pos() int64 {
	s.mustBeOpen()
	return s.pos
}

func (s *Stream) Size() (int64, error) {
	s.mustBeOpen()

	if s.file == nil {
		return int64(len(s.data)), nil
	}

	info, err := s.file.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	s.mustBeOpen()

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.pos + offset
	case io.SeekEnd:
		size, err := s.Size()
		if err != nil {
			return s.pos, err
		}
		target = size + offset
	default:
		return s.pos, fmt.Errorf("invalid whence %d", whence)
	}

	if target < 0 {
		return s.pos, fmt.Errorf("seek to negative position %d", target)
	}

	s.pos = target
	return s.pos, nil
}

// Skip moves the cursor by delta bytes relative to the current position.
func (s *Stream) Skip(delta int64) error {
	_, err := s.Seek(delta, io.SeekCurrent)
	return err
}

func (s *Stream) Write(p []byte) (int, error) {
	s.mustBeWritable()

	if s.file != nil {
		n, err := s.file.WriteAt(p, s.pos)
		s.pos += int64(n)
		return n, err
	}

	end := s.pos + int64(len(p))
	if end > int64(len(s.data)) {
		if end > int64(cap(s.data)) {
			grown := make([]byte, end, 2*end)
			copy(grown, s.data)
			s.data = grown
		} else {
			s.data = s.data[:end]
		}
	}

	n := copy(s.data[s.pos:], p)
	s.pos += int64(n)
	return n, nil
}

func (s *Stream) WriteByte(b byte) error {
	_, err := s.Write([]byte{b})
	return err
}

// Fill writes count copies of value.
func (s *Stream) Fill(value byte, count int) error {
	if count <= 0 {
		s.mustBeWritable()
		return nil
	}

	buf := make([]byte, count)
	if value != 0 {
		for i := range buf {
			buf[i] = value
		}
	}

	_, err := s.Write(buf)
	return err
}

func (s *Stream) WriteUint16(value uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	_, err := s.Write(buf[:])
	return err
}

func (s *Stream) WriteInt16(value int16) error {
	return s.WriteUint16(uint16(value))
}

func (s *Stream) WriteUint32(value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	_, err := s.Write(buf[:])
	return err
}

// WriteCString writes value followed by a NUL byte. An empty value writes a
// single NUL byte.
func (s *Stream) WriteCString(value []byte) error {
	buf := make([]byte, len(value)+1)
	copy(buf, value)
	_, err := s.Write(buf)
	return err
}

func (s *Stream) Read(p []byte) (int, error) {
	s.mustBeOpen()

	if len(p) == 0 {
		return 0, nil
	}

	if s.file != nil {
		n, err := s.file.ReadAt(p, s.pos)
		s.pos += int64(n)
		if err == io.EOF && n > 0 {
			err = nil
		}
		return n, err
	}

	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *Stream) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *Stream) ReadUint16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(s, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func (s *Stream) ReadInt16() (int16, error) {
	value, err := s.ReadUint16()
	return int16(value), err
}

func (s *Stream) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadCString reads bytes up to and excluding the next NUL byte.
func (s *Stream) ReadCString() ([]byte, error) {
	value := make([]byte, 0, 32)
	for {
		b, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return value, nil
		}
		value = append(value, b)
	}
}

func (s *Stream) mustBeOpen() {
	if !s.open {
		panic(ErrNotOpen)
	}
}

func (s *Stream) mustBeWritable() {
	s.mustBeOpen()
	if s.mode != Write {
		panic(ErrReadOnly)
	}
}

var _ io.ReadWriteSeeker = (*Stream)(nil)
var _ io.ByteReader = (*Stream)(nil)
var _ io.ByteWriter = (*Stream)(nil)
