package source

import (
	"io"
	"os"

	smferrors "github.com/alxayo/smf-go/internal/errors"
)

// FileSource wraps an *os.File. Length is cached via Stat when the file is
// seekable, and the hard 1 GiB cap is enforced against that cached length
// rather than re-stat'ing on every read.
type FileSource struct {
	stateTracker
	f        *os.File
	pos      int64
	length   int64
	seekable bool
	closed   bool
}

// NewFromPath opens path and wraps it in a FileSource. This is the "thin
// adapter" spec.md §1 calls out — it does not format errors for display,
// that is the CLI's job.
func NewFromPath(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, smferrors.New("source.NewFromPath", smferrors.CodeOpenFile, err)
	}
	return NewFileSource(f)
}

// NewFileSource wraps an already-open file. Ownership of f passes to the
// returned Source; Close closes f.
func NewFileSource(f *os.File) (*FileSource, error) {
	fs := &FileSource{f: f}
	if info, err := f.Stat(); err == nil {
		if pos, err := f.Seek(0, io.SeekCurrent); err == nil {
			fs.seekable = true
			fs.pos = pos
			fs.length = info.Size()
		}
	}
	if fs.seekable && fs.length > MaxAddressable {
		_ = f.Close()
		return nil, smferrors.New("source.NewFileSource", smferrors.CodeHugeFile, nil)
	}
	return fs, nil
}

func (s *FileSource) ReadByte() (byte, error) {
	if shortCircuit, err := s.guard(true); shortCircuit {
		return 0, err
	}

	var buf [1]byte
	n, err := s.f.Read(buf[:])
	if n == 1 {
		s.pos++
	}
	if err == io.EOF || (err == nil && n == 0) {
		s.onReadEOF()
		return 0, io.EOF
	}
	if err != nil {
		s.onReadFail()
		return 0, smferrors.New("source.FileSource.ReadByte", smferrors.CodeIO, err)
	}
	if s.pos > MaxAddressable {
		s.onReadFail()
		return 0, smferrors.New("source.FileSource.ReadByte", smferrors.CodeHugeFile, nil)
	}
	return buf[0], nil
}

func (s *FileSource) Skip(n int64) error {
	if shortCircuit, err := s.guard(false); shortCircuit {
		return err
	}
	if n < 0 {
		s.onSkipFail()
		return smferrors.New("source.FileSource.Skip", smferrors.CodeIO, nil)
	}
	if n == 0 {
		return nil
	}

	if s.seekable {
		target := s.pos + n
		if target > s.length {
			target = s.length // clamp so next read yields EOF
		}
		newPos, err := s.f.Seek(target, io.SeekStart)
		if err != nil {
			s.onSkipFail()
			return smferrors.New("source.FileSource.Skip", smferrors.CodeIO, err)
		}
		s.pos = newPos
		return nil
	}

	// Non-seekable fallback: simulate via bounded reads.
	var buf [4096]byte
	remaining := n
	for remaining > 0 {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		read, err := io.ReadFull(s.f, buf[:chunk])
		s.pos += int64(read)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.onReadEOF()
			return nil // clamp: caller's next read sees EOF
		}
		if err != nil {
			s.onSkipFail()
			return smferrors.New("source.FileSource.Skip", smferrors.CodeIO, err)
		}
		remaining -= chunk
	}
	return nil
}

func (s *FileSource) Rewind() error {
	if s.get() == DoubleError {
		return smferrors.New("source.FileSource.Rewind", smferrors.CodeIO, nil)
	}
	if !s.seekable {
		s.onRewindFail()
		return smferrors.New("source.FileSource.Rewind", smferrors.CodeIO, nil)
	}
	newPos, err := s.f.Seek(0, io.SeekStart)
	if err != nil {
		s.onRewindFail()
		return smferrors.New("source.FileSource.Rewind", smferrors.CodeIO, err)
	}
	s.pos = newPos
	s.onRewindOK()
	return nil
}

func (s *FileSource) CanRewind() bool { return s.seekable && s.get() != DoubleError }

func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
