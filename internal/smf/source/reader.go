package source

import (
	"bytes"
	"io"

	smferrors "github.com/alxayo/smf-go/internal/errors"
)

// resettable is satisfied by readers that can return to their start, such
// as an *io.SectionReader or the in-memory reader FromBytes constructs.
// ReaderSource detects this structurally instead of requiring a capability
// flag from the caller.
type resettable interface {
	Seek(offset int64, whence int) (int64, error)
}

// ReaderSource wraps an arbitrary io.Reader. Skip is simulated via bounded
// reads and Rewind only succeeds when the wrapped reader also implements
// io.Seeker (resettable). A running byte counter enforces the same 1 GiB
// cap FileSource enforces against Stat-cached length.
type ReaderSource struct {
	stateTracker
	r      io.Reader
	orig   io.Reader // preserved for rewind when r is a resettable
	read   int64
	closer io.Closer
}

// NewReaderSource wraps r. If r also implements io.Closer, Close delegates
// to it.
func NewReaderSource(r io.Reader) *ReaderSource {
	rs := &ReaderSource{r: r, orig: r}
	if c, ok := r.(io.Closer); ok {
		rs.closer = c
	}
	return rs
}

// FromBytes builds an in-memory Source over b. It is always rewindable and
// seekable, matching spec.md §9's "byte reader + optional capabilities"
// description for embedders who already hold the file in memory.
func FromBytes(b []byte) Source {
	return NewReaderSource(bytes.NewReader(b))
}

func (s *ReaderSource) ReadByte() (byte, error) {
	if shortCircuit, err := s.guard(true); shortCircuit {
		return 0, err
	}

	var buf [1]byte
	n, err := s.r.Read(buf[:])
	if n == 1 {
		s.read++
	}
	if err == io.EOF || (err == nil && n == 0) {
		s.onReadEOF()
		return 0, io.EOF
	}
	if err != nil {
		s.onReadFail()
		return 0, smferrors.New("source.ReaderSource.ReadByte", smferrors.CodeIO, err)
	}
	if s.read > MaxAddressable {
		s.onReadFail()
		return 0, smferrors.New("source.ReaderSource.ReadByte", smferrors.CodeHugeFile, nil)
	}
	return buf[0], nil
}

func (s *ReaderSource) Skip(n int64) error {
	if shortCircuit, err := s.guard(false); shortCircuit {
		return err
	}
	if n < 0 {
		s.onSkipFail()
		return smferrors.New("source.ReaderSource.Skip", smferrors.CodeIO, nil)
	}

	var buf [4096]byte
	remaining := n
	for remaining > 0 {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		got, err := io.ReadFull(s.r, buf[:chunk])
		s.read += int64(got)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.onReadEOF()
			return nil // clamp: caller's next read sees EOF
		}
		if err != nil {
			s.onSkipFail()
			return smferrors.New("source.ReaderSource.Skip", smferrors.CodeIO, err)
		}
		remaining -= chunk
	}
	return nil
}

func (s *ReaderSource) Rewind() error {
	if s.get() == DoubleError {
		return smferrors.New("source.ReaderSource.Rewind", smferrors.CodeIO, nil)
	}
	seeker, ok := s.orig.(resettable)
	if !ok {
		s.onRewindFail()
		return smferrors.New("source.ReaderSource.Rewind", smferrors.CodeIO, nil)
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		s.onRewindFail()
		return smferrors.New("source.ReaderSource.Rewind", smferrors.CodeIO, err)
	}
	s.r = s.orig
	s.read = 0
	s.onRewindOK()
	return nil
}

func (s *ReaderSource) CanRewind() bool {
	if s.get() == DoubleError {
		return false
	}
	_, ok := s.orig.(resettable)
	return ok
}

func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
