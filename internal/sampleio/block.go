package sampleio

import (
	"bufio"
	"io"
)

// DefaultBlockBytes is the transfer size one read aims for. A single
// group larger than this still moves in one piece; alignment beats the
// byte target.
const DefaultBlockBytes = 4096

// GroupsPerBlock returns how many q-element groups of the given element
// width fit a default transfer.
func GroupsPerBlock(elemBytes, q int) int {
	groupBytes := elemBytes * q
	if groupBytes > DefaultBlockBytes {
		return 1
	}
	return DefaultBlockBytes / groupBytes
}

// BlockReader decodes raw little-endian elements in groups of q so that
// every delivered block satisfies the resampler's len(input) % q == 0
// contract. A short final read shrinks to the largest whole-group count;
// a leftover shorter than one group carries no complete signal span and
// is discarded.
type BlockReader[E any] struct {
	r     io.Reader
	codec Codec[E]
	q     int
	buf   []byte
	done  bool
}

// NewBlockReader builds a reader delivering up to groups q-element
// groups per call.
func NewBlockReader[E any](r io.Reader, codec Codec[E], q, groups int) *BlockReader[E] {
	return &BlockReader[E]{
		r:     r,
		codec: codec,
		q:     q,
		buf:   make([]byte, groups*q*codec.Size),
	}
}

// Read fills dst with whole groups, bounded by the reader's block
// capacity and len(dst). It returns the decoded element count, always a
// multiple of q, and io.EOF once the stream holds no further whole
// group.
func (br *BlockReader[E]) Read(dst []E) (int, error) {
	if br.done {
		return 0, io.EOF
	}

	groupBytes := br.q * br.codec.Size
	nGroups := min(len(dst)/br.q, len(br.buf)/groupBytes)
	if nGroups == 0 {
		return 0, io.ErrShortBuffer
	}
	want := nGroups * groupBytes

	n, err := io.ReadFull(br.r, br.buf[:want])
	switch err {
	case nil:
	case io.ErrUnexpectedEOF, io.EOF:
		br.done = true
		n -= n % groupBytes
		if n == 0 {
			return 0, io.EOF
		}
	default:
		return 0, err
	}

	elems := n / br.codec.Size
	for i := range elems {
		dst[i] = br.codec.Get(br.buf[i*br.codec.Size:])
	}
	return elems, nil
}

// BlockWriter encodes elements to their raw little-endian form through a
// buffered writer.
type BlockWriter[E any] struct {
	w     *bufio.Writer
	codec Codec[E]
	buf   []byte
}

// NewBlockWriter builds a writer around w.
func NewBlockWriter[E any](w io.Writer, codec Codec[E]) *BlockWriter[E] {
	return &BlockWriter[E]{
		w:     bufio.NewWriter(w),
		codec: codec,
	}
}

// Write encodes and buffers all of src.
func (bw *BlockWriter[E]) Write(src []E) error {
	need := len(src) * bw.codec.Size
	if cap(bw.buf) < need {
		bw.buf = make([]byte, need)
	}
	b := bw.buf[:need]
	for i, v := range src {
		bw.codec.Put(b[i*bw.codec.Size:], v)
	}

	_, err := bw.w.Write(b)
	return err
}

// Flush drains the underlying buffer. Call once after the last Write.
func (bw *BlockWriter[E]) Flush() error {
	return bw.w.Flush()
}
