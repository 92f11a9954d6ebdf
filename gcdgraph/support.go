package gcdgraph

import (
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

const (
	jobKeyAllIntegers = byte('A')
	jobKeyValues      = byte('V')
)

// CheckLength returns ErrInvalidLength if length is negative or exceeds MaxLength.
func CheckLength(length int) error {
	if length < 0 {
		return errors.Wrapf(ErrInvalidLength, "length %d is negative", length)
	}
	if length > MaxLength {
		return errors.Wrapf(ErrInvalidLength, "length %d exceeds %d", length, MaxLength)
	}
	return nil
}

// Validate returns ErrInvalidLength if the Job's Length does not describe a valid input.
func (job *Job) Validate() error {
	if err := CheckLength(job.Length); err != nil {
		return err
	}
	if !job.AllIntegers && job.Length > len(job.Values) {
		return errors.Wrapf(ErrInvalidLength, "length %d exceeds the %d values given", job.Length, len(job.Values))
	}
	return nil
}

// AppendJobKey appends the canonical key of a Job to the given buffer.
//
// An AllIntegers job encodes as 'A' followed by a varint length.
// An explicit job encodes as 'V', a varint count, then each of Values[:Length] as a zigzag varint.
// Equal inputs always produce equal keys, so keys can index a Catalog or JobSet.
func (job *Job) AppendJobKey(prefix []byte) []byte {
	if job.AllIntegers {
		buf := proto.NewBuffer(append(prefix, jobKeyAllIntegers))
		buf.EncodeVarint(uint64(job.Length))
		return buf.Bytes()
	}

	nums := job.Inputs()
	buf := proto.NewBuffer(append(prefix, jobKeyValues))
	buf.EncodeVarint(uint64(len(nums)))
	for _, v := range nums {
		buf.EncodeZigzag64(uint64(v))
	}
	return buf.Bytes()
}

// DecodeJobKey reconstructs a Job from a key produced by AppendJobKey.
func DecodeJobKey(key []byte) (Job, error) {
	var job Job
	if len(key) == 0 {
		return job, ErrBadJobKey
	}

	buf := proto.NewBuffer(key[1:])
	N, err := buf.DecodeVarint()
	if err != nil {
		return job, errors.Wrap(ErrBadJobKey, err.Error())
	}
	if N > MaxLength {
		return job, errors.Wrapf(ErrBadJobKey, "length %d exceeds %d", N, MaxLength)
	}

	switch key[0] {
	case jobKeyAllIntegers:
		job.AllIntegers = true
		job.Length = int(N)
	case jobKeyValues:
		job.Values = make([]int, N)
		for i := range job.Values {
			zz, err := buf.DecodeZigzag64()
			if err != nil {
				return job, errors.Wrap(ErrBadJobKey, err.Error())
			}
			job.Values[i] = int(int64(zz))
		}
		job.Length = int(N)
	default:
		return job, errors.Wrapf(ErrBadJobKey, "unknown key kind %q", key[0])
	}
	return job, nil
}

// NewCatalogContext returns a CatalogContext whose Done channel closes once Close has been called
// and every attached Catalog has detached.
func NewCatalogContext() CatalogContext {
	return &catalogSet{
		open: make(map[Catalog]struct{}),
		done: make(chan struct{}),
	}
}

type catalogSet struct {
	mu      sync.Mutex
	open    map[Catalog]struct{}
	closing bool
	done    chan struct{}
}

func (cs *catalogSet) AttachCatalog(cat Catalog) {
	cs.mu.Lock()
	cs.open[cat] = struct{}{}
	cs.mu.Unlock()
}

func (cs *catalogSet) DetachCatalog(cat Catalog) {
	cs.mu.Lock()
	delete(cs.open, cat)
	cs.signalIfDrained()
	cs.mu.Unlock()
}

// signalIfDrained closes done once closing with nothing left open; cs.mu must be held.
func (cs *catalogSet) signalIfDrained() {
	if !cs.closing || len(cs.open) > 0 {
		return
	}
	select {
	case <-cs.done:
	default:
		close(cs.done)
	}
}

func (cs *catalogSet) Done() <-chan struct{} {
	return cs.done
}

// Close asks every attached Catalog to close; each one signals back via DetachCatalog.
func (cs *catalogSet) Close() {
	cs.mu.Lock()
	if cs.closing {
		cs.mu.Unlock()
		return
	}
	cs.closing = true
	pending := make([]Catalog, 0, len(cs.open))
	for cat := range cs.open {
		pending = append(pending, cat)
	}
	cs.signalIfDrained()
	cs.mu.Unlock()

	for _, cat := range pending {
		go func(cat Catalog) {
			if err := cat.Close(); err != nil {
				klog.Warningf("closing catalog: %v", err)
			}
		}(cat)
	}
}
