package libgcd

import (
	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/dgraph-io/badger/v3"
	"github.com/plan-systems/klog"
)

// NewJobSet returns a gcdgraph.JobSet keyed by gcdgraph.Job.AppendJobKey.
// Keys live in an in-memory badger LSM opened on the first TryAdd, so long streams of large jobs
// don't pin every key on the Go heap.
func NewJobSet() gcdgraph.JobSet {
	return &jobSet{}
}

type jobSet struct {
	db      *badger.DB
	openErr error
	key     []byte
}

func (js *jobSet) open() error {
	if js.db != nil || js.openErr != nil {
		return js.openErr
	}
	dbOpts := badger.DefaultOptions("").WithInMemory(true)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	js.db, js.openErr = badger.Open(dbOpts)
	if js.openErr != nil {
		klog.Warningf("job set unavailable, duplicates will pass: %v", js.openErr)
	}
	return js.openErr
}

// TryAdd reports true for a job whose key is new; if the set is unusable every job is reported new.
func (js *jobSet) TryAdd(job *gcdgraph.Job) bool {
	if js.open() != nil {
		return true
	}

	js.key = job.AppendJobKey(js.key[:0])
	isNew := false
	err := js.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(js.key)
		if err != badger.ErrKeyNotFound {
			return err
		}
		isNew = true
		return txn.Set(js.key, nil)
	})
	if err != nil {
		klog.Warningf("job set add failed for %q: %v", job.Label, err)
		return true
	}
	return isNew
}

func (js *jobSet) Close() {
	if js.db == nil {
		return
	}
	if err := js.db.Close(); err != nil {
		klog.Warningf("job set close: %v", err)
	}
	js.db = nil
}
