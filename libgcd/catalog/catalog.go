package catalog

import (
	"runtime"
	"sync"

	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState (proto)

	gResultPrefix, JobKey => Size (varint)

JobKey is gcdgraph.Job.AppendJobKey(), so a catalog can be walked in key order and each job reconstructed.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gResultPrefix    = []byte{0x01}
)

// catalog is a badger wrapper that memoizes largest component results.
type catalog struct {
	ctx      gcdgraph.CatalogContext
	readOnly bool

	mu         sync.Mutex
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

func OpenCatalog(ctx gcdgraph.CatalogContext, opts gcdgraph.CatalogOpts) (gcdgraph.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gcdgraph.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(gcdgraph.ErrCatalogVersion, "found v%d.%d", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened catalog %q (%d entries, read-only=%v)", opts.DbPathName, cat.state.NumEntries, cat.readOnly)
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumEntries() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.state.NumEntries
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

// flushState writes the state record if it changed; cat.mu must be held.
func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.readOnly {
		return nil
	}

	buf, err := cat.state.Marshal()
	if err != nil {
		return err
	}
	err = cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, buf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func resultKey(job *gcdgraph.Job) []byte {
	var scrap [64]byte
	return job.AppendJobKey(append(scrap[:0], gResultPrefix...))
}

// Lookup reports a miss once the catalog is closed.
func (cat *catalog) Lookup(job *gcdgraph.Job) (int, bool) {
	key := resultKey(job)
	size := 0
	found := false

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return 0, false
	}

	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			x, n := proto.DecodeVarint(val)
			if n == 0 {
				return gcdgraph.ErrBadJobKey
			}
			size, found = int(x), true
			return nil
		})
	})
	if err != nil && err != badger.ErrKeyNotFound {
		klog.Warningf("catalog lookup failed: %v", err)
	}
	return size, found
}

func (cat *catalog) TryAddResult(res *gcdgraph.Result) bool {
	if cat.readOnly || res.Err != nil {
		return false
	}

	key := resultKey(&res.Job)
	added := false

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return false
	}

	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, proto.EncodeVarint(uint64(res.Size)))
	})
	if err != nil {
		klog.Warningf("catalog add failed: %v", err)
		return false
	}
	if added {
		cat.state.NumEntries++
		cat.stateDirty = true
	}
	return added
}

// Select reads all stored results under cat.mu and sends them afterwards,
// so a downstream stage may add to this same catalog.
func (cat *catalog) Select(onHit gcdgraph.OnResult) {
	var hits []*gcdgraph.Result

	cat.mu.Lock()
	var err error
	if cat.db != nil {
		err = cat.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			for it.Seek(gResultPrefix); it.ValidForPrefix(gResultPrefix); it.Next() {
				item := it.Item()
				job, err := gcdgraph.DecodeJobKey(item.Key()[len(gResultPrefix):])
				if err != nil {
					return err
				}
				res := &gcdgraph.Result{
					Job:    job,
					Cached: true,
				}
				err = item.Value(func(val []byte) error {
					x, _ := proto.DecodeVarint(val)
					res.Size = int(x)
					return nil
				})
				if err != nil {
					return err
				}
				hits = append(hits, res)
			}
			return nil
		})
	}
	cat.mu.Unlock()

	if err != nil {
		klog.Warningf("catalog select failed: %v", err)
	}
	for _, res := range hits {
		onHit <- res
	}
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	if cat.db == nil {
		cat.mu.Unlock()
		return nil
	}

	err := cat.flushState()
	if dbErr := cat.db.Close(); err == nil {
		err = dbErr
	}
	cat.db = nil
	cat.mu.Unlock()

	cat.ctx.DetachCatalog(cat)
	return err
}
