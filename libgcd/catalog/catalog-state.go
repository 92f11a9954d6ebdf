package catalog

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

const (
	kMajorVers = 2026
	kMinorVers = 1
)

// CatalogState is the catalog's header record, stored under gCatalogStateKey.
// It is encoded as proto3 varint fields 1..3 so older readers skip fields they don't know.
type CatalogState struct {
	MajorVers  int32
	MinorVers  int32
	NumEntries int64
}

const (
	fieldMajorVers  = 1
	fieldMinorVers  = 2
	fieldNumEntries = 3

	wireVarint = 0
)

func (m *CatalogState) String() string {
	return fmt.Sprintf("v%d.%d (%d entries)", m.MajorVers, m.MinorVers, m.NumEntries)
}

// Marshal encodes non-zero fields in field order.
func (m *CatalogState) Marshal() ([]byte, error) {
	fields := [...]struct {
		num uint64
		val uint64
	}{
		{fieldMajorVers, uint64(int64(m.MajorVers))},
		{fieldMinorVers, uint64(int64(m.MinorVers))},
		{fieldNumEntries, uint64(m.NumEntries)},
	}

	buf := make([]byte, 0, 32)
	for _, field := range fields {
		if field.val == 0 {
			continue
		}
		buf = append(buf, proto.EncodeVarint(field.num<<3|wireVarint)...)
		buf = append(buf, proto.EncodeVarint(field.val)...)
	}
	return buf, nil
}

// Unmarshal resets m and decodes buf, skipping unknown varint fields.
func (m *CatalogState) Unmarshal(buf []byte) error {
	*m = CatalogState{}

	for len(buf) > 0 {
		tag, n := proto.DecodeVarint(buf)
		if n == 0 {
			return errors.New("catalog state: truncated tag")
		}
		buf = buf[n:]
		if tag&7 != wireVarint {
			return errors.Errorf("catalog state: unsupported wire type %d", tag&7)
		}
		val, n := proto.DecodeVarint(buf)
		if n == 0 {
			return errors.New("catalog state: truncated value")
		}
		buf = buf[n:]

		switch tag >> 3 {
		case fieldMajorVers:
			m.MajorVers = int32(val)
		case fieldMinorVers:
			m.MinorVers = int32(val)
		case fieldNumEntries:
			m.NumEntries = int64(val)
		}
	}
	return nil
}
