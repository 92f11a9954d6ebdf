package gcdgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobKey(t *testing.T) {
	jobs := []Job{
		{Length: 0, AllIntegers: true},
		{Length: 6, AllIntegers: true},
		{Values: []int{}, Length: 0},
		{Values: []int{2, -3, 0, math.MaxInt, math.MinInt}, Length: 5},
	}
	for _, job := range jobs {
		key := job.AppendJobKey(nil)
		dec, err := DecodeJobKey(key)
		require.NoError(t, err)
		require.Equal(t, job.AllIntegers, dec.AllIntegers)
		require.Equal(t, job.Length, dec.Length)
		require.Equal(t, job.AppendJobKey(nil), dec.AppendJobKey(nil))
	}

	// explicit and range jobs over the same values are distinct keys
	A := Job{Length: 3, AllIntegers: true}
	V := Job{Values: []int{1, 2, 3}, Length: 3}
	require.NotEqual(t, A.AppendJobKey(nil), V.AppendJobKey(nil))

	// values past Length do not contribute
	V2 := Job{Values: []int{1, 2, 3, 4}, Length: 3}
	require.Equal(t, V.AppendJobKey(nil), V2.AppendJobKey(nil))
}

func TestDecodeJobKeyErrors(t *testing.T) {
	_, err := DecodeJobKey(nil)
	require.ErrorIs(t, err, ErrBadJobKey)

	_, err = DecodeJobKey([]byte{'X', 1})
	require.ErrorIs(t, err, ErrBadJobKey)

	// claims two values but carries one
	_, err = DecodeJobKey([]byte{'V', 2, 4})
	require.ErrorIs(t, err, ErrBadJobKey)
}

func TestCatalogContextClose(t *testing.T) {
	ctx := NewCatalogContext()
	ctx.Close()
	ctx.Close()
	<-ctx.Done()
}

// ctxCatalog detaches itself from its context when closed, as a real Catalog does.
type ctxCatalog struct {
	mapCatalog
	ctx    CatalogContext
	closed chan struct{}
}

func (cat *ctxCatalog) Close() error {
	close(cat.closed)
	cat.ctx.DetachCatalog(cat)
	return nil
}

func TestCatalogContextWaitsForCatalogs(t *testing.T) {
	ctx := NewCatalogContext()
	cats := make([]*ctxCatalog, 3)
	for i := range cats {
		cats[i] = &ctxCatalog{ctx: ctx, closed: make(chan struct{})}
		ctx.AttachCatalog(cats[i])
	}

	// a catalog closed by its owner no longer holds up the context
	require.NoError(t, cats[0].Close())

	select {
	case <-ctx.Done():
		t.Fatal("done before Close")
	default:
	}

	ctx.Close()
	<-ctx.Done()
	for _, cat := range cats[1:] {
		<-cat.closed
	}
}

func TestJobValidate(t *testing.T) {
	require.NoError(t, (&Job{Values: []int{2, 4}, Length: 2}).Validate())
	require.NoError(t, (&Job{Values: []int{2, 4}, Length: 0}).Validate())
	require.NoError(t, (&Job{Length: MaxLength, AllIntegers: true}).Validate())

	require.ErrorIs(t, (&Job{Values: []int{2, 4}, Length: 3}).Validate(), ErrInvalidLength)
	require.ErrorIs(t, (&Job{Values: []int{2, 4}, Length: -1}).Validate(), ErrInvalidLength)
	require.ErrorIs(t, (&Job{Length: -1, AllIntegers: true}).Validate(), ErrInvalidLength)
	require.ErrorIs(t, (&Job{Length: MaxLength + 1, AllIntegers: true}).Validate(), ErrInvalidLength)
}
