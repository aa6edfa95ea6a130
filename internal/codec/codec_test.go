package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader(CurrentVersion))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	v, err := r.ReadHeader()
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, v)
}

func TestBadMagicIsFormatError(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0})
	r := NewReader(buf)
	_, err := r.ReadHeader()
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindFormat, ce.Kind)
}

func TestVersionCompatibility(t *testing.T) {
	want := Version{Major: 1, Minor: 2, Patch: 0}
	require.True(t, want.Compatible(Version{Major: 1, Minor: 0, Patch: 9}))
	require.True(t, want.Compatible(Version{Major: 1, Minor: 2, Patch: 0}))
	require.False(t, want.Compatible(Version{Major: 1, Minor: 3, Patch: 0}))
	require.False(t, want.Compatible(Version{Major: 2, Minor: 0, Patch: 0}))
}

func TestStringInterningReusesCacheID(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteString("stone"))
	require.NoError(t, w.WriteString("stone"))
	require.NoError(t, w.WriteString("dirt"))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	s1, err := r.ReadString()
	require.NoError(t, err)
	s2, err := r.ReadString()
	require.NoError(t, err)
	s3, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "stone", s1)
	require.Equal(t, "stone", s2)
	require.Equal(t, "dirt", s3)
}

func TestObjectFieldSkipAndFind(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	fields := []FieldWriter{
		{Name: "a", Body: func(w *Writer) error { return w.WriteI32(1) }},
		{Name: "b", Body: func(w *Writer) error { return w.WriteI32(2) }},
		{Name: "c", Body: func(w *Writer) error { return w.WriteI32(3) }},
	}
	require.NoError(t, w.WriteObject(fields))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	hdr, err := r.BeginObject()
	require.NoError(t, err)
	require.True(t, hdr.HasField("b"))
	require.False(t, hdr.HasField("z"))

	found, err := r.FindField(hdr, "c")
	require.NoError(t, err)
	require.True(t, found)
}

func TestArrayWriteThenSkip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	values := []int32{10, 20, 30}
	require.NoError(t, w.WriteArray(TagI32, len(values), func(w *Writer, i int) error {
		return w.WriteI32(values[i])
	}))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	require.NoError(t, r.SkipValue())
}

func TestSchemaRegistryRejectsOlderReregistration(t *testing.T) {
	reg := NewSchemaRegistry()
	require.NoError(t, reg.Register(Schema{Name: "Chunk", Version: Version{Major: 1, Minor: 1}}))
	err := reg.Register(Schema{Name: "Chunk", Version: Version{Major: 1, Minor: 0}})
	require.Error(t, err)
	require.NoError(t, reg.Register(Schema{Name: "Chunk", Version: Version{Major: 1, Minor: 2}}))
}

func TestSchemaCompatibleWith(t *testing.T) {
	reg := NewSchemaRegistry()
	require.NoError(t, reg.Register(Schema{Name: "Chunk", Version: Version{Major: 1, Minor: 2}}))
	ok, err := reg.CompatibleWith("Chunk", Version{Major: 1, Minor: 0})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = reg.CompatibleWith("Unknown", Version{})
	require.Error(t, err)
}
