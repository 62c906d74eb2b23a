package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ============== 测试消息类型 ==============

type command interface {
	Kinded
	isCommand()
}

type addOne struct{}

func (addOne) Kind() string { return "add_one" }
func (addOne) isCommand()   {}

type setValue struct {
	Value int    `json:"value" yaml:"value"`
	Note  string `json:"note,omitempty" yaml:"note,omitempty"`
}

func (setValue) Kind() string { return "set_value" }
func (setValue) isCommand()   {}

type rename struct {
	Name string `json:"name"`
}

func (*rename) Kind() string { return "rename" }
func (*rename) isCommand()   {}

type unregistered struct{}

func (unregistered) Kind() string { return "unregistered" }
func (unregistered) isCommand()   {}

// ============== JSON ==============

func TestJSONRoundTrip(t *testing.T) {
	c := JSON[setValue]()
	assert.Equal(t, "json", c.Name())

	in := setValue{Value: 42, Note: "answer"}
	data, err := c.Encode(in)
	require.NoError(t, err)

	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestJSONDecodeErrors(t *testing.T) {
	c := JSON[setValue]()

	_, err := c.Decode(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCodec))
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = c.Decode([]byte("{not json"))
	require.Error(t, err)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "json", cerr.Codec)
	assert.Equal(t, OpDecode, cerr.Op)
	assert.Equal(t, "codec.setValue", cerr.Type)
}

func TestJSONEncodeError(t *testing.T) {
	c := JSON[chan int]()
	_, err := c.Encode(make(chan int))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCodec))
}

// ============== Union ==============

func TestUnionRoundTrip(t *testing.T) {
	u := NewUnion[command](addOne{}, setValue{}, &rename{})
	assert.Equal(t, 3, u.Kinds())

	tests := []struct {
		name string
		in   command
	}{
		{"empty struct", addOne{}},
		{"value variant", setValue{Value: 7, Note: "seven"}},
		{"pointer variant", &rename{Name: "counter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := u.Encode(tt.in)
			require.NoError(t, err)

			out, err := u.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.in, out)
		})
	}
}

func TestUnionWireFormat(t *testing.T) {
	u := NewUnion[command](setValue{})
	data, err := u.Encode(setValue{Value: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"set_value","data":{"value":1}}`, string(data))
}

func TestUnionUnknownKind(t *testing.T) {
	u := NewUnion[command](addOne{})

	_, err := u.Encode(unregistered{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = u.Decode([]byte(`{"kind":"unregistered"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.True(t, errors.Is(err, ErrCodec))
}

func TestUnionRejectsMismatchedShape(t *testing.T) {
	u := NewUnion[command](addOne{}, setValue{}, &rename{})

	_, err := u.Encode(&addOne{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVariantType))
	assert.True(t, errors.Is(err, ErrCodec))

	_, err = u.Encode(&setValue{Value: 1})
	assert.True(t, errors.Is(err, ErrVariantType))

	// 与原型同形态的值照常往返
	data, err := u.Encode(addOne{})
	require.NoError(t, err)
	out, err := u.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, command(addOne{}), out)
}

func TestUnionMalformed(t *testing.T) {
	u := NewUnion[command](setValue{})

	_, err := u.Decode(nil)
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = u.Decode([]byte("garbage"))
	assert.True(t, errors.Is(err, ErrCodec))

	_, err = u.Decode([]byte(`{"kind":"set_value","data":{"value":"nan"}}`))
	assert.True(t, errors.Is(err, ErrCodec))
}

func TestUnionNilValue(t *testing.T) {
	u := NewUnion[command](addOne{})
	var nilCmd command
	_, err := u.Encode(nilCmd)
	assert.True(t, errors.Is(err, ErrCodec))
}

func TestUnionDuplicateKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewUnion[command](addOne{}, addOne{})
	})
}

// ============== YAML ==============

func TestYAMLRoundTrip(t *testing.T) {
	c := YAML[setValue]()
	assert.Equal(t, "yaml", c.Name())

	in := setValue{Value: 3, Note: "three"}
	data, err := c.Encode(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "value: 3")

	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = c.Decode([]byte("value: [unterminated"))
	assert.True(t, errors.Is(err, ErrCodec))

	_, err = c.Decode(nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

// ============== Proto ==============

func TestProtoRoundTrip(t *testing.T) {
	c := Proto[*wrapperspb.StringValue]()
	assert.Equal(t, "proto", c.Name())

	in := wrapperspb.String("hello")
	data, err := c.Encode(in)
	require.NoError(t, err)

	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.True(t, proto.Equal(in, out))
	assert.Equal(t, "hello", out.GetValue())
}

func TestProtoDefaultMessage(t *testing.T) {
	c := Proto[*wrapperspb.Int64Value]()

	data, err := c.Encode(wrapperspb.Int64(0))
	require.NoError(t, err)
	assert.Empty(t, data)

	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.GetValue())
}

func TestProtoMalformed(t *testing.T) {
	c := Proto[*wrapperspb.StringValue]()
	_, err := c.Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCodec))
}
