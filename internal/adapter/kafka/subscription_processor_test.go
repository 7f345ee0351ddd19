package kafka

import (
	"testing"

	"github.com/lovoo/goka"
	"github.com/niksmo/swimstore/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSerde struct {
	mock.Mock
}

func (m *MockSerde) Encode(v any) ([]byte, error) {
	args := m.Called(v)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockSerde) Decode(b []byte, v any) error {
	args := m.Called(b, v)
	return args.Error(0)
}

// gokaContext lets the fake embed the interface without the embedded
// field name colliding with the Context() method.
type gokaContext = goka.Context

type fakeGokaContext struct {
	gokaContext
	value any
}

func (c *fakeGokaContext) SetValue(v any, _ ...goka.ContextOption) {
	c.value = v
}

func TestActiveValueCodec(t *testing.T) {
	t.Run("EncodeDecode", func(t *testing.T) {
		codec := activeValueCodec{}

		data, err := codec.Encode(activeValue(true))
		require.NoError(t, err)
		assert.Equal(t, "true", string(data))

		v, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, activeValue(true), v)
	})

	t.Run("EncodeInvalidValueType", func(t *testing.T) {
		codec := activeValueCodec{}

		_, err := codec.Encode("true")
		require.ErrorIs(t, err, ErrInvalidValueType)
	})

	t.Run("DecodeInvalidData", func(t *testing.T) {
		codec := activeValueCodec{}

		_, err := codec.Decode([]byte("not-a-bool"))
		require.Error(t, err)
	})
}

func TestSubscriptionEventCodec(t *testing.T) {
	t.Run("EncodeInvalidValueType", func(t *testing.T) {
		serde := &MockSerde{}
		codec := newSubscriptionEventCodec(serde)

		_, err := codec.Encode(42)
		require.ErrorIs(t, err, ErrInvalidValueType)
		serde.AssertNotCalled(t, "Encode", mock.Anything)
	})

	t.Run("EncodeDelegatesToSerde", func(t *testing.T) {
		serde := &MockSerde{}
		codec := newSubscriptionEventCodec(serde)

		event := schema.SubscriptionEventV1{Username: "marina", Active: true}
		serde.On("Encode", event).Return([]byte("payload"), nil)

		data, err := codec.Encode(event)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
		serde.AssertExpectations(t)
	})

	t.Run("DecodeDelegatesToSerde", func(t *testing.T) {
		serde := &MockSerde{}
		codec := newSubscriptionEventCodec(serde)

		serde.On("Decode", []byte("payload"), mock.Anything).Run(
			func(args mock.Arguments) {
				s := args.Get(1).(*schema.SubscriptionEventV1)
				s.Username = "marina"
				s.Active = true
			},
		).Return(nil)

		v, err := codec.Decode([]byte("payload"))
		require.NoError(t, err)

		event, ok := v.(schema.SubscriptionEventV1)
		require.True(t, ok)
		assert.Equal(t, "marina", event.Username)
		assert.True(t, event.Active)
	})
}

func TestSubscriptionProcessFn(t *testing.T) {
	t.Run("StoresActiveState", func(t *testing.T) {
		p := SubscriptionProcessor{opPrefix: "SubscriptionProcessor"}
		gokaCtx := &fakeGokaContext{}

		p.processFn(gokaCtx, schema.SubscriptionEventV1{
			Username: "marina", Active: true,
		})

		assert.Equal(t, activeValue(true), gokaCtx.value)
	})

	t.Run("LastEventWins", func(t *testing.T) {
		p := SubscriptionProcessor{opPrefix: "SubscriptionProcessor"}
		gokaCtx := &fakeGokaContext{}

		p.processFn(gokaCtx, schema.SubscriptionEventV1{
			Username: "marina", Active: true,
		})
		p.processFn(gokaCtx, schema.SubscriptionEventV1{
			Username: "marina", Active: false,
		})

		assert.Equal(t, activeValue(false), gokaCtx.value)
	})
}
