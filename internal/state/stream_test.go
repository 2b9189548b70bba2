package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamTransitions(t *testing.T) {
	var s Stream[int]
	assert.Equal(t, Idle, s.Status)

	s.Begin()
	assert.True(t, s.IsLoading())

	v := 7
	s.Succeed(&v)
	assert.Equal(t, Loaded, s.Status)
	assert.Equal(t, 7, *s.Data)
	assert.Empty(t, s.Err)

	s.Fail("nope")
	assert.Equal(t, Errored, s.Status)
	assert.Nil(t, s.Data)
	assert.Equal(t, "nope", s.Err)

	s.Begin()
	assert.Empty(t, s.Err)
	s.Settle()
	assert.Equal(t, Idle, s.Status)
}

func TestStreamSettleKeepsFinalStates(t *testing.T) {
	var s Stream[int]
	s.Fail("x")
	s.Settle()
	assert.Equal(t, Errored, s.Status)
}

func TestStreamJSON(t *testing.T) {
	v := 3
	s := Stream[int]{Status: Loaded, Data: &v}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"loaded","data":3}`, string(b))
}
