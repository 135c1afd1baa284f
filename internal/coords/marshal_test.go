package coords

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMGRSMarshalLetters(t *testing.T) {
	m, err := ParseMGRS("32ULC4000010000")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"zone":32,"band":"U","column":"L","row":"C","x":40000,"y":10000,"precision":5}`,
		string(data))

	var back MGRS
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "band: U\n")
	assert.Contains(t, string(out), "column: L\n")

	back = MGRS{}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, m, back)
}

func TestUTMMarshalLetters(t *testing.T) {
	u, err := NewUTM(32, 'U', 395201, 5673135)
	require.NoError(t, err)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"zone":32,"band":"U","easting":395201,"northing":5673135,"north":true}`,
		string(data))

	var back UTM
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, u, back)

	out, err := yaml.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(out), "band: U\n")

	back = UTM{}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, u, back)
}

func TestUnmarshalRejectsBadLetters(t *testing.T) {
	var u UTM
	err := json.Unmarshal([]byte(`{"zone":32,"band":"UV","easting":395201,"northing":5673135}`), &u)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var m MGRS
	err = json.Unmarshal([]byte(`{"zone":32,"band":"U","column":"A","row":"C","x":1,"y":1,"precision":5}`), &m)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
