package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_JSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"15m","b":1000000000}`), &v))
	assert.Equal(t, 15*time.Minute, v.A.Duration)
	assert.Equal(t, time.Second, v.B.Duration)

	out, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestDuration_YAML(t *testing.T) {
	var v struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 2h\nb: 500\n"), &v))
	assert.Equal(t, 2*time.Hour, v.A.Duration)
	assert.Equal(t, 500*time.Nanosecond, v.B.Duration)

	assert.Error(t, yaml.Unmarshal([]byte("a: later\n"), &v))
}
