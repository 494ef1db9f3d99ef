package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStereoConfiguration(t *testing.T) {
	c := NewStereoConfiguration()

	assert.Equal(t, int32(1), c.GetBusCount(MediaTypeAudio, DirectionInput))
	assert.Equal(t, int32(1), c.GetBusCount(MediaTypeAudio, DirectionOutput))
	assert.Zero(t, c.GetBusCount(MediaTypeEvent, DirectionInput))

	info := c.GetBusInfo(MediaTypeAudio, DirectionOutput, 0)
	require.NotNil(t, info)
	assert.Equal(t, "Stereo Out", info.Name)
	assert.Equal(t, int32(2), info.ChannelCount)
	assert.Nil(t, c.GetBusInfo(MediaTypeAudio, DirectionOutput, 1))
}

func TestSetArrangements(t *testing.T) {
	c := NewStereoConfiguration()

	tests := []struct {
		name    string
		inputs  []Arrangement
		outputs []Arrangement
		ok      bool
	}{
		{"stereo", []Arrangement{Stereo}, []Arrangement{Stereo}, true},
		{"mono in", []Arrangement{Mono}, []Arrangement{Stereo}, false},
		{"mono out", []Arrangement{Stereo}, []Arrangement{Mono}, false},
		{"surround", []Arrangement{0x3f}, []Arrangement{0x3f}, false},
		{"two inputs", []Arrangement{Stereo, Stereo}, []Arrangement{Stereo}, false},
		{"no outputs", []Arrangement{Stereo}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetArrangements(tt.inputs, tt.outputs)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrUnsupportedArrangement)

			a, ok := c.Arrangement(DirectionInput, 0)
			require.True(t, ok)
			assert.Equal(t, Stereo, a)
		})
	}
}

func TestArrangementChannels(t *testing.T) {
	assert.Equal(t, int32(2), Stereo.Channels())
	assert.Equal(t, int32(1), Mono.Channels())
	assert.Equal(t, "stereo", Stereo.String())
	assert.Equal(t, "6-channel(0x3f)", Arrangement(0x3f).String())
}

func TestBuilderValidation(t *testing.T) {
	_, err := NewBuilder().WithStereoInput("In").Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithAudioOutput("Out", 0).Build()
	assert.Error(t, err)

	assert.Panics(t, func() { NewBuilder().MustBuild() })
}
