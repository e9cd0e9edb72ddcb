package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical", input: "19:00", want: "19:00"},
		{name: "with seconds", input: "19:01:00", want: "19:01"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "surrounding spaces", input: " 12:30 ", want: "12:30"},
		{name: "empty", input: "", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "seven pm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("19:00").Validate())
	assert.ErrorIs(t, TimeString("9:00").Validate(), ErrInvalidTimeFormat)
	assert.ErrorIs(t, TimeString("19:00:00").Validate(), ErrInvalidTimeFormat)
	assert.ErrorIs(t, TimeString("").Validate(), ErrInvalidTimeFormat)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("19:00:00")))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan("07:15"))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 20, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("20:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("19:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "19:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
