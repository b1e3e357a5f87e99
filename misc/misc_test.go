package misc

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, LerpFloat64(0, 10, 0.5))
	assert.Equal(t, uint8(100), LerpUint8(0, 200, 0.5))
	assert.Equal(t, color.RGBA{R: 50, G: 100, B: 0, A: 255},
		LinearInterpolationRGB(color.RGBA{R: 0, G: 200}, color.RGBA{R: 100, G: 0}, 0.5))
	assert.InDelta(t, 10.0, LerpLog(1, 100, 0.5), 1e-9)
}

func TestEasing(t *testing.T) {
	assert.Equal(t, 0.0, EaseInExpo(0))
	assert.Equal(t, 1.0, EaseInExpo(1))
	assert.Equal(t, 1.0, EaseOutExpo(1))
	assert.Equal(t, 0.0, EaseOutExpo(0))
	assert.Less(t, EaseInExpo(0.5), EaseOutExpo(0.5))
}

func TestReadWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "nested", "settings.json")
	written, err := WriteFile(name, []byte(`{"Width": 4}`))
	require.NoError(t, err)
	assert.Equal(t, 12, written)

	contents, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, `{"Width": 4}`, string(contents))

	_, err = ReadFile("")
	assert.ErrorIs(t, err, ErrNoFileName)
	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCheckError(t *testing.T) {
	logger := bslogger.NewLogger("Test", bslogger.Minimal, nil)
	assert.False(t, CheckError(nil, logger, Warning))
	assert.True(t, CheckError(errors.New("boom"), logger, Debug))
	assert.Equal(t, "Warning", Warning.String())
	assert.Equal(t, "Unknown", Severity(12).String())
}

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}
