package gatemate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceLookup(t *testing.T) {
	var info, ok = lookup_device("CCGM1A2")
	require.True(t, ok)
	assert.Equal(t, 2, info.Dies)

	var _, missing = lookup_device("CCGM1A3")
	assert.False(t, missing)
}

func TestDeviceListParse(t *testing.T) {
	var devices, err = parse_device_list([]byte(
		"devices:\n" +
			"  - name: CCGM1A1\n" +
			"    dies: 1\n" +
			"  - name: CCGM1A4\n" +
			"    dies: 4\n"))
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "CCGM1A4", devices[1].Name)
	assert.Equal(t, 4, devices[1].Dies)
}

func TestDeviceListParseRejectsBadDieCount(t *testing.T) {
	var _, err = parse_device_list([]byte(
		"devices:\n" +
			"  - name: CCGM1A3\n" +
			"    dies: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported die count 3")
}

func TestDeviceListParseRejectsEmpty(t *testing.T) {
	var _, err = parse_device_list([]byte("devices: []\n"))
	require.Error(t, err)
}

func TestNewChipFromDeviceName(t *testing.T) {
	var chip, err = NewChip("CCGM1A4")
	require.NoError(t, err)
	assert.Equal(t, 4, chip.num_dies())
	assert.Equal(t, "CCGM1A4", chip.Name())

	var _, uerr = NewChip("XYZ")
	require.Error(t, uerr)
}
