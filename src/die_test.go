package gatemate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDieLatchLazyGrow(t *testing.T) {
	var die Die
	assert.True(t, die.is_latch_empty(1, 1))

	die.write_latch(1, 1, []byte{0x01, 0x02})
	var block = die.get_latch_config(1, 1)
	require.Len(t, block, LATCH_BLOCK_SIZE)
	assert.Equal(t, byte(0x01), block[0])
	assert.Equal(t, byte(0x02), block[1])
	assert.True(t, all_zero(block[2:]))
	assert.False(t, die.is_latch_empty(1, 1))
}

func TestDieFFInitByte(t *testing.T) {
	var die Die
	die.write_ff_init(2, 3, FF_INIT_SET)
	var block = die.get_latch_config(2, 3)
	require.Len(t, block, LATCH_BLOCK_SIZE)
	assert.Equal(t, byte(FF_INIT_SET), block[LATCH_BLOCK_SIZE-1])

	// A later short latch write must not disturb the trailing byte.
	die.write_latch(2, 3, []byte{0xAA})
	assert.Equal(t, byte(FF_INIT_SET), die.get_latch_config(2, 3)[LATCH_BLOCK_SIZE-1])
}

func TestDieCpeEmpty(t *testing.T) {
	var die Die
	assert.True(t, die.is_cpe_empty(5, 5))
	die.write_latch(5, 5, make([]byte, 41))
	assert.True(t, die.is_cpe_empty(5, 5))
	var data = make([]byte, 41)
	data[39] = 0x01
	die.write_latch(5, 5, data)
	assert.False(t, die.is_cpe_empty(5, 5))

	var routing_only = make([]byte, 80)
	routing_only[64] = 0x01
	die.write_latch(6, 5, routing_only)
	assert.True(t, die.is_cpe_empty(6, 5))
	assert.False(t, die.is_latch_empty(6, 5))
}

func TestDieRamWrites(t *testing.T) {
	var die Die
	die.write_ram(2, 3, []byte{0xAA, 0x55})
	var block = die.get_ram_config(2, 3)
	require.Len(t, block, RAM_BLOCK_SIZE)
	assert.Equal(t, byte(0xAA), block[0])

	require.NoError(t, die.write_ram_data(2, 3, []byte{0x01, 0x02}, 100))
	var data = die.get_ram_data(2, 3)
	require.Len(t, data, MEMORY_SIZE)
	assert.Equal(t, byte(0x01), data[100])
	assert.Equal(t, byte(0x02), data[101])
	assert.True(t, die.is_ram_data_empty(1, 1))
	assert.False(t, die.is_ram_data_empty(2, 3))
}

func TestDieRamDataOutOfRange(t *testing.T) {
	var die Die
	var err = die.write_ram_data(0, 0, []byte{1, 2}, MEMORY_SIZE-1)
	require.Error(t, err)
	assert.True(t, die.is_ram_data_empty(0, 0))
}

func TestDiePllSelect(t *testing.T) {
	var die Die
	var body = make([]byte, PLL_CFG_SIZE)
	for i := range body {
		body[i] = byte(i + 1)
	}

	// Bit 0 selects PLL0 slot A.
	die.write_pll_select(0x01, body)
	assert.Equal(t, body, die.die_cfg[0:PLL_CFG_SIZE])
	assert.False(t, die.is_pll_cfg_empty(0))
	assert.True(t, die.is_pll_cfg_empty(1))

	// Bit 1 plus bit 5 selects PLL1 slot B.
	die.write_pll_select(0x22, body)
	assert.Equal(t, body, die.die_cfg[3*PLL_CFG_SIZE:4*PLL_CFG_SIZE])
	assert.False(t, die.is_pll_cfg_empty(3))
	assert.True(t, die.is_pll_cfg_empty(2))
}

func TestDiePllSelectTail(t *testing.T) {
	var die Die
	var body = make([]byte, PLL_CFG_SIZE+CLKIN_CFG_SIZE+GLBOUT_CFG_SIZE)
	for i := range body {
		body[i] = byte(0x80 + i)
	}
	die.write_pll_select(0x01, body)
	assert.Equal(t, body[PLL_CFG_SIZE:PLL_CFG_SIZE+CLKIN_CFG_SIZE],
		die.die_cfg[CLKIN_CFG_START:GLBOUT_CFG_START])
	assert.Equal(t, body[PLL_CFG_SIZE+CLKIN_CFG_SIZE:],
		die.die_cfg[GLBOUT_CFG_START:STATUS_CFG_START])
	assert.False(t, die.is_clkin_cfg_empty())
	assert.False(t, die.is_glbout_cfg_empty())
}

func TestDieStatusRegion(t *testing.T) {
	var die Die
	assert.False(t, die.is_using_cfg_gpios())
	die.write_status([]byte{0x13, 0x00, 0x3B})
	assert.Equal(t, byte(0x13), die.die_cfg[STATUS_CFG_START])
	assert.True(t, die.is_using_cfg_gpios())

	// A shorter status write clears the rest of the region.
	die.write_status([]byte{0x01})
	assert.Equal(t, byte(0x00), die.die_cfg[STATUS_CFG_START+2])
	assert.False(t, die.is_using_cfg_gpios())
}

func TestDieLayout(t *testing.T) {
	var cases = []struct {
		dies, max_x, max_y int
	}{
		{1, 0, 0},
		{2, 0, 1},
		{4, 1, 1},
	}
	for _, tc := range cases {
		var max_x, max_y = die_layout(tc.dies)
		assert.Equal(t, tc.max_x, max_x)
		assert.Equal(t, tc.max_y, max_y)
		assert.Equal(t, tc.dies, (max_x+1)*(max_y+1))
	}
}

func TestEdgeLocation(t *testing.T) {
	assert.True(t, is_edge_location(0, 30))
	assert.True(t, is_edge_location(81, 30))
	assert.True(t, is_edge_location(40, 0))
	assert.True(t, is_edge_location(40, 65))
	assert.False(t, is_edge_location(1, 1))
	assert.False(t, is_edge_location(80, 64))
}
