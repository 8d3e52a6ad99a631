package gatemate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Every database must partition its bit space: each bit claimed by
// exactly one word once the unknowns are added.
func check_partition(t *testing.T, db *base_bit_database) {
	t.Helper()
	var coverage = make([]int, db.num_bits)
	for _, name := range db.order {
		var ws = db.words[name]
		for i := ws.start; i < ws.end; i++ {
			coverage[i]++
		}
	}
	for i, c := range coverage {
		require.Equal(t, 1, c, "bit %d covered %d times", i, c)
	}
	assert.Equal(t, len(db.order), len(db.words))
}

func TestBitDatabasePartition(t *testing.T) {
	var tiles = []struct {
		x, y int
	}{
		{0, 0},   // bottom edge wins over left
		{40, 0},  // bottom edge
		{0, 30},  // left edge
		{81, 30}, // right edge
		{40, 65}, // top edge
		{81, 65}, // top edge wins over right
		{1, 1},   // core
		{40, 30}, // core
	}
	for _, tc := range tiles {
		t.Run(fmt.Sprintf("tile_%d_%d", tc.x, tc.y), func(t *testing.T) {
			var db = new_tile_bit_database(tc.x, tc.y)
			assert.Equal(t, LATCH_BLOCK_SIZE*8, db.num_bits)
			check_partition(t, &db.base_bit_database)
		})
	}
	t.Run("ram", func(t *testing.T) {
		var db = new_ram_bit_database()
		assert.Equal(t, RAM_BLOCK_SIZE*8, db.num_bits)
		check_partition(t, &db.base_bit_database)
	})
	t.Run("config", func(t *testing.T) {
		var db = new_config_bit_database()
		assert.Equal(t, DIE_CONFIG_SIZE*8, db.num_bits)
		check_partition(t, &db.base_bit_database)
	})
	t.Run("serdes", func(t *testing.T) {
		var db = new_serdes_bit_database()
		assert.Equal(t, SERDES_CFG_SIZE*8, db.num_bits)
		check_partition(t, &db.base_bit_database)
	})
}

func TestBitDatabaseRoundTrip(t *testing.T) {
	var databases = map[string]*base_bit_database{
		"core":   &new_tile_bit_database(40, 30).base_bit_database,
		"bottom": &new_tile_bit_database(40, 0).base_bit_database,
		"left":   &new_tile_bit_database(0, 30).base_bit_database,
		"ram":    &new_ram_bit_database().base_bit_database,
		"config": &new_config_bit_database().base_bit_database,
		"serdes": &new_serdes_bit_database().base_bit_database,
	}
	for name, db := range databases {
		t.Run(name, func(t *testing.T) {
			var size = db.num_bits / 8
			rapid.Check(t, func(t *rapid.T) {
				var data = rapid.SliceOfN(rapid.Byte(), size, size).Draw(t, "data")
				var cfg = db.data_to_config(data)
				var back, err = db.config_to_data(cfg)
				require.NoError(t, err)
				assert.Equal(t, data, back)
			})
		})
	}
}

func TestBitDatabaseWordOrderIsInsertionOrder(t *testing.T) {
	var db = new_tile_bit_database(40, 30)
	require.NotEmpty(t, db.order)
	assert.Equal(t, "CPE_1", db.order[0])
	assert.Equal(t, "CPE_1.FF_INIT", db.order[1])
	assert.Equal(t, "CPE_2", db.order[2])

	// A fully set block reports its words in that same order.
	var data = make([]byte, LATCH_BLOCK_SIZE)
	for i := range data {
		data[i] = 0xFF
	}
	var cfg = db.data_to_config(data)
	var names = make([]string, 0, len(cfg.cwords))
	for _, w := range cfg.cwords {
		names = append(names, w.Name)
	}
	assert.Equal(t, db.order, names)
}

func TestBitDatabaseConflicts(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		var db = new_base_bit_database(32)
		db.add_word_settings("WORD", 0, 8)
		assert.PanicsWithError(t, "database conflict: word WORD already exists in DB", func() {
			db.add_word_settings("WORD", 8, 8)
		})
	})
	t.Run("overlapping bits", func(t *testing.T) {
		var db = new_base_bit_database(32)
		db.add_word_settings("A", 0, 8)
		assert.PanicsWithError(t, "database conflict: bit 7 for word B already mapped", func() {
			db.add_word_settings("B", 7, 8)
		})
	})
}

func TestBitDatabaseUnknownWord(t *testing.T) {
	var db = new_ram_bit_database()
	var cfg = new(TileConfig)
	cfg.add_word("NOT_A_WORD", []bool{true})
	var _, err = db.config_to_data(cfg)
	require.Error(t, err)
	var unknownErr *UnknownWordError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "NOT_A_WORD", unknownErr.Name)
}

func TestBitDatabaseValueWidthMismatch(t *testing.T) {
	var db = new_ram_bit_database()
	var cfg = new(TileConfig)
	cfg.add_word("RAM_cfg_inversion", []bool{true}) // 8 bit word
	var _, err = db.config_to_data(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAM_cfg_inversion")
}

func TestBitDatabaseZeroWordsOmitted(t *testing.T) {
	var db = new_ram_bit_database()
	var data = make([]byte, RAM_BLOCK_SIZE)
	data[19] = 0x80 // RAM_cfg_inversion
	var cfg = db.data_to_config(data)
	require.Len(t, cfg.cwords, 1)
	assert.Equal(t, "RAM_cfg_inversion", cfg.cwords[0].Name)
	assert.Equal(t, []bool{false, false, false, false, false, false, false, true}, cfg.cwords[0].Value)
}

func TestBitDatabaseFFInitPlacement(t *testing.T) {
	// The FF_INIT fields live in the trailing latch byte.
	var db = new_tile_bit_database(40, 30)
	var data = make([]byte, LATCH_BLOCK_SIZE)
	data[LATCH_BLOCK_SIZE-1] = FF_INIT_RESET | FF_INIT_SET<<6
	var cfg = db.data_to_config(data)
	require.Len(t, cfg.cwords, 2)
	assert.Equal(t, "CPE_1.FF_INIT", cfg.cwords[0].Name)
	assert.Equal(t, []bool{false, true}, cfg.cwords[0].Value)
	assert.Equal(t, "CPE_4.FF_INIT", cfg.cwords[1].Name)
	assert.Equal(t, []bool{true, true}, cfg.cwords[1].Value)
}
