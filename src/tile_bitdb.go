package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Bit database for one tile's latch block.
 *
 * Description:	The word layout depends on where the tile sits.  Core
 *		tiles carry four CPEs, the input and output muxes and
 *		the per-CPE FF_INIT fields in the trailing byte.  Edge
 *		tiles instead carry the GPIO block, the edge I/O words
 *		and the edge select blocks of their side.  Every tile
 *		ends with the routing switchboxes from byte 64 up.
 *
 *--------------------------------------------------------------*/

import "fmt"

type tile_bit_database struct {
	base_bit_database
}

func (db *tile_bit_database) add_sb_big(index, start int) {
	db.add_word_settings(fmt.Sprintf("SB_BIG_%02d", index), start, 15)
}

func (db *tile_bit_database) add_sb_sml(index, start int) {
	db.add_word_settings(fmt.Sprintf("SB_SML_%02d", index), start, 12)
}

func (db *tile_bit_database) add_sb_drive(index, start int) {
	db.add_word_settings(fmt.Sprintf("SB_DRIVE_%02d", index), start, 4)
}

func (db *tile_bit_database) add_cpe(index, start int) {
	db.add_word_settings(fmt.Sprintf("CPE_%d", index), start, 80)
}

func (db *tile_bit_database) add_ff_init(index, start int) {
	db.add_word_settings(fmt.Sprintf("CPE_%d.FF_INIT", index), start, 2)
}

func (db *tile_bit_database) add_inmux(index, plane, start int) {
	db.add_word_settings(fmt.Sprintf("INMUX_%d_%02d", index, plane), start, 3)
}

func (db *tile_bit_database) add_outmux(index, cpe, start int) {
	db.add_word_settings(fmt.Sprintf("OUTMUX_%d_%d", index, cpe), start, 3)
}

func (db *tile_bit_database) add_gpio(start int) {
	db.add_word_settings("GPIO", start, 72)
}

func (db *tile_bit_database) add_edge_io(index, start int) {
	db.add_word_settings(fmt.Sprintf("EDGE_IO_%d", index), start, 16)
}

func (db *tile_bit_database) add_right_edge(index, start int) {
	db.add_word_settings(fmt.Sprintf("RES%d", index), start, 24)
}

func (db *tile_bit_database) add_left_edge(index, start int) {
	db.add_word_settings(fmt.Sprintf("LES%d", index), start, 24)
}

func (db *tile_bit_database) add_top_edge(index, start int) {
	db.add_word_settings(fmt.Sprintf("TES%d", index), start, 24)
}

func (db *tile_bit_database) add_bottom_edge(index, start int) {
	db.add_word_settings(fmt.Sprintf("BES%d", index), start, 48)
}

/*-------------------------------------------------------------
 *
 * Function:	new_tile_bit_database
 *
 * Purpose:	Build the word map for the tile at (x, y).
 *
 *		Core tile layout, byte offsets:
 *		   0  CPE_1 .. CPE_4, 10 bytes each
 *		  40  INMUX, two 3-bit fields per byte, 3 bytes per CPE
 *		  54  OUTMUX, two 3-bit fields per byte
 *		 112  trailing byte with the four FF_INIT fields
 *
 *		All tiles, byte offsets:
 *		  64  six SB_BIG pairs with the drive bits interleaved,
 *		      5 bytes per pair
 *		  94  six SB_SML pairs, 3 bytes per pair
 *
 *--------------------------------------------------------------*/

func new_tile_bit_database(x, y int) *tile_bit_database {
	var db = &tile_bit_database{new_base_bit_database(LATCH_BLOCK_SIZE * 8)}
	var is_core = false
	if y == 0 {
		db.add_bottom_edge(1, 13*8)
		db.add_bottom_edge(2, 19*8)
	} else if x == 0 {
		db.add_left_edge(1, 13*8)
		db.add_left_edge(2, 16*8)
	} else if y == MAX_ROWS-1 {
		db.add_top_edge(1, 13*8)
		db.add_top_edge(2, 16*8)
	} else if x == MAX_COLS-1 {
		db.add_right_edge(1, 13*8)
		db.add_right_edge(2, 16*8)
	} else {
		is_core = true
		for i := 0; i < 4; i++ {
			db.add_cpe(i+1, 10*i*8)
			db.add_ff_init(i+1, (LATCH_BLOCK_SIZE-1)*8+i*2)
		}
		var pos = 40
		for i := 0; i < 4; i++ {
			for j := 0; j < 3; j++ {
				db.add_inmux(i+1, j*2+1, pos*8)
				db.add_inmux(i+1, j*2+2, pos*8+3)
				pos++
			}
		}
		pos = 54
		for i := 0; i < 4; i++ {
			db.add_outmux(i+1, 1, pos*8)
			db.add_outmux(i+1, 2, pos*8+3)
			pos++
		}
	}
	if !is_core {
		db.add_gpio(0)
		db.add_edge_io(1, 9*8)
		db.add_edge_io(2, 11*8)
	}

	// All tiles have switchboxes.
	var pos = 64
	for i := 0; i < 6; i++ {
		db.add_sb_big(i*2+1, pos*8)
		db.add_sb_drive(i*2+1, (pos+2)*8)
		db.add_sb_drive(i*2+2, (pos+2)*8+4)
		db.add_sb_big(i*2+2, (pos+3)*8)
		pos += 5
	}
	for i := 0; i < 6; i++ {
		db.add_sb_sml(i*2+1, pos*8)
		db.add_sb_sml(i*2+2, (pos+1)*8+4)
		pos += 3
	}
	db.add_unknowns()
	return db
}
