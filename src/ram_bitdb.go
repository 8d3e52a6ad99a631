package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Bit database for a block-RAM configuration block.
 *
 *		One byte-wide word per control group, in the order the
 *		silicon documents them.
 *
 *--------------------------------------------------------------*/

type ram_bit_database struct {
	base_bit_database
}

var ram_cfg_words = []string{
	"RAM_cfg_forward_a_addr",
	"RAM_cfg_forward_b_addr",
	"RAM_cfg_forward_a0_clk",
	"RAM_cfg_forward_a0_en",
	"RAM_cfg_forward_a0_we",
	"RAM_cfg_forward_a1_clk",
	"RAM_cfg_forward_a1_en",
	"RAM_cfg_forward_a1_we",
	"RAM_cfg_forward_b0_clk",
	"RAM_cfg_forward_b0_en",
	"RAM_cfg_forward_b0_we",
	"RAM_cfg_forward_b1_clk",
	"RAM_cfg_forward_b1_en",
	"RAM_cfg_forward_b1_we",
	"RAM_cfg_sram_mode_i_cfg",
	"RAM_cfg_in_out_cfg",
	"RAM_cfg_out_cfg",
	"RAM_cfg_out_b1_cfg",
	"RAM_cfg_wrmode_outreg",
	"RAM_cfg_inversion",
	"RAM_cfg_inv_ecc_dyn",
	"RAM_cfg_fifo_sync_empty",
	"RAM_cfg_fifo_empty",
	"RAM_cfg_fifo_aync_full",
	"RAM_cfg_fifo_full",
	"RAM_cfg_sram_delay",
	"RAM_cfg_datbm_cascade",
}

func new_ram_bit_database() *ram_bit_database {
	var db = &ram_bit_database{new_base_bit_database(RAM_BLOCK_SIZE * 8)}
	for i, name := range ram_cfg_words {
		db.add_word_settings(name, i*8, 8)
	}
	db.add_unknowns()
	return db
}
