package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Bit databases for the die-level configuration vector
 *		and the SERDES block.
 *
 * Description:	The die vector packs the four PLL instances (two
 *		slots each), the CLKIN and GLBOUT clock routing bytes
 *		and the status region.  The SERDES block has no public
 *		word documentation yet; its database is all UNKNOWN
 *		bits, which still round-trips losslessly.
 *
 *--------------------------------------------------------------*/

import "fmt"

type config_bit_database struct {
	base_bit_database
}

func new_config_bit_database() *config_bit_database {
	var db = &config_bit_database{new_base_bit_database(DIE_CONFIG_SIZE * 8)}
	var pos = 0
	for i := 0; i < MAX_PLL; i++ {
		db.add_word_settings(fmt.Sprintf("PLL%d.CFG_A", i), pos, PLL_CFG_SIZE*8)
		pos += PLL_CFG_SIZE * 8
		db.add_word_settings(fmt.Sprintf("PLL%d.CFG_B", i), pos, PLL_CFG_SIZE*8)
		pos += PLL_CFG_SIZE * 8
	}
	db.add_word_settings("CLKIN.PLL0", pos+0, 8)
	db.add_word_settings("CLKIN.PLL1", pos+8, 8)
	db.add_word_settings("CLKIN.PLL2", pos+16, 8)
	db.add_word_settings("CLKIN.PLL3", pos+24, 8)
	db.add_word_settings("GLBOUT.PLL0", pos+32, 16)
	db.add_word_settings("GLBOUT.PLL1", pos+48, 16)
	db.add_word_settings("GLBOUT.PLL2", pos+64, 16)
	db.add_word_settings("GLBOUT.PLL3", pos+80, 16)

	pos = STATUS_CFG_START * 8
	db.add_word_settings("GPIO.BANK_S1", pos+16, 1)
	db.add_word_settings("GPIO.BANK_S2", pos+17, 1)
	db.add_word_settings("GPIO.BANK_CFG", pos+19, 1)
	db.add_word_settings("GPIO.BANK_E1", pos+20, 1)
	db.add_word_settings("GPIO.BANK_E2", pos+21, 1)

	db.add_word_settings("GPIO.BANK_N1", pos+24, 1)
	db.add_word_settings("GPIO.BANK_N2", pos+25, 1)

	db.add_word_settings("GPIO.BANK_W1", pos+28, 1)
	db.add_word_settings("GPIO.BANK_W2", pos+29, 1)

	pos += 32
	for i := 0; i < MAX_PLL; i++ {
		db.add_word_settings(fmt.Sprintf("PLL%d.CTRL_A", i), pos+0, 8)
		db.add_word_settings(fmt.Sprintf("PLL%d.CTRL_B", i), pos+8, 8)
		pos += 16
	}
	db.add_unknowns()
	return db
}

type serdes_bit_database struct {
	base_bit_database
}

func new_serdes_bit_database() *serdes_bit_database {
	var db = &serdes_bit_database{new_base_bit_database(SERDES_CFG_SIZE * 8)}
	db.add_unknowns()
	return db
}
