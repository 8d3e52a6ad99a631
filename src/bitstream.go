package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	The bitstream codec.
 *
 * Description:	A bitstream is a sequence of CRC-protected command
 *		frames.  Decoding runs twice over the buffer: a sizing
 *		pass counts the PATH navigation tokens to learn the
 *		die grid, then the real pass replays the stream into a
 *		freshly allocated Chip.  Encoding walks the chip in a
 *		fixed order and is byte-for-byte reproducible, so a
 *		decoded stream re-encodes to the same bytes apart from
 *		option-only frames.
 *
 *		Latch frames are the subtle part.  A core tile is
 *		written up to three times: first without its CPE
 *		bytes, then with the flip-flop set/reset bits masked
 *		off, then with the true values.  The difference
 *		between the last two passes is what tells the silicon
 *		(and the decoder) the intended flip-flop initial
 *		state.
 *
 *--------------------------------------------------------------*/

// Command opcodes.  DLXP, DLYP, DRXP and WAIT_PLL are reserved in
// the vendor headers; they are never emitted and rejected on decode
// until their semantics are confirmed.
const (
	CMD_PLL        = 0xc1
	CMD_CFGMODE    = 0xc2
	CMD_CFGRST     = 0xc3
	CMD_FLASH      = 0xc5
	CMD_DLXP       = 0xc6
	CMD_DLYP       = 0xc7
	CMD_LXLYS      = 0xc8
	CMD_ACLCU      = 0xc9
	CMD_DLCU       = 0xca
	CMD_DRXP       = 0xcc
	CMD_RXRYS      = 0xce
	CMD_FRAM       = 0xd2
	CMD_SERDES     = 0xd7
	CMD_D2D        = 0xd8
	CMD_PATH       = 0xd9
	CMD_JUMP       = 0xda
	CMD_CHG_STATUS = 0xdb
	CMD_WAIT_PLL   = 0xdc
	CMD_SPLL       = 0xdd
	CMD_SLAVE_MODE = 0xde
)

// PATH direction tokens.
const (
	PATH_RESET   = 0x01
	PATH_UP      = 0x02
	PATH_RIGHT   = 0x04
	PATH_FORWARD = 0x08
	PATH_PROGRAM = 0x10
)

// CHG_STATUS flags, first byte of the status body.
const (
	CFG_NONE      = 0x00
	CFG_STOP      = 0x01
	CFG_DONE      = 0x02
	CFG_RECONFIG  = 0x04
	CFG_CPE_CFG   = 0x08
	CFG_CPE_RESET = 0x10
	CFG_FILL_RAM  = 0x20
	CFG_SERDES    = 0x40
)

// Clock source bits in status byte 1, used when a reconfiguration
// bitstream has no PLL of its own to run from.
const STATUS_AUTO_CLK = 0x30

type CrcMode int

const (
	CRC_MODE_CHECK  CrcMode = 0
	CRC_MODE_IGNORE CrcMode = 1
	CRC_MODE_UNUSED CrcMode = 2
)

type SpiMode int

const (
	SPI_MODE_SINGLE SpiMode = iota
	SPI_MODE_DUAL
	SPI_MODE_QUAD
)

var spi_mode_bytes = map[SpiMode][]byte{
	SPI_MODE_SINGLE: {},
	SPI_MODE_DUAL:   {0x50, 0x21, 0x18, 0x3B},
	SPI_MODE_QUAD:   {0xF0, 0x23, 0x18, 0x6B},
}

// BitstreamOptions select the option-only frames around the chip
// data.  The zero value emits none of them.
type BitstreamOptions struct {
	Reset       bool
	CfgMode     bool // emit CMD_CFGMODE with CrcMode/SpiMode below
	CrcMode     CrcMode
	SpiMode     SpiMode
	Reconfig    bool
	Background  bool
	BootAddr    uint32
	HasBootAddr bool
}

// Trailing NOP/magic byte counts per command, identical on both
// sides of the codec.
var cmd_trailing = map[byte]int{
	CMD_PLL:        6,
	CMD_CFGMODE:    4,
	CMD_CFGRST:     0,
	CMD_FLASH:      0,
	CMD_LXLYS:      0,
	CMD_ACLCU:      0,
	CMD_DLCU:       0,
	CMD_RXRYS:      0,
	CMD_FRAM:       0,
	CMD_SERDES:     0,
	CMD_D2D:        0,
	CMD_PATH:       9,
	CMD_JUMP:       2,
	CMD_CHG_STATUS: 9,
	CMD_SPLL:       0,
	CMD_SLAVE_MODE: 3,
}

func cmd_is_reserved(cmd byte) bool {
	switch cmd {
	case CMD_DLXP, CMD_DLYP, CMD_DRXP, CMD_WAIT_PLL:
		return true
	}
	return false
}

// Read one frame header.  Returns the opcode and the body length.
func read_frame_header(rd *bitstream_rw) (byte, int, error) {
	rd.crc.reset()
	var cmd_offset = rd.offset()
	var cmd, err = rd.get_byte()
	if err != nil {
		return 0, 0, err
	}
	if cmd_is_reserved(cmd) {
		return 0, 0, parse_errorf(cmd_offset, "reserved command 0x%02x", cmd)
	}
	if _, known := cmd_trailing[cmd]; !known {
		return 0, 0, parse_errorf(cmd_offset, "unhandled command 0x%02x", cmd)
	}
	var length int
	if cmd == CMD_FRAM {
		var l, lerr = rd.get_uint16()
		if lerr != nil {
			return 0, 0, lerr
		}
		length = int(l)
	} else {
		var l, lerr = rd.get_byte()
		if lerr != nil {
			return 0, 0, lerr
		}
		length = int(l)
	}
	if err := rd.check_crc(); err != nil {
		return 0, 0, err
	}
	return cmd, length, nil
}

/*-------------------------------------------------------------
 *
 * Function:	determine_size
 *
 * Purpose:	Sizing pass.  Walks the frame stream without touching
 *		any entity state and derives the die grid from the
 *		PATH tokens: the largest coordinate programmed with
 *		PATH 0x10 defines the extent.  A stream that never
 *		programs a die is a single-die stream.
 *
 * Returns:	die count and the maximum die grid coordinates.
 *
 *--------------------------------------------------------------*/

func determine_size(data []byte) (int, int, int, error) {
	var rd = new_bitstream_reader(data)
	var die_x, die_y = 0, 0
	var max_x, max_y = 0, 0
	var programmed = false
	for !rd.is_end() {
		var cmd, length, err = read_frame_header(rd)
		if err != nil {
			return 0, 0, 0, err
		}
		var block, berr = rd.get_bytes(length)
		if berr != nil {
			return 0, 0, 0, berr
		}
		if err := rd.check_crc(); err != nil {
			return 0, 0, 0, err
		}
		switch cmd {
		case CMD_PATH:
			if length != 1 {
				return 0, 0, 0, parse_errorf(rd.offset(), "PATH data must be one byte long")
			}
			switch block[0] {
			case PATH_RESET:
				die_x, die_y = 0, 0
			case PATH_UP:
				die_y++
			case PATH_RIGHT:
				die_x++
			case PATH_FORWARD:
				// Accepted, no effect on the grid.
			case PATH_PROGRAM:
				programmed = true
				if die_x > max_x {
					max_x = die_x
				}
				if die_y > max_y {
					max_y = die_y
				}
			default:
				return 0, 0, 0, parse_errorf(rd.offset(), "unknown PATH token 0x%02x", block[0])
			}
		case CMD_CFGMODE:
			if length >= 2 {
				switch CrcMode(block[1]) {
				case CRC_MODE_UNUSED:
					rd.crc_unused = true
				case CRC_MODE_IGNORE:
					rd.crc_ignore = true
				}
			}
		}
		if err := rd.skip_bytes(cmd_trailing[cmd]); err != nil {
			return 0, 0, 0, err
		}
	}
	if !programmed {
		return 1, 0, 0, nil
	}
	return (max_x + 1) * (max_y + 1), max_x, max_y, nil
}

/*-------------------------------------------------------------
 *
 * Function:	DeserialiseChip
 *
 * Purpose:	Decode a bitstream into a Chip.
 *
 * Inputs:	data	- the raw bitstream bytes.
 *
 * Returns:	the reconstructed chip, or an error with the byte
 *		offset of the first violation.
 *
 *--------------------------------------------------------------*/

func DeserialiseChip(data []byte) (*Chip, error) {
	logger.Debug("decoding bitstream", "bits", len(data)*8)

	var num_dies, _, max_y, err = determine_size(data)
	if err != nil {
		return nil, err
	}
	var chip = chip_for_dies(num_dies)
	var die = chip.get_die(0)

	var rd = new_bitstream_reader(data)
	var is_block_ram = false
	var x_pos, y_pos = 0, 0
	var pll_select byte = 0x0f
	var aclcu uint16 = 0
	var die_x, die_y = 0, 0
	var tile_iteration = make(map[[2]int]int)

	for !rd.is_end() {
		var cmd, length, err = read_frame_header(rd)
		if err != nil {
			return nil, err
		}
		switch cmd {
		case CMD_DLCU:
			logger.Debug("CMD_DLCU")
			if is_block_ram {
				if length > RAM_BLOCK_SIZE {
					return nil, parse_errorf(rd.offset(), "RAM configuration must be up to %d bytes", RAM_BLOCK_SIZE)
				}
			} else {
				if length > LATCH_BLOCK_SIZE-1 {
					return nil, parse_errorf(rd.offset(), "tile configuration must be up to %d bytes", LATCH_BLOCK_SIZE-1)
				}
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			if is_block_ram {
				die.write_ram(x_pos, y_pos, block)
				break
			}
			var key = [2]int{x_pos, y_pos}
			var iteration = 0
			if prev, seen := tile_iteration[key]; seen {
				iteration = prev + 1
			}
			tile_iteration[key] = iteration
			if iteration > 2 {
				return nil, parse_errorf(rd.offset(), "more than three configuration passes for tile %d,%d", x_pos, y_pos)
			}
			if iteration == 2 {
				// The flip-flop initial state shows up as the
				// difference against the previous pass.
				var prev_block = die.get_latch_config(x_pos, y_pos)
				var cpe = make([]byte, 40)
				copy(cpe, block)
				var val byte
				for i := 0; i < 4; i++ {
					var v = cpe[i*10+8] ^ prev_block[i*10+8]
					if v&0x30 != 0 {
						val |= FF_INIT_RESET << (i * 2)
					} else if v&0xc0 != 0 {
						val |= FF_INIT_SET << (i * 2)
					} else if v != 0 {
						return nil, parse_errorf(rd.offset(), "unknown CPE state %d on pos %d,%d", v, x_pos, y_pos)
					}
				}
				die.write_ff_init(x_pos, y_pos, val)
				die.write_latch(x_pos, y_pos, cpe)
			} else {
				die.write_latch(x_pos, y_pos, block)
			}
		case CMD_PATH:
			logger.Debug("CMD_PATH")
			if length != 1 {
				return nil, parse_errorf(rd.offset(), "PATH data must be one byte long")
			}
			var dir, derr = rd.get_byte()
			if derr != nil {
				return nil, derr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			switch dir {
			case PATH_RESET:
				die_x, die_y = 0, 0
			case PATH_UP:
				die_y++
			case PATH_RIGHT:
				die_x++
			case PATH_FORWARD:
				// Reserved for longer chains; no model effect.
			case PATH_PROGRAM:
				var idx = die_x*(max_y+1) + die_y
				if idx >= num_dies {
					return nil, parse_errorf(rd.offset(), "PATH selects die %d of %d", idx, num_dies)
				}
				die = chip.get_die(idx)
			default:
				return nil, parse_errorf(rd.offset(), "unknown PATH token 0x%02x", dir)
			}
			tile_iteration = make(map[[2]int]int)
		case CMD_SPLL:
			logger.Debug("CMD_SPLL")
			if length != 1 {
				return nil, parse_errorf(rd.offset(), "SPLL data must be one byte long")
			}
			var sel, serr = rd.get_byte()
			if serr != nil {
				return nil, serr
			}
			pll_select = sel
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_PLL:
			logger.Debug("CMD_PLL")
			if length < PLL_CFG_SIZE {
				return nil, parse_errorf(rd.offset(), "PLL data smaller than expected")
			}
			if length > PLL_CFG_SIZE+CLKIN_CFG_SIZE+GLBOUT_CFG_SIZE {
				return nil, parse_errorf(rd.offset(), "PLL data longer than expected")
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			die.write_pll_select(pll_select, block)
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_LXLYS:
			logger.Debug("CMD_LXLYS")
			if length != 2 {
				return nil, parse_errorf(rd.offset(), "LXLYS data must be two bytes long")
			}
			is_block_ram = false
			var block, berr = rd.get_bytes(2)
			if berr != nil {
				return nil, berr
			}
			if int(block[0]) > MAX_COLS-1 {
				return nil, parse_errorf(rd.offset(), "tile column (X) must be in range 0-%d, current value %d", MAX_COLS-1, block[0])
			}
			if int(block[1]) > MAX_ROWS-1 {
				return nil, parse_errorf(rd.offset(), "tile row (Y) must be in range 0-%d, current value %d", MAX_ROWS-1, block[1])
			}
			x_pos, y_pos = int(block[0]), int(block[1])
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_ACLCU:
			logger.Debug("CMD_ACLCU")
			if length != 2 {
				return nil, parse_errorf(rd.offset(), "ACLCU data must be two bytes long")
			}
			var addr, aerr = rd.get_uint16()
			if aerr != nil {
				return nil, aerr
			}
			aclcu = addr
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_RXRYS:
			logger.Debug("CMD_RXRYS")
			if length != 2 {
				return nil, parse_errorf(rd.offset(), "RXRYS data must be two bytes long")
			}
			is_block_ram = true
			var block, berr = rd.get_bytes(2)
			if berr != nil {
				return nil, berr
			}
			if int(block[0]) > MAX_RAM_COLS-1 {
				return nil, parse_errorf(rd.offset(), "RAM column (X) must be in range 0-%d, current value %d", MAX_RAM_COLS-1, block[0])
			}
			if int(block[1]) > MAX_RAM_ROWS-1 {
				return nil, parse_errorf(rd.offset(), "RAM row (Y) must be in range 0-%d, current value %d", MAX_RAM_ROWS-1, block[1])
			}
			x_pos, y_pos = int(block[0]), int(block[1])
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_FRAM:
			logger.Debug("CMD_FRAM")
			if length > MEMORY_SIZE {
				return nil, parse_errorf(rd.offset(), "FRAM data longer than expected")
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			if int(aclcu)+len(block) > MEMORY_SIZE {
				return nil, parse_errorf(rd.offset(), "FRAM data write beyond memory end")
			}
			if err := die.write_ram_data(x_pos, y_pos, block, aclcu); err != nil {
				return nil, err
			}
		case CMD_SERDES:
			logger.Debug("CMD_SERDES")
			if length != SERDES_CFG_SIZE {
				return nil, parse_errorf(rd.offset(), "SERDES data must be %d bytes long", SERDES_CFG_SIZE)
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			die.serdes_cfg = block
		case CMD_D2D:
			logger.Debug("CMD_D2D")
			if length != 1 {
				return nil, parse_errorf(rd.offset(), "D2D data must be one byte long")
			}
			var b, berr = rd.get_byte()
			if berr != nil {
				return nil, berr
			}
			die.d2d = b
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_JUMP:
			logger.Debug("CMD_JUMP")
			if length > 4 {
				return nil, parse_errorf(rd.offset(), "JUMP data longer than expected")
			}
			if _, err := rd.get_bytes(length); err != nil {
				return nil, err
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_CHG_STATUS:
			logger.Debug("CMD_CHG_STATUS")
			if length > STATUS_CFG_SIZE {
				return nil, parse_errorf(rd.offset(), "CHG_STATUS data longer than expected")
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			die.write_status(block)
		case CMD_SLAVE_MODE:
			logger.Debug("CMD_SLAVE_MODE")
			if length > 1 {
				return nil, parse_errorf(rd.offset(), "SLAVE_MODE must be one byte long")
			}
			if _, err := rd.get_bytes(length); err != nil {
				return nil, err
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_FLASH:
			logger.Debug("CMD_FLASH")
			if length > 11 {
				return nil, parse_errorf(rd.offset(), "FLASH data longer than expected")
			}
			if _, err := rd.get_bytes(length); err != nil {
				return nil, err
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_CFGRST:
			logger.Debug("CMD_CFGRST")
			if length > 1 {
				return nil, parse_errorf(rd.offset(), "CFGRST data longer than expected")
			}
			if _, err := rd.get_bytes(length); err != nil {
				return nil, err
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
		case CMD_CFGMODE:
			logger.Debug("CMD_CFGMODE")
			if length > 20 {
				return nil, parse_errorf(rd.offset(), "CFGMODE data longer than expected")
			}
			var block, berr = rd.get_bytes(length)
			if berr != nil {
				return nil, berr
			}
			if err := rd.check_crc(); err != nil {
				return nil, err
			}
			if length >= 2 {
				switch CrcMode(block[1]) {
				case CRC_MODE_UNUSED:
					rd.crc_unused = true
				case CRC_MODE_IGNORE:
					rd.crc_ignore = true
				}
			}
		default:
			return nil, parse_errorf(rd.offset(), "unhandled command 0x%02x", cmd)
		}
		if err := rd.skip_bytes(cmd_trailing[cmd]); err != nil {
			return nil, err
		}
	}
	return chip, nil
}

func trim_trailing_zeros(data []byte) []byte {
	var end = len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return data[:end]
}

func status_flag_body(flag byte) []byte {
	var body = make([]byte, STATUS_CFG_SIZE)
	body[0] = flag
	return body
}

/*-------------------------------------------------------------
 *
 * Function:	SerialiseChip
 *
 * Purpose:	Encode a chip into a bitstream.
 *
 * Description:	Dies are emitted from the highest index down so that
 *		the final CHG_STATUS/JUMP land on die 0.  Per die:
 *		PATH navigation, option frames, PLL setup, RAM blocks
 *		and their memory images, the three latch passes, then
 *		SERDES and the closing status word.
 *
 *--------------------------------------------------------------*/

func SerialiseChip(chip *Chip, opts BitstreamOptions) []byte {
	var wr = new_bitstream_writer()
	var num = chip.num_dies()
	var _, max_y = die_layout(num)

	for d := num - 1; d >= 0; d-- {
		var die = chip.get_die(d)

		// Navigation.  Die d sits at grid (d / (max_y+1), d % (max_y+1)).
		if num > 1 {
			wr.write_cmd_path(PATH_RESET)
		}
		var die_x = d / (max_y + 1)
		var die_y = d % (max_y + 1)
		for j := 0; j < die_y; j++ {
			wr.write_cmd_path(PATH_UP)
		}
		for i := 0; i < die_x; i++ {
			wr.write_cmd_path(PATH_RIGHT)
		}
		wr.write_cmd_path(PATH_PROGRAM)

		if opts.Reset {
			wr.write_cmd_cfgrst(0x01)
		}
		if opts.CfgMode {
			var body = []byte{0xFF, byte(opts.CrcMode)}
			body = append(body, spi_mode_bytes[opts.SpiMode]...)
			wr.write_cmd_cfgmode(body)
			if opts.CrcMode == CRC_MODE_UNUSED {
				wr.crc_unused = true
			}
		}
		if die.d2d != 0 {
			wr.write_cmd_d2d(die.d2d)
		}

		// PLL setup.  One frame per configured slot; CLKIN and
		// GLBOUT ride along in the frame tail.  GLBOUT sits after
		// CLKIN in the vector, so a configured GLBOUT forces the
		// full tail.
		var pll_data = die.get_pll_config()
		var size = PLL_CFG_SIZE
		if !die.is_clkin_cfg_empty() {
			size = PLL_CFG_SIZE + CLKIN_CFG_SIZE
		}
		if !die.is_glbout_cfg_empty() {
			size = PLL_CFG_SIZE + CLKIN_CFG_SIZE + GLBOUT_CFG_SIZE
		}
		var pll_written = false
		for i := 0; i < MAX_PLL; i++ {
			var cfg_a = !die.is_pll_cfg_empty(i*2 + 0)
			var cfg_b = !die.is_pll_cfg_empty(i*2 + 1)
			if !cfg_a && !cfg_b {
				continue
			}
			wr.write_cmd_spll(1 << i)
			wr.write_cmd_pll(i*2, pll_data, size)
			if cfg_b {
				wr.write_cmd_spll(1<<i | 1<<(i+4))
				wr.write_cmd_pll(i*2+1, pll_data, size)
			}
			pll_written = true
		}
		if !pll_written {
			// Still carries the CLKIN/GLBOUT bytes.
			wr.write_cmd_pll(0, pll_data, size)
		}

		// RAM configuration, then the memory images.
		var any_ram = false
		for y := MAX_RAM_ROWS - 1; y >= 0; y-- {
			for x := MAX_RAM_COLS - 1; x >= 0; x-- {
				if die.is_ram_empty(x, y) {
					continue
				}
				wr.write_cmd_rxrys(byte(x), byte(y))
				wr.write_block(CMD_DLCU, die.get_ram_config(x, y))
				any_ram = true
			}
		}
		if any_ram {
			wr.write_cmd_chg_status(status_flag_body(CFG_FILL_RAM))
			for y := MAX_RAM_ROWS - 1; y >= 0; y-- {
				for x := MAX_RAM_COLS - 1; x >= 0; x-- {
					if die.is_ram_data_empty(x, y) {
						continue
					}
					wr.write_cmd_rxrys(byte(x), byte(y))
					wr.write_cmd_aclcu(0)
					wr.write_block(CMD_FRAM, die.get_ram_data(x, y))
				}
			}
			wr.write_cmd_chg_status(status_flag_body(CFG_NONE))
		}

		// Latches, three passes.
		var scrubaddr = 0
		var scrub_set = false
		for iteration := 0; iteration < 3; iteration++ {
			for y := 0; y < MAX_ROWS; y++ {
				for x := 0; x < MAX_COLS; x++ {
					if die.is_latch_empty(x, y) {
						continue
					}
					var edge = is_edge_location(x, y)
					// Only tiles with CPEs take multiple passes.
					if iteration != 0 && (edge || die.is_cpe_empty(x, y)) {
						continue
					}
					var src = die.get_latch_config(x, y)
					var data = make([]byte, LATCH_BLOCK_SIZE-1)
					copy(data, src)
					var ff_init = src[LATCH_BLOCK_SIZE-1]
					if !edge {
						if iteration == 0 {
							// First pass does not set up CPEs at all.
							for i := 0; i < 40; i++ {
								data[i] = 0
							}
							// Nothing left to write: skip, unless the CPE
							// passes still need this one to anchor the FF
							// initialization sequence.
							if all_zero(data) && (ff_init == 0 || die.is_cpe_empty(x, y)) {
								continue
							}
						}
						if iteration == 1 {
							if !scrub_set {
								scrubaddr = wr.write_offset()
								scrub_set = true
							}
							if ff_init != 0 {
								// Export CPE data with the initial FF
								// state bits masked off.
								data = data[:40]
								for i := 0; i < 4; i++ {
									switch (ff_init >> (i * 2)) & 0x03 {
									case FF_INIT_RESET:
										data[i*10+8] &^= 0x30
									case FF_INIT_SET:
										data[i*10+8] &^= 0xc0
									}
								}
							}
						}
						if iteration == 2 {
							if ff_init == 0 {
								continue
							}
							data = data[:40]
						}
					}
					data = trim_trailing_zeros(data)
					wr.write_cmd_lxlys(byte(x), byte(y))
					wr.write_block(CMD_DLCU, data)
				}
			}
		}

		// SERDES and the closing status word.
		var flags byte = CFG_CPE_RESET
		if len(die.serdes_cfg) != 0 {
			wr.write_block(CMD_SERDES, die.serdes_cfg)
			flags |= CFG_SERDES
		}
		var status = make([]byte, STATUS_CFG_SIZE)
		copy(status, die.get_status())
		var pll_configured = pll_written
		if (opts.Background || opts.HasBootAddr) && !pll_configured {
			status[1] |= STATUS_AUTO_CLK
		}
		if d == 0 {
			flags |= CFG_DONE
			if !opts.Background {
				flags |= CFG_STOP
			}
			if opts.HasBootAddr {
				flags |= CFG_RECONFIG
			}
			if opts.Reconfig {
				flags |= CFG_CPE_CFG
			}
		}
		var body = make([]byte, STATUS_CFG_SIZE)
		copy(body, status)
		body[0] |= flags
		body[2] |= 0x33
		body[3] |= 0x33
		wr.write_cmd_chg_status(body)

		if d == 0 && die.is_using_cfg_gpios() {
			var extra = make([]byte, STATUS_CFG_SIZE)
			copy(extra, status)
			extra[0] |= CFG_DONE
			extra[2] |= 0x33
			extra[3] |= 0x33
			wr.write_cmd_chg_status(extra)
		}

		if d == 0 {
			if opts.HasBootAddr && !opts.Background {
				wr.write_cmd_jump(opts.BootAddr)
			} else if opts.Background && !opts.HasBootAddr && scrub_set {
				wr.write_cmd_jump(uint32(scrubaddr))
			}
		}
	}
	return wr.data
}
