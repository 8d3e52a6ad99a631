package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Textual device configuration.
 *
 * Description:	The human readable form of a chip.  Sections:
 *
 *		.device <name>
 *		.tile <die> <x> <y>	tile words
 *		.bram <die> <x> <y>	block RAM words
 *		.bram_init <die> <x> <y>  memory image, 32 hex bytes a line
 *		.config <die>		PLL/clocking/status words
 *		.serdes <die>		SERDES words
 *		.d2d <die> <hex>	die-to-die routing byte
 *
 *		A section ends at a blank line or at the next verb.
 *		Word values are bit strings as printed by the bit
 *		databases, most significant bit first.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type CfgLoc struct {
	Die int
	X   int
	Y   int
}

type ChipConfig struct {
	ChipName  string
	tiles     map[CfgLoc]*TileConfig
	brams     map[CfgLoc]*TileConfig
	bram_data map[CfgLoc][]byte
	configs   map[int]*TileConfig
	serdes    map[int]*TileConfig
	d2d       map[int]byte
}

func new_chip_config() *ChipConfig {
	return &ChipConfig{
		tiles:     make(map[CfgLoc]*TileConfig),
		brams:     make(map[CfgLoc]*TileConfig),
		bram_data: make(map[CfgLoc][]byte),
		configs:   make(map[int]*TileConfig),
		serdes:    make(map[int]*TileConfig),
		d2d:       make(map[int]byte),
	}
}

// Section order within a die follows the grid, rows before columns.
func sorted_locs(m map[CfgLoc]*TileConfig) []CfgLoc {
	var locs = make([]CfgLoc, 0, len(m))
	for loc := range m {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].Die != locs[j].Die {
			return locs[i].Die < locs[j].Die
		}
		if locs[i].Y != locs[j].Y {
			return locs[i].Y < locs[j].Y
		}
		return locs[i].X < locs[j].X
	})
	return locs
}

func (cc *ChipConfig) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ".device %s\n\n", cc.ChipName)
	for _, loc := range sorted_locs(cc.tiles) {
		var tc = cc.tiles[loc]
		if tc.empty() {
			continue
		}
		fmt.Fprintf(&sb, ".tile %d %d %d\n", loc.Die, loc.X, loc.Y)
		sb.WriteString(tc.String())
		sb.WriteByte('\n')
	}
	for _, loc := range sorted_locs(cc.brams) {
		var tc = cc.brams[loc]
		if tc.empty() {
			continue
		}
		fmt.Fprintf(&sb, ".bram %d %d %d\n", loc.Die, loc.X, loc.Y)
		sb.WriteString(tc.String())
		sb.WriteByte('\n')
	}
	var data_locs = make([]CfgLoc, 0, len(cc.bram_data))
	for loc := range cc.bram_data {
		data_locs = append(data_locs, loc)
	}
	sort.Slice(data_locs, func(i, j int) bool {
		var a, b = data_locs[i], data_locs[j]
		if a.Die != b.Die {
			return a.Die < b.Die
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for _, loc := range data_locs {
		var data = cc.bram_data[loc]
		if all_zero(data) {
			continue
		}
		fmt.Fprintf(&sb, ".bram_init %d %d %d\n", loc.Die, loc.X, loc.Y)
		for i, b := range data {
			fmt.Fprintf(&sb, "%02x", b)
			if i%32 == 31 {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		if len(data)%32 != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	for d := 0; d < 4; d++ {
		if tc, ok := cc.configs[d]; ok && !tc.empty() {
			fmt.Fprintf(&sb, ".config %d\n", d)
			sb.WriteString(tc.String())
			sb.WriteByte('\n')
		}
	}
	for d := 0; d < 4; d++ {
		if tc, ok := cc.serdes[d]; ok && !tc.empty() {
			fmt.Fprintf(&sb, ".serdes %d\n", d)
			sb.WriteString(tc.String())
			sb.WriteByte('\n')
		}
	}
	for d := 0; d < 4; d++ {
		if val, ok := cc.d2d[d]; ok && val != 0 {
			fmt.Fprintf(&sb, ".d2d %d %02x\n\n", d, val)
		}
	}
	return sb.String()
}

/*-------------------------------------------------------------
 *
 * Function:	ChipConfigFromString
 *
 * Purpose:	Parse a textual configuration.  Fails on the first
 *		unrecognised verb or malformed line.
 *
 *--------------------------------------------------------------*/

func ChipConfigFromString(config string) (*ChipConfig, error) {
	var cc = new_chip_config()
	var lines = strings.Split(config, "\n")
	var i = 0

	var parse_loc = func(fields []string) (CfgLoc, error) {
		if len(fields) != 4 {
			return CfgLoc{}, fmt.Errorf("%s needs die, x and y", fields[0])
		}
		var loc CfgLoc
		var err error
		if loc.Die, err = strconv.Atoi(fields[1]); err != nil {
			return CfgLoc{}, err
		}
		if loc.X, err = strconv.Atoi(fields[2]); err != nil {
			return CfgLoc{}, err
		}
		if loc.Y, err = strconv.Atoi(fields[3]); err != nil {
			return CfgLoc{}, err
		}
		return loc, nil
	}

	// Collect the word lines of the current section.
	var parse_words = func() (*TileConfig, error) {
		var tc = new(TileConfig)
		for i < len(lines) {
			var line = strings.TrimSpace(lines[i])
			if line == "" || strings.HasPrefix(line, ".") {
				break
			}
			if err := tc.parse_line(line); err != nil {
				return nil, err
			}
			i++
		}
		return tc, nil
	}

	for i < len(lines) {
		var line = strings.TrimSpace(lines[i])
		i++
		if line == "" {
			continue
		}
		var fields = strings.Fields(line)
		switch fields[0] {
		case ".device":
			if len(fields) != 2 {
				return nil, fmt.Errorf(".device needs a name")
			}
			cc.ChipName = fields[1]
		case ".tile":
			var loc, err = parse_loc(fields)
			if err != nil {
				return nil, err
			}
			var tc, werr = parse_words()
			if werr != nil {
				return nil, werr
			}
			cc.tiles[loc] = tc
		case ".bram":
			var loc, err = parse_loc(fields)
			if err != nil {
				return nil, err
			}
			var tc, werr = parse_words()
			if werr != nil {
				return nil, werr
			}
			cc.brams[loc] = tc
		case ".bram_init":
			var loc, err = parse_loc(fields)
			if err != nil {
				return nil, err
			}
			var data []byte
			for i < len(lines) {
				var hexline = strings.TrimSpace(lines[i])
				if hexline == "" || strings.HasPrefix(hexline, ".") {
					break
				}
				for _, tok := range strings.Fields(hexline) {
					var val, perr = strconv.ParseUint(tok, 16, 8)
					if perr != nil {
						return nil, fmt.Errorf("bad hex byte %q in .bram_init", tok)
					}
					data = append(data, byte(val))
				}
				i++
			}
			cc.bram_data[loc] = data
		case ".config":
			if len(fields) != 2 {
				return nil, fmt.Errorf(".config needs a die")
			}
			var die, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, err
			}
			var tc, werr = parse_words()
			if werr != nil {
				return nil, werr
			}
			cc.configs[die] = tc
		case ".serdes":
			if len(fields) != 2 {
				return nil, fmt.Errorf(".serdes needs a die")
			}
			var die, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, err
			}
			var tc, werr = parse_words()
			if werr != nil {
				return nil, werr
			}
			cc.serdes[die] = tc
		case ".d2d":
			if len(fields) != 3 {
				return nil, fmt.Errorf(".d2d needs a die and a value")
			}
			var die, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, err
			}
			var val, perr = strconv.ParseUint(fields[2], 16, 8)
			if perr != nil {
				return nil, fmt.Errorf("bad .d2d value %q", fields[2])
			}
			cc.d2d[die] = byte(val)
		default:
			return nil, fmt.Errorf("unrecognised config entry %s", fields[0])
		}
	}
	if cc.ChipName == "" {
		return nil, fmt.Errorf("missing .device entry")
	}
	return cc, nil
}

/*-------------------------------------------------------------
 *
 * Function:	(*ChipConfig) ToChip
 *
 * Purpose:	Build the in-memory chip from the textual form by
 *		packing every section through its bit database.
 *
 *--------------------------------------------------------------*/

func (cc *ChipConfig) ToChip() (*Chip, error) {
	var chip, err = NewChip(cc.ChipName)
	if err != nil {
		return nil, err
	}
	for loc, tc := range cc.tiles {
		if loc.Die < 0 || loc.Die >= chip.num_dies() {
			return nil, fmt.Errorf(".tile die %d out of range", loc.Die)
		}
		if loc.X < 0 || loc.X >= MAX_COLS || loc.Y < 0 || loc.Y >= MAX_ROWS {
			return nil, fmt.Errorf(".tile %d %d out of range", loc.X, loc.Y)
		}
		var db = new_tile_bit_database(loc.X, loc.Y)
		var data, derr = db.config_to_data(tc)
		if derr != nil {
			return nil, derr
		}
		chip.get_die(loc.Die).write_latch(loc.X, loc.Y, data[:LATCH_BLOCK_SIZE-1])
		chip.get_die(loc.Die).write_ff_init(loc.X, loc.Y, data[LATCH_BLOCK_SIZE-1])
	}
	var ram_db = new_ram_bit_database()
	for loc, tc := range cc.brams {
		if loc.Die < 0 || loc.Die >= chip.num_dies() {
			return nil, fmt.Errorf(".bram die %d out of range", loc.Die)
		}
		if loc.X < 0 || loc.X >= MAX_RAM_COLS || loc.Y < 0 || loc.Y >= MAX_RAM_ROWS {
			return nil, fmt.Errorf(".bram %d %d out of range", loc.X, loc.Y)
		}
		var data, derr = ram_db.config_to_data(tc)
		if derr != nil {
			return nil, derr
		}
		chip.get_die(loc.Die).write_ram(loc.X, loc.Y, data)
	}
	for loc, data := range cc.bram_data {
		if loc.Die < 0 || loc.Die >= chip.num_dies() {
			return nil, fmt.Errorf(".bram_init die %d out of range", loc.Die)
		}
		if loc.X < 0 || loc.X >= MAX_RAM_COLS || loc.Y < 0 || loc.Y >= MAX_RAM_ROWS {
			return nil, fmt.Errorf(".bram_init %d %d out of range", loc.X, loc.Y)
		}
		if err := chip.get_die(loc.Die).write_ram_data(loc.X, loc.Y, data, 0); err != nil {
			return nil, err
		}
	}
	var cfg_db = new_config_bit_database()
	for d, tc := range cc.configs {
		if d < 0 || d >= chip.num_dies() {
			return nil, fmt.Errorf(".config die %d out of range", d)
		}
		var data, derr = cfg_db.config_to_data(tc)
		if derr != nil {
			return nil, derr
		}
		copy(chip.get_die(d).die_cfg[:], data)
	}
	var serdes_db = new_serdes_bit_database()
	for d, tc := range cc.serdes {
		if d < 0 || d >= chip.num_dies() {
			return nil, fmt.Errorf(".serdes die %d out of range", d)
		}
		var data, derr = serdes_db.config_to_data(tc)
		if derr != nil {
			return nil, derr
		}
		chip.get_die(d).serdes_cfg = data
	}
	for d, val := range cc.d2d {
		if d < 0 || d >= chip.num_dies() {
			return nil, fmt.Errorf(".d2d die %d out of range", d)
		}
		chip.get_die(d).d2d = val
	}
	return chip, nil
}

/*-------------------------------------------------------------
 *
 * Function:	ChipConfigFromChip
 *
 * Purpose:	Expand a chip into the textual form.  Empty entities
 *		are omitted; everything else goes through its bit
 *		database so unknown bits survive as UNKNOWN words.
 *
 *--------------------------------------------------------------*/

func ChipConfigFromChip(chip *Chip) *ChipConfig {
	var cc = new_chip_config()
	cc.ChipName = chip.Name()
	var ram_db = new_ram_bit_database()
	var cfg_db = new_config_bit_database()
	var serdes_db = new_serdes_bit_database()
	for d := 0; d < chip.num_dies(); d++ {
		var die = chip.get_die(d)
		for y := 0; y < MAX_ROWS; y++ {
			for x := 0; x < MAX_COLS; x++ {
				if die.is_latch_empty(x, y) {
					continue
				}
				var db = new_tile_bit_database(x, y)
				cc.tiles[CfgLoc{Die: d, X: x, Y: y}] = db.data_to_config(die.get_latch_config(x, y))
			}
		}
		for y := 0; y < MAX_RAM_ROWS; y++ {
			for x := 0; x < MAX_RAM_COLS; x++ {
				if die.is_ram_empty(x, y) {
					continue
				}
				var loc = CfgLoc{Die: d, X: x, Y: y}
				cc.brams[loc] = ram_db.data_to_config(die.get_ram_config(x, y))
				if !die.is_ram_data_empty(x, y) {
					var data = make([]byte, MEMORY_SIZE)
					copy(data, die.get_ram_data(x, y))
					cc.bram_data[loc] = data
				}
			}
		}
		if !die.is_die_cfg_empty() {
			cc.configs[d] = cfg_db.data_to_config(die.die_cfg[:])
		}
		if !all_zero(die.serdes_cfg) {
			cc.serdes[d] = serdes_db.data_to_config(die.serdes_cfg)
		}
		if die.d2d != 0 {
			cc.d2d[d] = die.d2d
		}
	}
	return cc
}
