package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Base of the name-to-bit-range databases.
 *
 * Description:	A database maps word names to bit ranges inside a
 *		fixed-size block.  Construction enumerates the known
 *		words in a fixed order and then closes the map with a
 *		one-bit UNKNOWN_### entry for every bit nothing else
 *		claimed, so translating a block to words and back is
 *		bit-exact even where the silicon is undocumented.
 *
 *		Names and ranges must not collide; a conflict is a
 *		programming error and construction fails.
 *
 *--------------------------------------------------------------*/

import "fmt"

type word_setting_bits struct {
	start int
	end   int
}

func (w word_setting_bits) get_value(block []bool) []bool {
	var val = make([]bool, 0, w.end-w.start)
	for i := w.start; i < w.end; i++ {
		val = append(val, block[i])
	}
	return val
}

func (w word_setting_bits) set_value(block []bool, value []bool) {
	for i := w.start; i < w.end; i++ {
		block[i] = value[i-w.start]
	}
}

type base_bit_database struct {
	num_bits   int
	known_bits []bool
	words      map[string]word_setting_bits
	order      []string
}

func new_base_bit_database(num_bits int) base_bit_database {
	return base_bit_database{
		num_bits:   num_bits,
		known_bits: make([]bool, num_bits),
		words:      make(map[string]word_setting_bits),
	}
}

func (db *base_bit_database) add_word_settings(name string, start, length int) {
	if _, exists := db.words[name]; exists {
		panic(&DatabaseConflictError{Desc: fmt.Sprintf("word %s already exists in DB", name)})
	}
	for i := start; i < start+length; i++ {
		if db.known_bits[i] {
			panic(&DatabaseConflictError{Desc: fmt.Sprintf("bit %d for word %s already mapped", i, name)})
		}
		db.known_bits[i] = true
	}
	db.words[name] = word_setting_bits{start: start, end: start + length}
	db.order = append(db.order, name)
}

func (db *base_bit_database) add_unknowns() {
	for i := 0; i < db.num_bits; i++ {
		if !db.known_bits[i] {
			var name = fmt.Sprintf("UNKNOWN_%03d", i)
			db.words[name] = word_setting_bits{start: i, end: i + 1}
			db.order = append(db.order, name)
		}
	}
}

func bytes_to_bits(data []byte, num_bits int) []bool {
	var bits = make([]bool, num_bits)
	for j, val := range data {
		for i := 0; i < 8; i++ {
			if j*8+i >= num_bits {
				break
			}
			bits[j*8+i] = val&(1<<i) != 0
		}
	}
	return bits
}

func bits_to_bytes(bits []bool) []byte {
	var data = make([]byte, 0, len(bits)/8)
	for j := 0; j < len(bits)/8; j++ {
		var val byte
		for i := 0; i < 8; i++ {
			if bits[j*8+i] {
				val |= 1 << i
			}
		}
		data = append(data, val)
	}
	return data
}

func bits_empty(bits []bool) bool {
	for _, b := range bits {
		if b {
			return false
		}
	}
	return true
}

// Expand a byte block into named words.  Words whose bits are all
// clear are omitted.
func (db *base_bit_database) data_to_config(data []byte) *TileConfig {
	var cfg = new(TileConfig)
	var bits = bytes_to_bits(data, db.num_bits)
	for _, name := range db.order {
		var val = db.words[name].get_value(bits)
		if bits_empty(val) {
			continue
		}
		cfg.add_word(name, val)
	}
	return cfg
}

// Pack named words back into a byte block.
func (db *base_bit_database) config_to_data(cfg *TileConfig) ([]byte, error) {
	var bits = make([]bool, db.num_bits)
	for _, cword := range cfg.cwords {
		var ws, ok = db.words[cword.Name]
		if !ok {
			return nil, &UnknownWordError{Name: cword.Name}
		}
		if len(cword.Value) != ws.end-ws.start {
			return nil, fmt.Errorf("word %s is %d bits, value has %d",
				cword.Name, ws.end-ws.start, len(cword.Value))
		}
		ws.set_value(bits, cword.Value)
	}
	return bits_to_bytes(bits), nil
}
