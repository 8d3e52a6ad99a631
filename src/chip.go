package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	A chip is an ordered set of identical dies.
 *
 *		CCGM1A parts come with 1, 2 or 4 dies.  Two dies sit
 *		in a 1x2 column, four dies in a 2x2 grid.  The die at
 *		grid position (x, y) has index x*(max_y+1)+y, which is
 *		also the order the PATH navigation commands walk.
 *
 *--------------------------------------------------------------*/

import "fmt"

type Chip struct {
	name string
	dies []Die
}

// NewChip builds an empty chip for a device name, resolved through
// the device table.
func NewChip(name string) (*Chip, error) {
	var info, ok = lookup_device(name)
	if !ok {
		return nil, fmt.Errorf("unknown device %s", name)
	}
	var chip = chip_for_dies(info.Dies)
	chip.name = info.Name
	return chip, nil
}

func chip_for_dies(num int) *Chip {
	return &Chip{
		name: fmt.Sprintf("CCGM1A%d", num),
		dies: make([]Die, num),
	}
}

func (c *Chip) Name() string {
	return c.name
}

func (c *Chip) num_dies() int {
	return len(c.dies)
}

func (c *Chip) get_die(i int) *Die {
	return &c.dies[i]
}

// Die grid extents for a die count.  Returns the maximum x and y
// grid coordinates.
func die_layout(num int) (int, int) {
	switch num {
	case 2:
		return 0, 1
	case 4:
		return 1, 1
	default:
		return 0, 0
	}
}
