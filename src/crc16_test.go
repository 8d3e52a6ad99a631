package gatemate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrc16CheckValue(t *testing.T) {
	// Standard X.25 check value.
	assert.Equal(t, uint16(0x906E), crc16_calc([]byte("123456789")))
}

func TestCrc16TableSpotValues(t *testing.T) {
	assert.Equal(t, uint16(0x0000), crc_table_x25[0])
	assert.Equal(t, uint16(0x1189), crc_table_x25[1])
	assert.Equal(t, uint16(0x0f78), crc_table_x25[255])
}

func TestCrc16Incremental(t *testing.T) {
	var data = []byte{0xd9, 0x01, 0x10, 0x00, 0xff, 0x33}
	var c = new_crc16()
	for _, b := range data {
		c.update(b)
	}
	assert.Equal(t, crc16_calc(data), c.value())
}

func TestCrc16Reset(t *testing.T) {
	var c = new_crc16()
	c.update(0xAA)
	c.update(0x55)
	c.reset()
	c.update('1')
	var tail = []byte("23456789")
	for _, b := range tail {
		c.update(b)
	}
	assert.Equal(t, uint16(0x906E), c.value())
}

func TestCrc16EmptyValue(t *testing.T) {
	// Fresh register, nothing fed: value is just the output inversion.
	var c = new_crc16()
	assert.Equal(t, uint16(0x0000), c.value())
}
