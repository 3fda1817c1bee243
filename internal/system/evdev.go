package system

import "encoding/binary"

// From linux/input-event-codes.h.
const (
	evKey = 0x01
	keyF4 = 62

	keyValueDown = 1
)

// eventLayout decodes a stream of little-endian struct input_event records.
type eventLayout struct {
	timevalSize int
}

func (l eventLayout) size() int { return l.timevalSize + 2 + 2 + 4 }

// keyDown reports whether buf holds a press of the given key code.
// A trailing partial record is ignored.
func (l eventLayout) keyDown(buf []byte, code uint16) bool {
	size := l.size()
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off+l.timevalSize : off+size]
		typ := binary.LittleEndian.Uint16(rec[0:2])
		c := binary.LittleEndian.Uint16(rec[2:4])
		value := int32(binary.LittleEndian.Uint32(rec[4:8]))
		if typ == evKey && c == code && value == keyValueDown {
			return true
		}
	}
	return false
}

type keyboardExitLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}
