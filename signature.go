package depot

import (
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

// maxKinds is the number of signature bits a mask.Mask holds, and so the
// number of kinds one storage can register.
const maxKinds = uint32(unsafe.Sizeof(mask.Mask{}) * 8)

// signatures mirrors, per entity, which registered kinds it currently holds.
// Bit positions are the kinds' schema row indices. The registry keeps it in
// step with the stores through store hooks.
type signatures []mask.Mask

func (s *signatures) mark(id EntityID, bit uint32) {
	if n := int(id) + 1; n > len(*s) {
		*s = append(*s, make([]mask.Mask, n-len(*s))...)
	}
	(*s)[id].Mark(bit)
}

func (s signatures) unmark(id EntityID, bit uint32) {
	if int(id) < len(s) {
		s[id].Unmark(bit)
	}
}

func (s signatures) empty(id EntityID) bool {
	return s.get(id) == mask.Mask{}
}

func (s signatures) get(id EntityID) mask.Mask {
	if int(id) < len(s) {
		return s[id]
	}
	var empty mask.Mask
	return empty
}

// kindMask builds the mask for kinds. It reports false if any kind is not
// registered with sto.
func kindMask(sto Storage, kinds []Kind) (mask.Mask, bool) {
	var m mask.Mask
	for _, k := range kinds {
		bit, ok := sto.rowIndex(k)
		if !ok {
			return m, false
		}
		m.Mark(bit)
	}
	return m, true
}

// registeredMask is kindMask that skips unregistered kinds instead of failing.
func registeredMask(sto Storage, kinds []Kind) mask.Mask {
	var m mask.Mask
	for _, k := range kinds {
		if bit, ok := sto.rowIndex(k); ok {
			m.Mark(bit)
		}
	}
	return m
}
