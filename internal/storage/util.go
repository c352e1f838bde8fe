package storage

import "encoding/binary"

// All multi-byte integers in the on-disk format are little-endian. The
// reference C implementation treats them as host-native raw bytes; we pick
// an explicit byte order so the file format is portable across machines,
// which spec.md §6 notes as an acceptable divergence.
func getU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func putU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
