package nodescan

import "testing"

func TestFindByteLocatesEachEntry(t *testing.T) {
	var keys [16]byte
	for i := range keys {
		keys[i] = byte(i * 7)
	}
	for i := range keys {
		if got := FindByte(&keys, len(keys), keys[i]); got != i {
			t.Fatalf("FindByte(%d) = %d, want %d", keys[i], got, i)
		}
	}
}

func TestFindByteMissing(t *testing.T) {
	var keys [16]byte
	for i := range keys {
		keys[i] = byte(i * 2)
	}
	if got := FindByte(&keys, len(keys), 255); got != -1 {
		t.Fatalf("FindByte(255) = %d, want -1", got)
	}
}

func TestFindByteRespectsCount(t *testing.T) {
	var keys [16]byte
	keys[0] = 0
	keys[5] = 9
	if got := FindByte(&keys, 3, 0); got != 0 {
		t.Fatalf("FindByte(0) within count = %d, want 0", got)
	}
	if got := FindByte(&keys, 3, 9); got != -1 {
		t.Fatalf("FindByte(9) beyond count = %d, want -1 (entries beyond count must not match)", got)
	}
}

func TestFindByteAcrossLaneBoundary(t *testing.T) {
	var keys [16]byte
	for i := range keys {
		keys[i] = byte(100 + i)
	}
	if got := FindByte(&keys, 16, 107); got != 7 {
		t.Fatalf("FindByte(107) = %d, want 7", got)
	}
	if got := FindByte(&keys, 16, 108); got != 8 {
		t.Fatalf("FindByte(108) = %d, want 8", got)
	}
}

func TestInsertPositionOrdersBySignedByte(t *testing.T) {
	// signed order: 0x80 (-128) < 0xFF (-1) < 0x00 (0) < 0x7F (127)
	keys := [16]byte{0x80, 0xFF, 0x00, 0x7F}
	if got := InsertPosition(&keys, 4, 0x01); got != 3 {
		t.Fatalf("InsertPosition(0x01) = %d, want 3", got)
	}
	if got := InsertPosition(&keys, 4, 0x90); got != 1 {
		t.Fatalf("InsertPosition(0x90) = %d, want 1", got)
	}
	if got := InsertPosition(&keys, 4, 0x7F); got != 4 {
		t.Fatalf("InsertPosition(0x7F) = %d, want 4 (not strictly greater)", got)
	}
}
