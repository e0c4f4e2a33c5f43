package hashid

import (
	"fmt"
	"testing"
)

func TestAssignDeterministic(t *testing.T) {
	tests := []string{"", "9kWEHv8ZXKc0", "9kWEHv8ZXKc1", "abc123", "日本語"}
	for _, key := range tests {
		first := Assign(key)
		second := Assign(key)
		if first != second {
			t.Errorf("Assign(%q) not deterministic: %d vs %d", key, first, second)
		}
	}
}

func TestAssignDistinct(t *testing.T) {
	// Chunk keys for one video are the video id plus a small ordinal, so a
	// wide sample of that shape must stay collision free.
	seen := make(map[uint64]string, 20000)
	for video := 0; video < 20; video++ {
		for ordinal := 0; ordinal < 1000; ordinal++ {
			key := fmt.Sprintf("video-%d%d", video, ordinal)
			id := Assign(key)
			if prev, ok := seen[id]; ok && prev != key {
				t.Fatalf("collision: %q and %q both map to %d", prev, key, id)
			}
			seen[id] = key
		}
	}
}

func TestAssignFitsSignedColumn(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := Assign(fmt.Sprintf("key-%d", i))
		if int64(id) < 0 {
			t.Fatalf("Assign produced value %d that overflows int64", id)
		}
	}
}
