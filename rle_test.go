package zx0

import (
	"reflect"
	"testing"
)

func TestBuildRLE(t *testing.T) {
	window := []byte("aaabccccd")
	rle := make([]int, len(window))
	buildRLE(window, 0, len(window), rle)

	want := []int{3, 2, 1, 1, 4, 3, 2, 1, 1}
	if !reflect.DeepEqual(rle, want) {
		t.Fatalf("buildRLE = %v, want %v", rle, want)
	}
}

func TestBuildRLESubrange(t *testing.T) {
	window := []byte("xxxxyyyy")
	rle := make([]int, 4)
	buildRLE(window, 4, 8, rle)

	want := []int{4, 3, 2, 1}
	if !reflect.DeepEqual(rle, want) {
		t.Fatalf("buildRLE(subrange) = %v, want %v", rle, want)
	}
}

func TestBuildRLESingleByte(t *testing.T) {
	window := []byte("z")
	rle := make([]int, 1)
	buildRLE(window, 0, 1, rle)
	if rle[0] != 1 {
		t.Fatalf("buildRLE(single byte) = %v, want [1]", rle)
	}
}
