package depot

import (
	"testing"

	"github.com/TheBitDrifter/mask"
)

func newTestChunk(components ...Component) *Chunk {
	s := newSchema()
	signature, _ := s.signature(components...)
	return newChunk(newArchetype(1, signature, components...))
}

func TestChunkRemove(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		remove    int
		wantMoved int
	}{
		{"First row", 3, 0, 2},
		{"Middle row", 3, 1, 2},
		{"Last row", 3, 2, 2},
		{"Only row", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := newTestChunk("value")
			for i := 0; i < tt.rows; i++ {
				chunk.add(Entity{Index: uint32(i)}, ComponentValues{"value": i})
			}

			moved := chunk.remove(tt.remove)

			if moved.Index != uint32(tt.wantMoved) {
				t.Errorf("remove() returned entity %d, want %d", moved.Index, tt.wantMoved)
			}
			if chunk.Len() != tt.rows-1 {
				t.Errorf("Len() = %d, want %d", chunk.Len(), tt.rows-1)
			}
			if tt.remove < chunk.Len() {
				if got := chunk.Get(tt.remove, "value"); got != tt.wantMoved {
					t.Errorf("row %d holds %v, want the moved value %d", tt.remove, got, tt.wantMoved)
				}
				if chunk.Entity(tt.remove) != moved {
					t.Errorf("row %d holds entity %v, want %v", tt.remove, chunk.Entity(tt.remove), moved)
				}
			}
		})
	}
}

func TestChunkClone(t *testing.T) {
	chunk := newTestChunk("a", "b")
	chunk.add(Entity{Index: 0}, ComponentValues{"a": 1, "b": 2})

	row := chunk.clone(0, Entity{Index: 7})

	if row != 1 {
		t.Fatalf("clone() row = %d, want 1", row)
	}
	if chunk.Get(1, "a") != 1 || chunk.Get(1, "b") != 2 {
		t.Errorf("cloned row = %v, %v; want 1, 2", chunk.Get(1, "a"), chunk.Get(1, "b"))
	}
	if chunk.Entity(1).Index != 7 {
		t.Errorf("cloned row entity = %v, want index 7", chunk.Entity(1))
	}
}

func TestChunkCopyTo(t *testing.T) {
	s := newSchema()
	srcSig, _ := s.signature("a", "b")
	destSig, _ := s.signature("b", "c")
	src := newChunk(newArchetype(1, srcSig, "a", "b"))
	dest := newChunk(newArchetype(2, destSig, "b", "c"))

	en := Entity{Index: 3}
	src.add(en, ComponentValues{"a": 1, "b": 2})
	row := src.copyTo(0, dest, en)

	if dest.Len() != 1 || row != 0 {
		t.Fatalf("copyTo() row = %d with %d rows, want row 0 of 1", row, dest.Len())
	}
	if got := dest.Get(row, "b"); got != 2 {
		t.Errorf("shared column b = %v, want 2", got)
	}
	if got := dest.Get(row, "c"); got != nil {
		t.Errorf("destination-only column c = %v, want nil", got)
	}
	if dest.Has("a") {
		t.Errorf("destination gained source-only column a")
	}
	if src.Len() != 1 {
		t.Errorf("copyTo() changed the source chunk")
	}
}

func TestChunkUnknownColumn(t *testing.T) {
	chunk := newTestChunk("a")
	chunk.add(Entity{}, ComponentValues{"a": 1})

	chunk.Set(0, "b", 5)
	if got := chunk.Get(0, "b"); got != nil {
		t.Errorf("Get() of a column the archetype lacks = %v, want nil", got)
	}
}

func TestArchetypeSignatureIgnoresOrder(t *testing.T) {
	s := newSchema()
	first, _ := s.signature("a", "b", "c")
	second, _ := s.signature("c", "a", "b")
	if first != second {
		t.Errorf("signature depends on declaration order")
	}
	if first == (mask.Mask{}) {
		t.Errorf("signature of three components is empty")
	}
}
