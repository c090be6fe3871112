package archive

import (
	"fmt"

	"github.com/gc3dtools/librii/names"
	"github.com/gc3dtools/librii/rstream"
)

// BetterNode is one dictionary entry: a name plus the absolute stream
// position of the record it indexes (BetterNode, referenced by
// AnimChrIO.cpp's WriteDictionary call).
type BetterNode struct {
	Name      string
	StreamPos int
}

// BetterDictionary is the ordered entry list behind one BRRES section
// index (BetterDictionary).
type BetterDictionary struct {
	Nodes []BetterNode
}

const dictEntrySize = 16

// CalcDictionarySize returns the byte size of a dictionary holding n
// entries: a one-entry root header plus n 16-byte entries
// (CalcDictionarySize).
func CalcDictionarySize(n int) int {
	return (n + 1) * dictEntrySize
}

// WriteDictionary lays out dict as a flat index group at the writer's
// current position: a root entry carrying the total count, followed
// by one 16-byte entry per node (id, flag, left, right sibling index,
// a name forwarded through pool, and a data offset relative to the
// dictionary's own start).
//
// The retrieved sources exercise WriteDictionary/ReadDictionary but do
// not include the radix-tree bit-compare construction BRRES's real
// index groups use internally; this is a deliberate simplification —
// entries link as a flat ring (left/right are simply the previous and
// next index) rather than a balanced trie. Lookup by name still works
// (callers scan Nodes), and the section is still self-describing and
// round-trips; see DESIGN.md.
func WriteDictionary(dict BetterDictionary, w *rstream.Writer, pool *names.Pool) {
	dictStart := w.Pos()
	n := len(dict.Nodes)

	w.WriteU16(uint16(n))
	w.WriteU16(0)
	w.WriteU16(0)
	w.WriteU16(0)
	w.WriteS32(0)
	w.WriteS32(0)

	for i, node := range dict.Nodes {
		entryStart := w.Pos()
		w.WriteU16(uint16(i))
		flag := uint16(1)
		w.WriteU16(flag)
		left := (i - 1 + n) % n
		right := (i + 1) % n
		w.WriteU16(uint16(left))
		w.WriteU16(uint16(right))
		pool.WriteNameForward(w, entryStart, node.Name)
		w.WriteS32(int32(node.StreamPos - dictStart))
	}
}

// ReadDictionary parses a dictionary written by WriteDictionary.
func ReadDictionary(r *rstream.Reader) (BetterDictionary, error) {
	dictStart := r.Pos()

	count, err := r.U16()
	if err != nil {
		return BetterDictionary{}, err
	}
	if _, err := r.U16(); err != nil {
		return BetterDictionary{}, err
	}
	if _, err := r.U16(); err != nil {
		return BetterDictionary{}, err
	}
	if _, err := r.U16(); err != nil {
		return BetterDictionary{}, err
	}
	if _, err := r.S32(); err != nil {
		return BetterDictionary{}, err
	}
	if _, err := r.S32(); err != nil {
		return BetterDictionary{}, err
	}

	dict := BetterDictionary{}
	for i := 0; i < int(count); i++ {
		entryStart := r.Pos()
		if _, err := r.U16(); err != nil {
			return BetterDictionary{}, err
		}
		if _, err := r.U16(); err != nil {
			return BetterDictionary{}, err
		}
		if _, err := r.U16(); err != nil {
			return BetterDictionary{}, err
		}
		if _, err := r.U16(); err != nil {
			return BetterDictionary{}, err
		}
		nameRel, err := r.S32()
		if err != nil {
			return BetterDictionary{}, err
		}
		dataRel, err := r.S32()
		if err != nil {
			return BetterDictionary{}, err
		}

		restore := r.Jump(entryStart + int(nameRel))
		name, err := r.ReadNamePascal()
		restore()
		if err != nil {
			return BetterDictionary{}, fmt.Errorf("archive: dictionary entry %d: %w", i, err)
		}

		dict.Nodes = append(dict.Nodes, BetterNode{Name: name, StreamPos: dictStart + int(dataRel)})
	}
	return dict, nil
}
