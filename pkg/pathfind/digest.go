package pathfind

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the step log, path and outcome with xxhash. Duration is
// excluded, so two runs of the same algorithm on equal grids yield the
// same digest.
func (r Result) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}
	writePositions := func(ps []Position) {
		writeInt(len(ps))
		for _, p := range ps {
			writeInt(p.Row)
			writeInt(p.Col)
		}
	}

	_, _ = d.WriteString(string(r.Algorithm))
	for _, s := range r.Steps {
		_, _ = d.WriteString(s.Description)
		if s.Current != nil {
			writeInt(s.Current.Row)
			writeInt(s.Current.Col)
		} else {
			writeInt(-1)
			writeInt(-1)
		}
		writePositions(s.Visited)
		writePositions(s.Frontier)
		writePositions(s.Path)
		writeInt(len(s.Distances))
		for _, v := range s.Distances {
			writeInt(v)
		}
	}
	writePositions(r.Path)
	writeInt(r.CellsExplored)
	if r.Success {
		writeInt(1)
	} else {
		writeInt(0)
	}
	return d.Sum64()
}
