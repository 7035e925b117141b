package contract

import (
	"encoding/binary"

	"github.com/iceboxup/tic-tac-toe/sdk"
)

// ---------- Binary State Codec ----------

// codecVersion increments when the storage encoding changes.
const codecVersion uint8 = 1

// encodeGame serializes all game fields into a compact byte slice.
//
// Layout:
//
//	version | ID | meta | StakeAmount | LastActivity | Player1 | Player2? | Asset? | Board bytes
//
// Meta packs Turn and Winner into a single byte:
//
//	bits 0-1: Turn
//	bits 2-3: Winner
//
// Optional fields are stored as a flag byte followed by the data. The asset
// flag is 0 for the native sentinel, 1 for a token address.
func encodeGame(g *Game) []byte {
	out := make([]byte, 0, 32+len(g.Player1)+boardBytes)

	w8 := func(x byte) { out = append(out, x) }
	w64 := func(x uint64) {
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], x)
		out = append(out, tmp[:]...)
	}
	writeStr := func(s string) {
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(len(s)))
		out = append(out, tmp[:]...)
		out = append(out, s...)
	}

	meta := byte(g.Turn&0x3) | byte((g.Winner&0x3)<<2)

	w8(codecVersion)
	w64(g.ID)
	w8(meta)
	w64(g.StakeAmount)
	w64(g.LastActivity)
	writeStr(string(g.Player1))

	if g.Player2 != nil {
		w8(1)
		writeStr(string(*g.Player2))
	} else {
		w8(0)
	}
	if !g.StakeAsset.IsNative() {
		w8(1)
		writeStr(string(g.StakeAsset.TokenAddress()))
	} else {
		w8(0)
	}

	out = append(out, g.Board...)
	return out
}

// decodeGame reconstructs a *Game from storage bytes, ensuring no trailing
// bytes remain.
func decodeGame(b []byte) (*Game, error) {
	r := &rd{b: b}
	if r.u8() != codecVersion {
		return nil, errCorruptRecord
	}
	g := &Game{}
	g.ID = r.u64()
	meta := r.u8()
	g.Turn = Turn(meta & 0x3)
	g.Winner = Winner((meta >> 2) & 0x3)
	g.StakeAmount = r.u64()
	g.LastActivity = r.u64()
	g.Player1 = sdk.Address(r.str())

	if r.u8() == 1 {
		p2 := sdk.Address(r.str())
		g.Player2 = &p2
	}
	if r.u8() == 1 {
		g.StakeAsset = sdk.Token(sdk.Address(r.str()))
	} else {
		g.StakeAsset = sdk.Native()
	}

	g.Board = make([]byte, boardBytes)
	copy(g.Board, r.bytes(boardBytes))

	if r.fail || !r.atEnd() {
		return nil, errCorruptRecord
	}
	return g, nil
}

// rd is a binary reader over a byte slice, providing big-endian integer
// reads. A short read sets fail and makes every further read a no-op; the
// caller checks fail once at the end.
type rd struct {
	b    []byte
	i    int
	fail bool
}

func (r *rd) need(n int) bool {
	if r.fail || r.i+n > len(r.b) {
		r.fail = true
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

func (r *rd) str() string {
	l := int(r.u16())
	return string(r.bytes(l))
}

func (r *rd) atEnd() bool { return r.i == len(r.b) }
