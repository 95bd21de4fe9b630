// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cuckoo.go implements the Hyatt/Tufts cuckoo-hashing scheme for
// detecting an upcoming repetition before it actually occurs: every
// reversible non-pawn move is a "key" (the Zobrist delta it causes)
// stored in a two-hash-function table, so a single XOR of two
// position keys can be checked for "is this the inverse of some legal
// move" in O(1) instead of replaying the game.
package engine

const cuckooTableSize = 8192

var (
	cuckooKeys  [cuckooTableSize]uint64
	cuckooMoves [cuckooTableSize]Move
)

func cuckooH1(key uint64) int { return int(key) & (cuckooTableSize - 1) }
func cuckooH2(key uint64) int { return int(key>>16) & (cuckooTableSize - 1) }

func init() {
	initCuckoo()
}

// initCuckoo populates the table with every reversible non-pawn move:
// for each piece type except the pawn, every ordered square pair it
// can move between on an otherwise empty board. Collisions are
// resolved by cuckoo hashing - on a clash the incumbent is evicted to
// its other slot, same as the reference algorithm.
func initCuckoo() {
	for c := ColorMinValue; c <= ColorMaxValue; c++ {
		for pt := Knight; pt <= King; pt++ {
			for s1 := SquareMinValue; s1 <= SquareMaxValue; s1++ {
				for s2 := s1 + 1; s2 <= SquareMaxValue; s2++ {
					if !pieceAttacksEmptyBoard(pt, s1, s2) {
						continue
					}
					pi := ColorFigure(c, pt)
					key := ZobristPiece[pi][s1] ^ ZobristPiece[pi][s2] ^ ZobristColor[White] ^ ZobristColor[Black]
					move := NewMove(s1, s2, FlagQuiet)
					insertCuckoo(key, move)
				}
			}
		}
	}
}

func pieceAttacksEmptyBoard(pt PieceType, from, to Square) bool {
	switch pt {
	case Knight:
		return BbKnightAttack[from].Has(to)
	case King:
		return BbKingAttack[from].Has(to)
	case Bishop:
		return BishopAttack(from, BbEmpty).Has(to)
	case Rook:
		return RookAttack(from, BbEmpty).Has(to)
	case Queen:
		return QueenAttack(from, BbEmpty).Has(to)
	}
	return false
}

// maxCuckooDisplacements bounds the eviction chase: 8192 slots is
// empirically sufficient for every reversible non-pawn move, so a
// chain this long means the table no longer fits and init is broken.
const maxCuckooDisplacements = 128

func insertCuckoo(key uint64, move Move) {
	for displacements := 0; ; displacements++ {
		if displacements > maxCuckooDisplacements {
			panic("engine: cuckoo table insertion failed to converge")
		}

		i := cuckooH1(key)
		if cuckooKeys[i] == 0 {
			cuckooKeys[i] = key
			cuckooMoves[i] = move
			return
		}
		key, cuckooKeys[i] = cuckooKeys[i], key
		move, cuckooMoves[i] = cuckooMoves[i], move

		i = cuckooH2(key)
		if cuckooKeys[i] == 0 {
			cuckooKeys[i] = key
			cuckooMoves[i] = move
			return
		}
		key, cuckooKeys[i] = cuckooKeys[i], key
		move, cuckooMoves[i] = cuckooMoves[i], move
	}
}

// HasUpcomingRepetition reports whether some move available ply plies
// from the root would recreate a position already seen, letting the
// search treat a position as drawn before the repetition is actually
// played out. ply is the distance from the search root (Board.Height
// at the point of the query).
func (b *Board) HasUpcomingRepetition(ply int) bool {
	n := len(b.history)
	end := b.Fifty
	if end > n {
		end = n
	}
	if end < 3 {
		return false
	}

	keyAt := func(i int) uint64 { return b.history[n-i].Keys.main }

	occ := b.occupied()
	original := b.Keys.main

	other := ^(original ^ keyAt(1))
	for i := 3; i <= end; i += 2 {
		curr := keyAt(i)
		other ^= ^(curr ^ keyAt(i-1))
		if other != 0 {
			continue
		}

		diff := original ^ curr
		slot := cuckooH1(diff)
		if cuckooKeys[slot] != diff {
			slot = cuckooH2(diff)
		}
		if cuckooKeys[slot] != diff {
			continue
		}

		mv := cuckooMoves[slot]
		if occ&RayBetween[mv.From()][mv.To()] != 0 {
			continue
		}

		if ply > i {
			return true
		}

		pi := b.Mailbox[mv.From()]
		if pi == NoPiece {
			pi = b.Mailbox[mv.To()]
		}
		return pi.Color() == b.Side
	}
	return false
}
