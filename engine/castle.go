// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"sync/atomic"
)

// chess960 is the process-wide Chess960/DFRC flag. It is written only at
// startup or on an engine option change between searches, never
// mid-search; atomic.Bool gives its reads and writes sequentially
// consistent ordering. Castling generation, make and UCI move parsing
// do not read it: they treat orthodox and Chess960 castling alike.
var chess960 atomic.Bool

// SetChess960 toggles Chess960/DFRC castling semantics process-wide.
func SetChess960(on bool) { chess960.Store(on) }

// Chess960 reports whether Chess960/DFRC semantics are active.
func Chess960() bool { return chess960.Load() }

// optionalSquare is an optional rook-origin square. noRookSquare (not
// valid) means "no castling right on this wing".
type optionalSquare struct {
	sq    Square
	valid bool
}

func someSquare(sq Square) optionalSquare { return optionalSquare{sq, true} }

var noRookSquare = optionalSquare{}

// CastlingRights holds, for each of the four wings, the square of the
// rook that may still castle there - not a boolean flag. Storing the
// rook's square (rather than "kingside/queenside") is what lets this
// same representation describe both orthodox castling and Chess960,
// where the rook can start on any file.
type CastlingRights struct {
	WK, WQ, BK, BQ optionalSquare
}

// rookSquare returns the rook-origin square for color c, kingside ks.
func (cr CastlingRights) rookSquare(c Color, kingside bool) (Square, bool) {
	var os optionalSquare
	switch {
	case c == White && kingside:
		os = cr.WK
	case c == White && !kingside:
		os = cr.WQ
	case c == Black && kingside:
		os = cr.BK
	default:
		os = cr.BQ
	}
	return os.sq, os.valid
}

func (cr *CastlingRights) clearWing(c Color, kingside bool) {
	switch {
	case c == White && kingside:
		cr.WK = noRookSquare
	case c == White && !kingside:
		cr.WQ = noRookSquare
	case c == Black && kingside:
		cr.BK = noRookSquare
	default:
		cr.BQ = noRookSquare
	}
}

// clearAt drops whichever wing (if any) has its rook-origin at sq. Used
// both when a rook moves away from its origin and when any piece lands
// on a rook's origin square.
func (cr *CastlingRights) clearAt(sq Square) {
	if cr.WK.valid && cr.WK.sq == sq {
		cr.WK = noRookSquare
	}
	if cr.WQ.valid && cr.WQ.sq == sq {
		cr.WQ = noRookSquare
	}
	if cr.BK.valid && cr.BK.sq == sq {
		cr.BK = noRookSquare
	}
	if cr.BQ.valid && cr.BQ.sq == sq {
		cr.BQ = noRookSquare
	}
}

func (cr *CastlingRights) clearColor(c Color) {
	cr.clearWing(c, true)
	cr.clearWing(c, false)
}

// asIndex packs the rights into a 0-15 value for Zobrist keying: it
// only distinguishes which of the four wings are still available, not
// which file the rook started on - the file is canonical per game
// (it never changes mid-game) so it does not need to be part of the key.
func (cr CastlingRights) asIndex() int {
	idx := 0
	if cr.WK.valid {
		idx |= 1
	}
	if cr.WQ.valid {
		idx |= 2
	}
	if cr.BK.valid {
		idx |= 4
	}
	if cr.BQ.valid {
		idx |= 8
	}
	return idx
}

func (cr CastlingRights) String() string {
	s := ""
	add := func(valid bool, ch byte) {
		if valid {
			s += string(ch)
		}
	}
	add(cr.WK.valid, 'K')
	add(cr.WQ.valid, 'Q')
	add(cr.BK.valid, 'k')
	add(cr.BQ.valid, 'q')
	if s == "" {
		return "-"
	}
	return s
}

// castlingKingDest returns the king's fixed landing square for a wing,
// relative to side. Always G or C file on the side's home rank, in
// both orthodox and Chess960 castling.
func castlingKingDest(c Color, kingside bool) Square {
	rank := c.KingHomeRank()
	if kingside {
		return RankFile(rank, 6)
	}
	return RankFile(rank, 2)
}

// castlingRookDest returns the rook's fixed landing square for a wing.
func castlingRookDest(c Color, kingside bool) Square {
	rank := c.KingHomeRank()
	if kingside {
		return RankFile(rank, 5)
	}
	return RankFile(rank, 3)
}

// scharnaglKnightPlacements lists, for each of the 10 possible pairs,
// the two file indices (within the files left over after placing
// bishops and queen) assigned to the knights, in increasing order.
var scharnaglKnightPlacements = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 2},
	{1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
}

// ScharnaglBackRank computes the back-rank piece arrangement (files
// 0-7, each a PieceType for a King/Rook/Bishop/Knight/Queen) for
// Scharnagl index idx (0..959). Index 518 reproduces the orthodox
// back rank RNBQKBNR.
func ScharnaglBackRank(idx int) [8]PieceType {
	var rank [8]PieceType
	for i := range rank {
		rank[i] = NoPieceType
	}

	// Bishops: one on a light square (B/D/F/H), one on a dark square (A/C/E/G).
	lightBishopFile := 2*(idx%4) + 1
	idx /= 4
	darkBishopFile := 2 * (idx % 4)
	idx /= 4
	rank[lightBishopFile] = Bishop
	rank[darkBishopFile] = Bishop

	// Queen: placed on the n-th empty file.
	queenSlot := idx % 6
	idx /= 6
	placeOnEmptyFile(&rank, queenSlot, Queen)

	// Knights: from the 10-entry table, indexing the *remaining* empty files.
	knights := scharnaglKnightPlacements[idx]
	emptyFiles := emptyFileList(rank)
	rank[emptyFiles[knights[0]]] = Knight
	rank[emptyFiles[knights[1]]] = Knight

	// Rooks and king fill the 3 remaining files in file order: R K R.
	emptyFiles = emptyFileList(rank)
	rank[emptyFiles[0]] = Rook
	rank[emptyFiles[1]] = King
	rank[emptyFiles[2]] = Rook

	return rank
}

func placeOnEmptyFile(rank *[8]PieceType, slot int, pt PieceType) {
	for f := 0; f < 8; f++ {
		if rank[f] == NoPieceType {
			if slot == 0 {
				rank[f] = pt
				return
			}
			slot--
		}
	}
}

func emptyFileList(rank [8]PieceType) []int {
	var files []int
	for f := 0; f < 8; f++ {
		if rank[f] == NoPieceType {
			files = append(files, f)
		}
	}
	return files
}

// DFRCIndex combines independent white/black Scharnagl indices into the
// single DFRC index used e.g. by `idx = black*960 + white`.
func DFRCIndex(white, black int) int {
	return black*960 + white
}

// SplitDFRCIndex is the inverse of DFRCIndex.
func SplitDFRCIndex(idx int) (white, black int) {
	return idx % 960, idx / 960
}
