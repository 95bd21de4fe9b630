// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zobrist.go contains magic numbers used for Zobrist hashing.
//
// More information on Zobrist hashing can be found in the paper:
// http://research.cs.wisc.edu/techreports/1970/TR88.pdf

package engine

import (
	"math/rand"
)

var (
	// ZobristPiece holds one key per (piece, square).
	ZobristPiece [PieceArraySize][SquareArraySize]uint64
	// ZobristEnpassant holds one key per en-passant target square; only
	// the rank-3 and rank-6 entries are filled.
	ZobristEnpassant [SquareArraySize]uint64
	// ZobristCastle holds one key per one of the 16 combinations of the
	// four castling wings (see CastlingRights.asIndex), not per wing -
	// this matches how the right is folded into the main key on change.
	ZobristCastle [16]uint64
	// ZobristColor holds the key XORed in/out on every side-to-move flip.
	ZobristColor [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func initZobristPiece(r *rand.Rand) {
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		for pt := PieceTypeMinValue; pt <= PieceTypeMaxValue; pt++ {
			for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
				ZobristPiece[ColorFigure(col, pt)][sq] = rand64(r)
			}
		}
	}
}

func initZobristEnpassant(r *rand.Rand) {
	for sq := SquareA3; sq <= SquareH3; sq++ {
		ZobristEnpassant[sq] = rand64(r)
	}
	for sq := SquareA6; sq <= SquareH6; sq++ {
		ZobristEnpassant[sq] = rand64(r)
	}
}

func initZobristCastle(r *rand.Rand) {
	for i := range ZobristCastle {
		ZobristCastle[i] = rand64(r)
	}
}

func initZobristColor(r *rand.Rand) {
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		ZobristColor[col] = rand64(r)
	}
}

// The key tables are filled during package variable initialization,
// which runs before every init function: cuckoo.go's init builds its
// table from these keys and runs ahead of any init in this file.
var _ = initZobrist()

func initZobrist() bool {
	r := rand.New(rand.NewSource(1))
	initZobristPiece(r)
	initZobristEnpassant(r)
	initZobristCastle(r)
	initZobristColor(r)
	return true
}

// zobristKeys is the full set of incrementally maintained position
// hashes: the main key plus the partitioned keys the correction-history
// tables key on. Each is updated independently during make/unmake so
// that, e.g., a pawn-structure-only change can be detected without
// recomputing from scratch.
type zobristKeys struct {
	main      uint64
	pawn      uint64
	nonPawn   [ColorArraySize]uint64
	minor     uint64
	major     uint64
}

// togglePiece XORs piece pi at sq into every key it belongs to.
func (zk *zobristKeys) togglePiece(pi Piece, sq Square) {
	key := ZobristPiece[pi][sq]
	zk.main ^= key
	switch pi.Figure() {
	case Pawn:
		zk.pawn ^= key
	case Knight, Bishop:
		zk.nonPawn[pi.Color()] ^= key
		zk.minor ^= key
	case Rook, Queen:
		zk.nonPawn[pi.Color()] ^= key
		zk.major ^= key
	case King:
		// king motion perturbs both the minor and major correction
		// tables, matching how the reference engine folds it in.
		zk.nonPawn[pi.Color()] ^= key
		zk.minor ^= key
		zk.major ^= key
	}
}

func (zk *zobristKeys) toggleColor() {
	zk.main ^= ZobristColor[White] ^ ZobristColor[Black]
}

func (zk *zobristKeys) toggleCastle(before, after CastlingRights) {
	zk.main ^= ZobristCastle[before.asIndex()] ^ ZobristCastle[after.asIndex()]
}

func (zk *zobristKeys) toggleEnpassant(sq Square, valid bool) {
	if valid {
		zk.main ^= ZobristEnpassant[sq]
	}
}
