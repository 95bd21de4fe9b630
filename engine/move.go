// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Move is a 16-bit packed move: 6 bits from, 6 bits to, 4 bits flags.
//
// Castling is encoded as "king captures own rook": to is the rook's
// origin square, not the king's destination square. This is essential
// for Chess960/DFRC, where the king may already stand next to the
// castling rook (so the king's real destination can coincide with a
// square the king itself, or its own rook, occupies) and is why
// callers must never "normalize" a castle move to king-to-G/C before
// make/unmake sees it.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	moveFlagShift  = 12
	moveFromMask   = 0x3f
	moveToMask     = 0x3f
	moveFlagMask   = 0xf
)

// Move flags.
const (
	FlagQuiet       uint8 = 0
	FlagDoublePush  uint8 = 1
	FlagCastle      uint8 = 2
	FlagEnPassant   uint8 = 3
	FlagCapture     uint8 = 4
	FlagPromoKnight uint8 = 8
	FlagPromoBishop uint8 = 9
	FlagPromoRook   uint8 = 10
	FlagPromoQueen  uint8 = 11
	// Capturing promotions: FlagPromoXCapture = FlagPromoX | promoCaptureBit.
	FlagPromoKnightCapture uint8 = 12
	FlagPromoBishopCapture uint8 = 13
	FlagPromoRookCapture   uint8 = 14
	FlagPromoQueenCapture  uint8 = 15
)

const promoCaptureBit uint8 = 4

// NullMove is the zero value: A1A1 quiet, never produced by the generator.
const NullMove Move = 0

// NewMove packs from, to and flag into a Move.
func NewMove(from, to Square, flag uint8) Move {
	return Move(uint16(from&moveFromMask)<<moveFromShift |
		uint16(to&moveToMask)<<moveToShift |
		uint16(flag&moveFlagMask)<<moveFlagShift)
}

// From returns the move's source square.
func (m Move) From() Square { return Square(m>>moveFromShift) & moveFromMask }

// To returns the move's raw destination square. For castling this is
// the rook's origin square, not the king's destination - see HistoryToSquare.
func (m Move) To() Square { return Square(m>>moveToShift) & moveToMask }

// Flag returns the move's 4-bit flag.
func (m Move) Flag() uint8 { return uint8(m>>moveFlagShift) & moveFlagMask }

// IsQuiet reports a non-capturing, non-promoting, non-castling move.
func (m Move) IsQuiet() bool { return m.Flag() == FlagQuiet || m.Flag() == FlagDoublePush }

// IsCapture reports whether the move removes an enemy piece (including en passant).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || (f >= FlagPromoKnightCapture)
}

// IsEnPassant reports an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsDoublePush reports a two-square pawn advance.
func (m Move) IsDoublePush() bool { return m.Flag() == FlagDoublePush }

// IsCastle reports a castling move (king-captures-rook encoding).
func (m Move) IsCastle() bool { return m.Flag() == FlagCastle }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() >= FlagPromoKnight }

// PromotionType returns the promoted-to piece type, or NoPieceType.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	switch m.Flag() &^ promoCaptureBit {
	case FlagPromoKnight:
		return Knight
	case FlagPromoBishop:
		return Bishop
	case FlagPromoRook:
		return Rook
	case FlagPromoQueen:
		return Queen
	}
	return NoPieceType
}

// IsViolent reports whether the move can change the position's score
// significantly: captures and queen promotions.
func (m Move) IsViolent() bool {
	return m.IsCapture() || m.Flag() == FlagPromoQueen || m.Flag() == FlagPromoQueenCapture
}

// HistoryToSquare returns the logical destination square used to key
// history tables: the king's real landing square (G1/C1/G8/C8 relative
// to side) for castling moves, and To() for everything else.
func (m Move) HistoryToSquare(side Color) Square {
	if !m.IsCastle() {
		return m.To()
	}
	rank := side.KingHomeRank()
	if m.To().File() > m.From().File() {
		return RankFile(rank, 6) // kingside: G-file
	}
	return RankFile(rank, 2) // queenside: C-file
}

func (m Move) String() string {
	return m.From().String() + m.To().String()
}

// FeatureUpdate is a single add/sub piece-square delta produced by make,
// consumed by an NNUE accumulator the core itself never constructs.
type FeatureUpdate struct {
	Square Square
	Piece  Piece
}

// UpdateBuffer collects the NNUE-facing feature diff of one make. At most
// 4 adds and 4 subs are ever produced (the busiest cases are a capturing
// promotion and castling, each touching at most two squares per side of
// the diff).
type UpdateBuffer struct {
	Adds    [4]FeatureUpdate
	NumAdds int
	Subs    [4]FeatureUpdate
	NumSubs int
}

func (u *UpdateBuffer) clear() {
	u.NumAdds, u.NumSubs = 0, 0
}

func (u *UpdateBuffer) add(sq Square, pi Piece) {
	u.Adds[u.NumAdds] = FeatureUpdate{sq, pi}
	u.NumAdds++
}

func (u *UpdateBuffer) sub(sq Square, pi Piece) {
	u.Subs[u.NumSubs] = FeatureUpdate{sq, pi}
	u.NumSubs++
}

func (u *UpdateBuffer) move(from, to Square, pi Piece) {
	u.sub(from, pi)
	u.add(to, pi)
}
