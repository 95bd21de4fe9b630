// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN of the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Threats summarizes, for one side, every square it attacks and which
// of its pieces (if any) check the opposing king. Recomputed in full
// after every make rather than maintained incrementally - the spec
// decided the bookkeeping cost of incremental threat maintenance
// wasn't worth it against the simplicity of recomputation.
type Threats struct {
	Attacked Bitboard
	Checkers Bitboard
}

// ContHistIndex records the (piece, destination) pair a continuation
// history lookback needs once this ply is several plies in the past.
type ContHistIndex struct {
	Piece  Piece
	Square Square
}

// Undo is a full snapshot of everything make mutates, captured before
// the move is applied so unmake can restore it verbatim. It trades
// memory for simplicity: no move-specific inverse logic to get wrong.
type Undo struct {
	Castling  CastlingRights
	EpSquare  Square
	HasEp     bool
	Fifty     int
	Threats   Threats
	ContHist  ContHistIndex
	ByFigure  [PieceTypeArraySize][ColorArraySize]Bitboard
	Mailbox   [SquareArraySize]Piece
	Keys      zobristKeys
}

// Board is the complete mutable chess position: piece placement, side
// to move, castling/en-passant/fifty-move state, incrementally
// maintained Zobrist keys, cached threats, and the move history stack
// that make/unmake/repetition detection all walk.
type Board struct {
	ByFigure [PieceTypeArraySize][ColorArraySize]Bitboard // [PieceType][Color] occupancy
	Mailbox  [SquareArraySize]Piece

	Side     Color
	Castling CastlingRights
	EpSquare Square
	HasEp    bool
	Fifty    int
	Ply      int
	Height   int // distance from the search root, zero at root

	Keys    zobristKeys
	Threats Threats

	history []Undo
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	return &Board{Side: White}
}

// StartingPosition returns the board at the standard chess start.
func StartingPosition() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic("engine: starting FEN is malformed: " + err.Error())
	}
	return b
}

// occupied returns every occupied square.
func (b *Board) occupied() Bitboard {
	return b.ByFigure[Pawn][White] | b.ByFigure[Pawn][Black] |
		b.ByFigure[Knight][White] | b.ByFigure[Knight][Black] |
		b.ByFigure[Bishop][White] | b.ByFigure[Bishop][Black] |
		b.ByFigure[Rook][White] | b.ByFigure[Rook][Black] |
		b.ByFigure[Queen][White] | b.ByFigure[Queen][Black] |
		b.ByFigure[King][White] | b.ByFigure[King][Black]
}

// occupiedBy returns every square occupied by c.
func (b *Board) occupiedBy(c Color) Bitboard {
	var bb Bitboard
	for pt := PieceTypeMinValue; pt <= PieceTypeMaxValue; pt++ {
		bb |= b.ByFigure[pt][c]
	}
	return bb
}

// PieceAt returns the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	return b.Mailbox[sq]
}

// KingSquare returns c's king square.
func (b *Board) KingSquare(c Color) Square {
	return b.ByFigure[King][c].AsSquare()
}

func (b *Board) put(sq Square, pi Piece) {
	b.Mailbox[sq] = pi
	b.ByFigure[pi.Figure()][pi.Color()] |= sq.Bitboard()
}

func (b *Board) remove(sq Square, pi Piece) {
	b.Mailbox[sq] = NoPiece
	b.ByFigure[pi.Figure()][pi.Color()] &^= sq.Bitboard()
}

func (b *Board) relocate(from, to Square, pi Piece) {
	b.remove(from, pi)
	b.put(to, pi)
}

// attackersTo returns every piece of color by that attacks sq, given
// board occupancy occ (passed explicitly so sliding attacks can be
// probed against a hypothetical occupancy during check-evasion search).
func (b *Board) attackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	var attackers Bitboard
	attackers |= BbPawnAttack[by.Opposite()][sq] & b.ByFigure[Pawn][by]
	attackers |= BbKnightAttack[sq] & b.ByFigure[Knight][by]
	attackers |= BbKingAttack[sq] & b.ByFigure[King][by]
	bishops := b.ByFigure[Bishop][by] | b.ByFigure[Queen][by]
	attackers |= BishopAttack(sq, occ) & bishops
	rooks := b.ByFigure[Rook][by] | b.ByFigure[Queen][by]
	attackers |= RookAttack(sq, occ) & rooks
	return attackers
}

// IsAttacked reports whether sq is attacked by color by.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	return b.attackersTo(sq, by, b.occupied()) != 0
}

// computeThreats recomputes every square bySide attacks and which of
// its pieces check the opposing king.
func (b *Board) computeThreats(bySide Color) Threats {
	occ := b.occupied()
	var attacked Bitboard

	pawns := b.ByFigure[Pawn][bySide]
	if bySide == White {
		attacked |= NorthEast(pawns) | NorthWest(pawns)
	} else {
		attacked |= SouthEast(pawns) | SouthWest(pawns)
	}

	knights := b.ByFigure[Knight][bySide]
	for bb := knights; bb != 0; {
		attacked |= BbKnightAttack[bb.Pop()]
	}
	bishops := b.ByFigure[Bishop][bySide] | b.ByFigure[Queen][bySide]
	for bb := bishops; bb != 0; {
		attacked |= BishopAttack(bb.Pop(), occ)
	}
	rooks := b.ByFigure[Rook][bySide] | b.ByFigure[Queen][bySide]
	for bb := rooks; bb != 0; {
		attacked |= RookAttack(bb.Pop(), occ)
	}
	attacked |= BbKingAttack[b.KingSquare(bySide)]

	checkers := b.attackersTo(b.KingSquare(bySide.Opposite()), bySide, occ)
	return Threats{Attacked: attacked, Checkers: checkers}
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.Threats.Checkers != 0
}

// movedPiece returns the piece making move m, or NoPiece if the from
// square is empty (an invalid move).
func (b *Board) movedPiece(m Move) Piece {
	return b.PieceAt(m.From())
}

// capturedPiece returns the piece move m removes, or NoPiece.
func (b *Board) capturedPiece(m Move) Piece {
	if m.IsEnPassant() {
		return ColorFigure(b.Side.Opposite(), Pawn)
	}
	if m.IsCastle() {
		return NoPiece
	}
	return b.PieceAt(m.To())
}

// MakeMove applies m. It returns false (and leaves the board
// untouched) if m leaves the mover's own king in check, the only
// condition that turns a pseudo-legal move illegal. ub, if non-nil,
// receives the feature diff for an external NNUE accumulator.
func (b *Board) MakeMove(m Move, ub *UpdateBuffer) bool {
	if ub != nil {
		ub.clear()
	}

	from, to := m.From(), m.To()
	side := b.Side
	piece := b.movedPiece(m)
	if piece == NoPiece {
		return false
	}
	captured := b.capturedPiece(m)

	undo := Undo{
		Castling: b.Castling,
		EpSquare: b.EpSquare,
		HasEp:    b.HasEp,
		Fifty:    b.Fifty,
		Threats:  b.Threats,
		ContHist: ContHistIndex{Piece: piece, Square: m.HistoryToSquare(side)},
		ByFigure: b.ByFigure,
		Mailbox:  b.Mailbox,
		Keys:     b.Keys,
	}

	kingDest := to
	if m.IsEnPassant() {
		capSq := to.Relative(-1, 0)
		if side == Black {
			capSq = to.Relative(1, 0)
		}
		b.remove(capSq, captured)
		if ub != nil {
			ub.sub(capSq, captured)
		}
		b.relocate(from, to, piece)
		if ub != nil {
			ub.move(from, to, piece)
		}
	} else if m.IsCastle() {
		kingside := to.File() > from.File()
		rookFrom, ok := b.Castling.rookSquare(side, kingside)
		if !ok {
			return false
		}
		kingDest = castlingKingDest(side, kingside)
		rookDest := castlingRookDest(side, kingside)

		b.remove(from, piece)
		rook := ColorFigure(side, Rook)
		b.remove(rookFrom, rook)
		b.put(kingDest, piece)
		if from != kingDest {
			if ub != nil {
				ub.move(from, kingDest, piece)
			}
		} else if ub != nil {
			ub.sub(from, piece)
			ub.add(kingDest, piece)
		}
		b.put(rookDest, rook)
		if rookFrom != rookDest {
			if ub != nil {
				ub.move(rookFrom, rookDest, rook)
			}
		}
	} else if promo := m.PromotionType(); promo != NoPieceType {
		if captured != NoPiece {
			b.remove(to, captured)
			if ub != nil {
				ub.sub(to, captured)
			}
		}
		b.remove(from, piece)
		promoted := ColorFigure(side, promo)
		b.put(to, promoted)
		if ub != nil {
			ub.sub(from, piece)
			ub.add(to, promoted)
		}
	} else {
		if captured != NoPiece {
			b.remove(to, captured)
			if ub != nil {
				ub.sub(to, captured)
			}
		}
		b.relocate(from, to, piece)
		if ub != nil {
			ub.move(from, to, piece)
		}
	}

	b.HasEp = false
	b.Fifty++
	if captured != NoPiece {
		b.Fifty = 0
	}
	if piece.Figure() == Pawn {
		b.Fifty = 0
		if m.IsDoublePush() {
			epSq := from.Relative(1, 0)
			if side == Black {
				epSq = from.Relative(-1, 0)
			}
			westSq, eastSq := West(to.Bitboard()), East(to.Bitboard())
			enemyPawns := b.ByFigure[Pawn][side.Opposite()]
			if (westSq|eastSq)&enemyPawns != 0 {
				b.EpSquare = epSq
				b.HasEp = true
			}
		}
	}

	b.Side = side.Opposite()
	if b.IsAttacked(b.KingSquare(side), b.Side) {
		b.Side = side
		b.EpSquare = undo.EpSquare
		b.HasEp = undo.HasEp
		b.Fifty = undo.Fifty
		b.ByFigure = undo.ByFigure
		b.Mailbox = undo.Mailbox
		return false
	}

	keys := b.Keys
	if undo.HasEp {
		keys.toggleEnpassant(undo.EpSquare, true)
	}

	newRights := b.Castling
	if piece == ColorFigure(White, Rook) {
		newRights.clearAt(from)
	} else if piece == ColorFigure(Black, Rook) {
		newRights.clearAt(from)
	} else if piece == ColorFigure(White, King) {
		newRights.clearColor(White)
	} else if piece == ColorFigure(Black, King) {
		newRights.clearColor(Black)
	}
	newRights.clearAt(to)
	before := b.Castling
	b.Castling = newRights
	keys.toggleCastle(before, b.Castling)

	if b.HasEp {
		keys.toggleEnpassant(b.EpSquare, true)
	}
	keys.toggleColor()

	// togglePiece is its own inverse, so sub/add order doesn't matter
	// here - only that every changed (piece, square) gets XORed once.
	diff := ub
	if diff == nil {
		diff = &UpdateBuffer{}
		diffBoards(&undo, b, diff)
	}
	for i := 0; i < diff.NumSubs; i++ {
		keys.togglePiece(diff.Subs[i].Piece, diff.Subs[i].Square)
	}
	for i := 0; i < diff.NumAdds; i++ {
		keys.togglePiece(diff.Adds[i].Piece, diff.Adds[i].Square)
	}
	b.Keys = keys

	b.Ply++
	b.Height++
	b.Threats = b.computeThreats(side)
	b.history = append(b.history, undo)
	return true
}

// diffBoards reconstructs the sub/add feature diff between the undo's
// snapshot and the current mailbox, for callers of MakeMove that pass
// a nil UpdateBuffer.
func diffBoards(undo *Undo, b *Board, ub *UpdateBuffer) {
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		before, after := undo.Mailbox[sq], b.Mailbox[sq]
		if before == after {
			continue
		}
		if before != NoPiece {
			ub.sub(sq, before)
		}
		if after != NoPiece {
			ub.add(sq, after)
		}
	}
}

// UnmakeMove reverses the most recent successful MakeMove.
func (b *Board) UnmakeMove() {
	n := len(b.history)
	undo := b.history[n-1]
	b.history = b.history[:n-1]

	b.Height--
	b.Ply--
	b.Side = b.Side.Opposite()
	b.Keys = undo.Keys
	b.Castling = undo.Castling
	b.EpSquare = undo.EpSquare
	b.HasEp = undo.HasEp
	b.Fifty = undo.Fifty
	b.Threats = undo.Threats
	b.ByFigure = undo.ByFigure
	b.Mailbox = undo.Mailbox
}

// MakeNullMove passes the turn without moving a piece, used by the
// search's null-move pruning. Must not be called while in check.
func (b *Board) MakeNullMove() {
	undo := Undo{EpSquare: b.EpSquare, HasEp: b.HasEp, Threats: b.Threats, Keys: b.Keys, Fifty: b.Fifty, Castling: b.Castling, ByFigure: b.ByFigure, Mailbox: b.Mailbox}
	b.history = append(b.history, undo)

	keys := b.Keys
	if b.HasEp {
		keys.toggleEnpassant(b.EpSquare, true)
	}
	keys.toggleColor()
	b.Keys = keys

	b.HasEp = false
	b.Side = b.Side.Opposite()
	b.Ply++
	b.Height++
	b.Threats = b.computeThreats(b.Side.Opposite())
}

// UnmakeNullMove reverses the most recent MakeNullMove.
func (b *Board) UnmakeNullMove() {
	n := len(b.history)
	undo := b.history[n-1]
	b.history = b.history[:n-1]

	b.Height--
	b.Ply--
	b.Side = b.Side.Opposite()
	b.EpSquare = undo.EpSquare
	b.HasEp = undo.HasEp
	b.Threats = undo.Threats
	b.Keys = undo.Keys
}

// IsDraw reports whether the current position should be scored as a
// draw by the fifty-move rule or repetition - but never at the search
// root (Height == 0), where a draw verdict would be meaningless.
func (b *Board) IsDraw() bool {
	return (b.Fifty >= 100 || b.IsRepetition()) && b.Height != 0
}

// IsRepetition reports whether the current position has occurred
// earlier in this game: twofold if the earlier occurrence is within
// the search tree (inside Height), threefold otherwise.
func (b *Board) IsRepetition() bool {
	n := len(b.history)
	limit := b.Fifty
	if limit > n {
		limit = n
	}
	count := 0
	for distBack := 2; distBack <= limit; distBack += 2 {
		u := b.history[n-distBack]
		if u.Keys.main == b.Keys.main {
			if distBack < b.Height {
				return true
			}
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// HasInsufficientMaterial reports whether neither side has enough
// material to force checkmate. KNN vs K is deliberately NOT
// insufficient: the defender could in principle help construct mate,
// so only a forced draw would be a true insufficient-material claim,
// and this check is conservative in the other direction.
func (b *Board) HasInsufficientMaterial() bool {
	return b.sideInsufficientMaterial(White) && b.sideInsufficientMaterial(Black)
}

func (b *Board) sideInsufficientMaterial(c Color) bool {
	if b.ByFigure[Pawn][c] != 0 || b.ByFigure[Rook][c] != 0 || b.ByFigure[Queen][c] != 0 {
		return false
	}
	if b.ByFigure[Knight][c] != 0 {
		ourPieces := b.occupiedBy(c).Popcnt()
		if ourPieces > 2 {
			return false
		}
		kings := b.ByFigure[King][White] | b.ByFigure[King][Black]
		queens := b.ByFigure[Queen][White] | b.ByFigure[Queen][Black]
		theirs := b.occupiedBy(c.Opposite()) &^ kings &^ queens
		return theirs == 0
	}
	if b.ByFigure[Bishop][c] != 0 {
		bishops := b.ByFigure[Bishop][White] | b.ByFigure[Bishop][Black]
		darkSquares := Bitboard(0xAA55AA55AA55AA55)
		sameColor := bishops&^darkSquares == 0 || bishops&darkSquares == 0
		noPawns := b.ByFigure[Pawn][White] == 0 && b.ByFigure[Pawn][Black] == 0
		noKnights := b.ByFigure[Knight][White] == 0 && b.ByFigure[Knight][Black] == 0
		return sameColor && noPawns && noKnights
	}
	return true
}

// Verify performs internal consistency checks useful in tests and
// debug builds: mailbox/bitboard agreement, exactly one king per side.
func (b *Board) Verify() error {
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		pi := b.Mailbox[sq]
		if pi == NoPiece {
			continue
		}
		if b.ByFigure[pi.Figure()][pi.Color()]&sq.Bitboard() == 0 {
			return fmt.Errorf("engine: mailbox/bitboard mismatch at %v", sq)
		}
	}
	if b.ByFigure[King][White].Popcnt() != 1 {
		return fmt.Errorf("engine: white must have exactly one king")
	}
	if b.ByFigure[King][Black].Popcnt() != 1 {
		return fmt.Errorf("engine: black must have exactly one king")
	}
	return nil
}

// ParseFEN parses a position in Forsyth-Edwards Notation.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("engine: fen has too few fields")
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	b := NewBoard()
	if err := parsePiecePlacement(fields[0], b); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "w":
		b.Side = White
	case "b":
		b.Side = Black
	default:
		return nil, fmt.Errorf("engine: invalid side to move %q", fields[1])
	}
	if err := parseCastling(fields[2], b); err != nil {
		return nil, err
	}
	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("engine: invalid en passant square %q", fields[3])
		}
		b.EpSquare = sq
		b.HasEp = true
	}
	fifty, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("engine: invalid halfmove clock %q", fields[4])
	}
	b.Fifty = fifty
	fullMove, err := strconv.Atoi(fields[5])
	if err != nil {
		fullMove = 1
	}
	b.Ply = (fullMove - 1) * 2
	if b.Side == Black {
		b.Ply++
	}

	b.Keys = computeKeysFromScratch(b)
	b.Threats = b.computeThreats(b.Side.Opposite())
	return b, nil
}

func parsePiecePlacement(field string, b *Board) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("engine: fen piece placement must have 8 ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pi, ok := symbolToPiece[ch]
			if !ok {
				return fmt.Errorf("engine: invalid piece symbol %q", ch)
			}
			if file > 7 {
				return fmt.Errorf("engine: rank %d overflows", rank)
			}
			b.put(RankFile(rank, file), pi)
			file++
		}
		if file != 8 {
			return fmt.Errorf("engine: rank %d has %d files, want 8", rank, file)
		}
	}
	return nil
}

func parseCastling(field string, b *Board) error {
	if field == "-" {
		return nil
	}
	for _, ch := range field {
		switch {
		case ch == 'K':
			sq := findRookFromFile(b, White, true, 7)
			b.Castling.WK = someSquare(sq)
		case ch == 'Q':
			sq := findRookFromFile(b, White, false, 0)
			b.Castling.WQ = someSquare(sq)
		case ch == 'k':
			sq := findRookFromFile(b, Black, true, 7)
			b.Castling.BK = someSquare(sq)
		case ch == 'q':
			sq := findRookFromFile(b, Black, false, 0)
			b.Castling.BQ = someSquare(sq)
		case ch >= 'A' && ch <= 'H':
			sq := RankFile(0, int(ch-'A'))
			assignShredderFile(b, White, sq)
		case ch >= 'a' && ch <= 'h':
			sq := RankFile(7, int(ch-'a'))
			assignShredderFile(b, Black, sq)
		default:
			return fmt.Errorf("engine: invalid castling symbol %q", ch)
		}
	}
	return nil
}

// findRookFromFile locates the rook a KQkq-style castling letter
// refers to: Chess960 says this is the outermost rook to the named
// side of the king, not a fixed a/h-file rook.
func findRookFromFile(b *Board, c Color, kingside bool, orthodoxFile int) Square {
	rank := c.KingHomeRank()
	kingSq := b.ByFigure[King][c].AsSquare()
	rookPiece := ColorFigure(c, Rook)
	if kingside {
		for f := 7; f > kingSq.File(); f-- {
			sq := RankFile(rank, f)
			if b.Mailbox[sq] == rookPiece {
				return sq
			}
		}
	} else {
		for f := 0; f < kingSq.File(); f++ {
			sq := RankFile(rank, f)
			if b.Mailbox[sq] == rookPiece {
				return sq
			}
		}
	}
	return RankFile(rank, orthodoxFile)
}

func assignShredderFile(b *Board, c Color, sq Square) {
	kingSq := b.ByFigure[King][c].AsSquare()
	kingside := sq.File() > kingSq.File()
	if c == White && kingside {
		b.Castling.WK = someSquare(sq)
	} else if c == White {
		b.Castling.WQ = someSquare(sq)
	} else if kingside {
		b.Castling.BK = someSquare(sq)
	} else {
		b.Castling.BQ = someSquare(sq)
	}
}

func computeKeysFromScratch(b *Board) zobristKeys {
	var keys zobristKeys
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		if pi := b.Mailbox[sq]; pi != NoPiece {
			keys.togglePiece(pi, sq)
		}
	}
	if b.Side == Black {
		keys.toggleColor()
	}
	keys.main ^= ZobristCastle[b.Castling.asIndex()]
	if b.HasEp {
		keys.toggleEnpassant(b.EpSquare, true)
	}
	return keys
}

// String renders the board in FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := b.Mailbox[RankFile(r, f)]
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pi.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	if b.Side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(b.Castling.String())
	sb.WriteByte(' ')
	if b.HasEp {
		sb.WriteString(b.EpSquare.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Fifty))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Ply/2 + 1))
	return sb.String()
}
