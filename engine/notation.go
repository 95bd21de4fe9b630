// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// notation.go converts between Move and the text forms callers at the
// package boundary need: UCI long algebraic notation and SAN.
package engine

import (
	"fmt"
	"strings"
)

var errNoSuchMove = fmt.Errorf("engine: no such move")

// MoveToUCI renders m in UCI's long algebraic notation, e.g. "e2e4" or
// "a7a8q". Castling is rendered using the king's real destination
// square (e.g. "e1g1"), matching what non-Chess960 GUIs expect even
// though Move itself encodes castling as king-captures-rook; a
// Chess960-aware caller that needs the rook-origin form should read
// m.To() directly instead of going through this function.
func (b *Board) MoveToUCI(m Move) string {
	from := m.From()
	to := m.To()
	if m.IsCastle() {
		to = m.HistoryToSquare(b.PieceAt(m.From()).Color())
	}
	s := from.String() + to.String()
	if promo := m.PromotionType(); promo != NoPieceType {
		s += strings.ToLower(pieceTypeToSymbol[promo])
	}
	return s
}

// UCIToMove parses a move in UCI long algebraic notation against the
// current position, recovering flags (double push, en passant,
// castling, promotion) the wire format itself doesn't carry. Accepts
// both the orthodox "e1g1" castling form and the Chess960
// king-captures-rook form, since UCI clients disagree on which one to
// send.
func (b *Board) UCIToMove(s string) (Move, error) {
	if len(s) < 4 {
		return NullMove, fmt.Errorf("engine: move %q too short", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}

	pi := b.PieceAt(from)
	if pi == NoPiece {
		return NullMove, fmt.Errorf("engine: no piece on %v", from)
	}
	side := pi.Color()

	if pi.Figure() == King {
		for _, kingside := range [2]bool{true, false} {
			rookSq, ok := b.Castling.rookSquare(side, kingside)
			if !ok {
				continue
			}
			dest := castlingKingDest(side, kingside)
			if to == rookSq || to == dest {
				return NewMove(from, rookSq, FlagCastle), nil
			}
		}
	}

	if pi.Figure() == Pawn {
		if b.HasEp && to == b.EpSquare {
			return NewMove(from, to, FlagEnPassant), nil
		}
		if abs(to.Rank()-from.Rank()) == 2 {
			return NewMove(from, to, FlagDoublePush), nil
		}
		if to.Rank() == 0 || to.Rank() == 7 {
			promoPt := Queen
			if len(s) >= 5 {
				if pt, ok := symbolToPieceType[rune(s[4])]; ok {
					promoPt = pt
				}
			}
			flag := promoFlag(promoPt, b.PieceAt(to) != NoPiece)
			return NewMove(from, to, flag), nil
		}
	}

	if b.PieceAt(to) != NoPiece {
		return NewMove(from, to, FlagCapture), nil
	}
	return NewMove(from, to, FlagQuiet), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func promoFlag(pt PieceType, capture bool) uint8 {
	var base uint8
	switch pt {
	case Knight:
		base = FlagPromoKnight
	case Bishop:
		base = FlagPromoBishop
	case Rook:
		base = FlagPromoRook
	default:
		base = FlagPromoQueen
	}
	if capture {
		base |= promoCaptureBit
	}
	return base
}

// MoveToSAN renders m in standard algebraic notation, including a
// trailing "+" or "#" computed by actually playing the move and
// checking whether the resulting position has any legal reply.
func (b *Board) MoveToSAN(m Move) string {
	pi := b.PieceAt(m.From())
	var sb strings.Builder

	switch {
	case m.IsCastle():
		if m.HistoryToSquare(pi.Color()).File() == 6 {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	default:
		if pi.Figure() != Pawn {
			sb.WriteString(pieceTypeToSymbol[pi.Figure()])
			sb.WriteString(b.disambiguate(m, pi))
		} else if m.IsCapture() {
			sb.WriteByte(byte('a' + m.From().File()))
		}
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if promo := m.PromotionType(); promo != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(pieceTypeToSymbol[promo])
		}
	}

	var ub UpdateBuffer
	if b.MakeMove(m, &ub) {
		defer b.UnmakeMove()
		if b.InCheck() {
			var ml MoveList
			b.GenerateMoves(&ml)
			hasLegal := false
			for _, reply := range ml.Moves {
				if b.MakeMove(reply, nil) {
					b.UnmakeMove()
					hasLegal = true
					break
				}
			}
			if hasLegal {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}

// disambiguate returns the minimal file/rank/square prefix needed to
// distinguish m from other legal moves of the same piece type to the
// same destination.
func (b *Board) disambiguate(m Move, pi Piece) string {
	var ml MoveList
	b.GenerateMoves(&ml)

	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range ml.Moves {
		if other == m || other.To() != m.To() {
			continue
		}
		if b.PieceAt(other.From()).Figure() != pi.Figure() {
			continue
		}
		if !b.MakeMove(other, nil) {
			continue
		}
		b.UnmakeMove()
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string(byte('a' + m.From().File()))
	case !sameRank:
		return string(byte('1' + m.From().Rank()))
	default:
		return m.From().String()
	}
}

// SANToMove parses SAN text s against the current position.
func (b *Board) SANToMove(s string) (Move, error) {
	s = strings.TrimRight(s, "+#")

	var ml MoveList
	b.GenerateMoves(&ml)

	if s == "O-O" || s == "0-0" {
		for _, m := range ml.Moves {
			if m.IsCastle() && m.HistoryToSquare(b.Side).File() == 6 {
				return m, nil
			}
		}
		return NullMove, errNoSuchMove
	}
	if s == "O-O-O" || s == "0-0-0" {
		for _, m := range ml.Moves {
			if m.IsCastle() && m.HistoryToSquare(b.Side).File() == 2 {
				return m, nil
			}
		}
		return NullMove, errNoSuchMove
	}

	for _, m := range ml.Moves {
		if b.MoveToSAN(m) == s {
			return m, nil
		}
		if strings.TrimRight(b.MoveToSAN(m), "+#") == s {
			return m, nil
		}
	}
	return NullMove, errNoSuchMove
}
