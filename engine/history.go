// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// history.go stores and updates the move-ordering history tables a
// search driver consults: butterfly (quiet-move), tactical (capture),
// continuation (lookback by earlier ply), correction (eval bias per
// pawn/piece structure) and killer moves. This package only maintains
// the tables; interpreting them (how much weight a score gets) is a
// search-layer decision.
package engine

// historyBonus is depth^2+depth, the same curve both the butterfly and
// tactical tables use to size their update.
func historyBonus(depth int) int32 {
	d := int32(depth)
	return d*d + d
}

const historyDivisor = 32767 // int16 max, the reference gravity scale.

// applyGravity nudges *val towards delta with a magnitude-proportional
// decay, so a table entry saturates instead of growing unboundedly:
// v += delta - v*|delta|/historyDivisor.
func applyGravity(val *int32, delta int32) {
	*val += delta - (*val * abs32(delta) / historyDivisor)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// ButterflyHistory scores quiet moves by (piece, destination, is the
// from-square currently attacked?, is the to-square currently
// attacked?) - a move that walks a piece out of or into an attacked
// square behaves differently enough from the ordinary case that the
// reference history keys on it separately rather than blending it in.
type ButterflyHistory struct {
	table [PieceArraySize][SquareArraySize][2][2]int32
}

func threatIndex(attacked bool) int {
	if attacked {
		return 1
	}
	return 0
}

func (h *ButterflyHistory) Get(pi Piece, to Square, fromAttacked, toAttacked bool) int32 {
	return h.table[pi][to][threatIndex(fromAttacked)][threatIndex(toAttacked)]
}

func (h *ButterflyHistory) UpdateGood(pi Piece, to Square, fromAttacked, toAttacked bool, depth int) {
	applyGravity(&h.table[pi][to][threatIndex(fromAttacked)][threatIndex(toAttacked)], historyBonus(depth))
}

func (h *ButterflyHistory) UpdateBad(pi Piece, to Square, fromAttacked, toAttacked bool, depth int) {
	applyGravity(&h.table[pi][to][threatIndex(fromAttacked)][threatIndex(toAttacked)], -historyBonus(depth))
}

func (h *ButterflyHistory) Clear() {
	for i := range h.table {
		for j := range h.table[i] {
			h.table[i][j] = [2][2]int32{}
		}
	}
}

// TacticalHistory scores captures by (piece, destination, captured type).
type TacticalHistory struct {
	table [PieceArraySize][SquareArraySize][PieceTypeArraySize]int32
}

func (h *TacticalHistory) Get(pi Piece, to Square, captured PieceType) int32 {
	return h.table[pi][to][captured]
}

func (h *TacticalHistory) UpdateGood(pi Piece, to Square, captured PieceType, depth int) {
	applyGravity(&h.table[pi][to][captured], historyBonus(depth))
}

func (h *TacticalHistory) UpdateBad(pi Piece, to Square, captured PieceType, depth int) {
	applyGravity(&h.table[pi][to][captured], -historyBonus(depth))
}

// ButterflyThreatBits reports whether m's from- and to-squares are
// attacked by the opponent in the position about to move, the two
// bits ButterflyHistory keys on alongside (piece, to).
func ButterflyThreatBits(b *Board, m Move) (fromAttacked, toAttacked bool) {
	attacked := b.Threats.Attacked
	return attacked.Has(m.From()), attacked.Has(m.To())
}

// CaptureHistoryPieceType returns the piece type a tactical-history
// lookup should key on for move m: promotions and en passant are
// folded onto Pawn, since back-rank/ep capture slots would otherwise
// sit unused.
func CaptureHistoryPieceType(b *Board, m Move) PieceType {
	if m.IsEnPassant() || m.IsPromotion() {
		return Pawn
	}
	return b.PieceAt(m.To()).Figure()
}

// ContinuationHistory scores a move by (piece,to) conditioned on an
// earlier ply's (piece,to), giving one-ply and two-ply lookback tables
// ("countermove" and "follow-up" history).
type ContinuationHistory struct {
	table [PieceArraySize][SquareArraySize][PieceArraySize][SquareArraySize]int32
}

func (h *ContinuationHistory) Get(prev ContHistIndex, pi Piece, to Square) int32 {
	return h.table[prev.Piece][prev.Square][pi][to]
}

func (h *ContinuationHistory) UpdateGood(prev ContHistIndex, pi Piece, to Square, depth int) {
	applyGravity(&h.table[prev.Piece][prev.Square][pi][to], historyBonus(depth))
}

func (h *ContinuationHistory) UpdateBad(prev ContHistIndex, pi Piece, to Square, depth int) {
	applyGravity(&h.table[prev.Piece][prev.Square][pi][to], -historyBonus(depth))
}

// KillerTable stores one killer move per ply (search height).
type KillerTable struct {
	moves [256]Move
}

func (k *KillerTable) Get(height int) Move { return k.moves[height] }

func (k *KillerTable) Insert(height int, m Move) { k.moves[height] = m }

func (k *KillerTable) Clear() {
	for i := range k.moves {
		k.moves[i] = NullMove
	}
}

// Correction history: five independent tables, each keyed by
// (side to move, a partitioned position key), that track how far a
// static evaluation has historically been off for a given structural
// signature, so the search can debias its eval without a slower
// re-evaluation.
const (
	correctionHistorySize       = 16384
	correctionHistoryGrain      = 256
	correctionHistoryWeightScale = 1024
	correctionHistoryMax        = 32 * correctionHistoryGrain
)

type correctionTable [ColorArraySize][correctionHistorySize]int32

func (t *correctionTable) index(key uint64) int { return int(key) & (correctionHistorySize - 1) }

func (t *correctionTable) get(side Color, key uint64) int32 {
	return t[side][t.index(key)]
}

func (t *correctionTable) update(side Color, key uint64, depth int, diff int32) {
	idx := t.index(key)
	entry := &t[side][idx]
	scaledDiff := diff * correctionHistoryGrain
	newWeight := int32(depth + 1)
	if newWeight > 16 {
		newWeight = 16
	}
	updated := *entry*(correctionHistoryWeightScale-newWeight) + scaledDiff*newWeight
	updated /= correctionHistoryWeightScale
	if updated > correctionHistoryMax {
		updated = correctionHistoryMax
	} else if updated < -correctionHistoryMax {
		updated = -correctionHistoryMax
	}
	*entry = updated
}

// CorrectionHistory groups the five partitioned tables the search
// uses to adjust a static evaluation towards its historical bias.
type CorrectionHistory struct {
	pawn    correctionTable
	nonPawn [ColorArraySize]correctionTable
	minor   correctionTable
	major   correctionTable
}

// Update folds one (depth, eval-vs-search-result diff) sample into
// every partitioned table, weighted per spec: w = min(16, 1+depth).
func (ch *CorrectionHistory) Update(b *Board, depth int, diff int32) {
	side := b.Side
	ch.pawn.update(side, b.Keys.pawn, depth, diff)
	ch.nonPawn[White].update(side, b.Keys.nonPawn[White], depth, diff)
	ch.nonPawn[Black].update(side, b.Keys.nonPawn[Black], depth, diff)
	ch.minor.update(side, b.Keys.minor, depth, diff)
	ch.major.update(side, b.Keys.major, depth, diff)
}

// CorrectionWeights lets the caller (a search/eval layer) control how
// much each partitioned table contributes to the final adjustment.
type CorrectionWeights struct {
	Pawn, Minor, Major, NonPawn int32
}

// Correct combines the five tables into a single eval adjustment,
// using caller-supplied weights - the core only stores and reads the
// statistics, it never decides how much to trust them.
func (ch *CorrectionHistory) Correct(b *Board, w CorrectionWeights) int32 {
	side := b.Side
	pawn := ch.pawn.get(side, b.Keys.pawn)
	white := ch.nonPawn[White].get(side, b.Keys.nonPawn[White])
	black := ch.nonPawn[Black].get(side, b.Keys.nonPawn[Black])
	minor := ch.minor.get(side, b.Keys.minor)
	major := ch.major.get(side, b.Keys.major)

	adjustment := pawn*w.Pawn + major*w.Major + minor*w.Minor + (white+black)*w.NonPawn
	return adjustment / 1024 / correctionHistoryGrain
}

// HistoryTables bundles every table a single search instance owns.
type HistoryTables struct {
	Butterfly    ButterflyHistory
	Tactical     TacticalHistory
	Continuation ContinuationHistory
	Correction   CorrectionHistory
	Killers      KillerTable
}

func (h *HistoryTables) Clear() {
	*h = HistoryTables{}
}
