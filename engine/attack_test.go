// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRookAttackOpenBoard(t *testing.T) {
	sq := SquareFromStringMust(t, "d4")
	attack := RookAttack(sq, BbEmpty)
	require.Equal(t, 14, attack.Popcnt())
	require.True(t, attack.Has(SquareFromStringMust(t, "d1")))
	require.True(t, attack.Has(SquareFromStringMust(t, "a4")))
	require.False(t, attack.Has(sq))
}

func TestBishopAttackBlockedByOccupancy(t *testing.T) {
	sq := SquareFromStringMust(t, "d4")
	blocker := SquareFromStringMust(t, "f6").Bitboard()
	attack := BishopAttack(sq, blocker)
	require.True(t, attack.Has(SquareFromStringMust(t, "f6")))
	require.False(t, attack.Has(SquareFromStringMust(t, "g7")))
}

func TestQueenAttackUnionsRookAndBishop(t *testing.T) {
	sq := SquareFromStringMust(t, "d4")
	occ := Bitboard(0)
	require.Equal(t, RookAttack(sq, occ)|BishopAttack(sq, occ), QueenAttack(sq, occ))
}

func TestRayBetweenEmptyWhenNotAligned(t *testing.T) {
	a := SquareFromStringMust(t, "a1")
	b := SquareFromStringMust(t, "b3")
	require.Equal(t, BbEmpty, RayBetween[a][b])
}

func TestRayBetweenExcludesEndpoints(t *testing.T) {
	a := SquareFromStringMust(t, "a1")
	b := SquareFromStringMust(t, "a4")
	between := RayBetween[a][b]
	require.False(t, between.Has(a))
	require.False(t, between.Has(b))
	require.True(t, between.Has(SquareFromStringMust(t, "a2")))
	require.True(t, between.Has(SquareFromStringMust(t, "a3")))
}

func TestRayThroughExtendsPastEndpoints(t *testing.T) {
	a := SquareFromStringMust(t, "a1")
	b := SquareFromStringMust(t, "a4")
	through := RayThrough[a][b]
	require.True(t, through.Has(SquareFromStringMust(t, "a8")))
	require.True(t, through.Has(a))
}
