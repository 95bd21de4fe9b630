// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScharnaglBackRank518IsOrthodox(t *testing.T) {
	want := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	require.Equal(t, want, ScharnaglBackRank(518))
}

func TestScharnaglBackRankAlwaysHasOneKingAndTwoRooks(t *testing.T) {
	for idx := 0; idx < 960; idx++ {
		rank := ScharnaglBackRank(idx)
		counts := map[PieceType]int{}
		for _, pt := range rank {
			counts[pt]++
		}
		require.Equal(t, 1, counts[King], "idx %d", idx)
		require.Equal(t, 2, counts[Rook], "idx %d", idx)
		require.Equal(t, 2, counts[Bishop], "idx %d", idx)
		require.Equal(t, 2, counts[Knight], "idx %d", idx)
		require.Equal(t, 1, counts[Queen], "idx %d", idx)
	}
}

func TestScharnaglBishopsOnOppositeColors(t *testing.T) {
	for idx := 0; idx < 960; idx++ {
		rank := ScharnaglBackRank(idx)
		var files []int
		for f, pt := range rank {
			if pt == Bishop {
				files = append(files, f)
			}
		}
		require.Len(t, files, 2)
		require.NotEqual(t, files[0]%2, files[1]%2, "idx %d", idx)
	}
}

func TestScharnaglKingBetweenRooks(t *testing.T) {
	for idx := 0; idx < 960; idx++ {
		rank := ScharnaglBackRank(idx)
		var kingFile int
		var rookFiles []int
		for f, pt := range rank {
			if pt == King {
				kingFile = f
			}
			if pt == Rook {
				rookFiles = append(rookFiles, f)
			}
		}
		require.Len(t, rookFiles, 2)
		require.True(t, rookFiles[0] < kingFile && kingFile < rookFiles[1], "idx %d", idx)
	}
}

func TestDFRCIndexRoundTrip(t *testing.T) {
	for _, white := range []int{0, 1, 518, 959} {
		for _, black := range []int{0, 259, 518, 959} {
			idx := DFRCIndex(white, black)
			gotWhite, gotBlack := SplitDFRCIndex(idx)
			require.Equal(t, white, gotWhite)
			require.Equal(t, black, gotBlack)
		}
	}
}

func TestCastlingRightsAsIndexDistinctPerCombination(t *testing.T) {
	seen := map[int]bool{}
	wings := []optionalSquare{someSquare(SquareA1), noRookSquare}
	for _, wk := range wings {
		for _, wq := range wings {
			for _, bk := range wings {
				for _, bq := range wings {
					cr := CastlingRights{WK: wk, WQ: wq, BK: bk, BQ: bq}
					idx := cr.asIndex()
					require.False(t, seen[idx], "duplicate index %d", idx)
					seen[idx] = true
				}
			}
		}
	}
	require.Len(t, seen, 16)
}

func TestCastlingRightsStringOrthodox(t *testing.T) {
	cr := CastlingRights{
		WK: someSquare(SquareH1), WQ: someSquare(SquareA1),
		BK: someSquare(SquareH8), BQ: someSquare(SquareA8),
	}
	require.Equal(t, "KQkq", cr.String())
	require.Equal(t, "-", CastlingRights{}.String())
}
