// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCIRoundTripDoublePush(t *testing.T) {
	b := StartingPosition()
	m, err := b.UCIToMove("e2e4")
	require.NoError(t, err)
	require.Equal(t, "e2e4", b.MoveToUCI(m))
	require.True(t, m.IsDoublePush())
}

func TestUCICastlingBothNotations(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	orthodox, err := b.UCIToMove("e1g1")
	require.NoError(t, err)
	require.True(t, orthodox.IsCastle())
	require.Equal(t, "e1g1", b.MoveToUCI(orthodox))

	rookCapture, err := b.UCIToMove("e1h1")
	require.NoError(t, err)
	require.Equal(t, orthodox, rookCapture)
}

func TestUCIPromotion(t *testing.T) {
	b, err := ParseFEN("8/2P1k3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := b.UCIToMove("c7c8q")
	require.NoError(t, err)
	require.Equal(t, Queen, m.PromotionType())
	require.Equal(t, "c7c8q", b.MoveToUCI(m))
}

func TestSANDisambiguatesSameDestination(t *testing.T) {
	b2, err := ParseFEN("4k3/8/8/8/8/N7/3N4/4K3 w - - 0 1")
	require.NoError(t, err)

	var ml MoveList
	b2.GenerateMoves(&ml)

	sans := map[string]int{}
	for _, m := range ml.Moves {
		if b2.PieceAt(m.From()).Figure() == Knight && m.To() == SquareFromStringMust(t, "c4") {
			sans[b2.MoveToSAN(m)]++
		}
	}
	require.Len(t, sans, 2)
	for san := range sans {
		require.Contains(t, san, "c4")
	}
}

func TestSANCastlingNotation(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	m, err := b.UCIToMove("e1g1")
	require.NoError(t, err)
	require.Equal(t, "O-O", b.MoveToSAN(m))
}

func TestSANRoundTripViaGenerator(t *testing.T) {
	b := StartingPosition()
	var ml MoveList
	b.GenerateMoves(&ml)
	for _, m := range ml.Moves {
		san := b.MoveToSAN(m)
		parsed, err := b.SANToMove(san)
		require.NoError(t, err, san)
		require.Equal(t, m, parsed, san)
	}
}

func TestSANCheckAndMateSuffix(t *testing.T) {
	// Position after 1.f3 e5 2.g4, black to move: ...Qh4# is fool's mate.
	b, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	require.NoError(t, err)
	m, err := b.UCIToMove("d8h4")
	require.NoError(t, err)
	require.Equal(t, "Qh4#", b.MoveToSAN(m))
}
