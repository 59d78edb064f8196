package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseCart(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	lines, err := parseCart(map[string]any{
		a.Hex():           float64(2),
		b.Hex():           float64(1),
		b.Hex() + "_size": "S",
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byID := map[primitive.ObjectID]cartLine{}
	for _, line := range lines {
		byID[line.ProductID] = line
	}
	require.Equal(t, 2, byID[a].Quantity)
	require.Equal(t, "M", byID[a].Size)
	require.Equal(t, 1, byID[b].Quantity)
	require.Equal(t, "S", byID[b].Size)
}

func TestParseCartStableOrder(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	items := map[string]any{a.Hex(): float64(1), b.Hex(): float64(1)}

	first, err := parseCart(items)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := parseCart(items)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestParseCartRejectsEmpty(t *testing.T) {
	_, err := parseCart(nil)
	require.Equal(t, KindValidation, KindOf(err))

	_, err = parseCart(map[string]any{})
	require.Equal(t, KindValidation, KindOf(err))
}

func TestParseCartRejectsBadSize(t *testing.T) {
	a := primitive.NewObjectID()
	_, err := parseCart(map[string]any{a.Hex() + "_size": 42})
	require.Equal(t, KindValidation, KindOf(err))

	_, err = parseCart(map[string]any{a.Hex() + "_size": ""})
	require.Equal(t, KindValidation, KindOf(err))
}

func TestParseCartRejectsBadID(t *testing.T) {
	_, err := parseCart(map[string]any{"zzz": float64(1)})
	require.Equal(t, KindValidation, KindOf(err))
}
