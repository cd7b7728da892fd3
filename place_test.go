package ptn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	ptn "github.com/rafaelamscarneiro/SimplePTN"
)

func TestPlaceAccessors(t *testing.T) {
	net := ptn.New[string, uint32]()
	p, err := net.AddPlace("ID1", 1)
	require.NoError(t, err)
	require.Equal(t, "ID1", p.ID())
	require.EqualValues(t, 1, p.Tokens())
}

func TestPlaceCustomTypes(t *testing.T) {
	type berth int
	const (
		north berth = iota
		south
	)
	net := ptn.New[berth, uint8]()
	p, err := net.AddPlace(north, 3)
	require.NoError(t, err)
	require.Equal(t, north, p.ID())
	require.EqualValues(t, 3, p.Tokens())

	_, err = net.AddPlace(south, 0)
	require.NoError(t, err)
	require.Nil(t, net.FindPlace(berth(42)))
}

func TestPlaceOnChangeReplace(t *testing.T) {
	net := ptn.New[string, uint32]()
	_, err := net.AddPlace("src", 2)
	require.NoError(t, err)
	dst, err := net.AddPlace("dst", 0)
	require.NoError(t, err)
	tr, err := net.AddTransition(ptn.Sketch[string, uint32]{
		ID:       "move",
		Ingoing:  []ptn.Edge[string, uint32]{{Place: "src", Weight: 1}},
		Outgoing: []ptn.Edge[string, uint32]{{Place: "dst", Weight: 1}},
	})
	require.NoError(t, err)

	var first, second int
	dst.OnChange(func(*ptn.Place[string, uint32], uint32) { first++ })
	dst.OnChange(func(*ptn.Place[string, uint32], uint32) { second++ })

	require.True(t, tr.Fire())
	require.Zero(t, first, "replaced listener must not be invoked")
	require.Equal(t, 1, second)

	dst.OnChange(nil)
	require.True(t, tr.Fire())
	require.Equal(t, 1, second, "removed listener must not be invoked")
}
