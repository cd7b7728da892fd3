package ptn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	ptn "github.com/rafaelamscarneiro/SimplePTN"
)

func exprNet(t *testing.T, stock uint32, weight uint32) (*ptn.Net[string, uint32], *ptn.Transition[string, uint32]) {
	t.Helper()
	net := ptn.New[string, uint32]()
	_, err := net.AddPlace("stock", stock)
	require.NoError(t, err)
	_, err = net.AddPlace("out", 0)
	require.NoError(t, err)
	tr, err := net.AddTransition(ptn.Sketch[string, uint32]{
		ID:       "drain",
		Ingoing:  []ptn.Edge[string, uint32]{{Place: "stock", Weight: weight}},
		Outgoing: []ptn.Edge[string, uint32]{{Place: "out", Weight: 1}},
	})
	require.NoError(t, err)
	return net, tr
}

func TestExprConditionGatesOnTokens(t *testing.T) {
	net, tr := exprNet(t, 3, 1)
	cond, err := ptn.ExprCondition[string, uint32](`ingoing["stock"] > 2`)
	require.NoError(t, err)
	tr.AutoFire(cond)

	net.Tick()
	require.EqualValues(t, 2, net.FindPlace("stock").Tokens())
	require.EqualValues(t, 1, net.FindPlace("out").Tokens())

	// Down to the threshold; the guard now blocks firing.
	net.Tick()
	require.EqualValues(t, 2, net.FindPlace("stock").Tokens())
	require.EqualValues(t, 1, net.FindPlace("out").Tokens())
}

func TestExprConditionReady(t *testing.T) {
	net, tr := exprNet(t, 2, 2)
	cond, err := ptn.ExprCondition[string, uint32]("ready")
	require.NoError(t, err)
	tr.AutoFire(cond)

	net.Tick()
	require.EqualValues(t, 0, net.FindPlace("stock").Tokens())
	require.EqualValues(t, 1, net.FindPlace("out").Tokens())

	net.Tick()
	require.EqualValues(t, 1, net.FindPlace("out").Tokens())
}

func TestExprConditionCompileError(t *testing.T) {
	_, err := ptn.ExprCondition[string, uint32]("1 +")
	require.Error(t, err)
}

func TestExprConditionRuntimeErrorBlocksFiring(t *testing.T) {
	net, tr := exprNet(t, 3, 1)
	cond, err := ptn.ExprCondition[string, uint32](`ingoing["absent"] > 1`)
	require.NoError(t, err)
	tr.AutoFire(cond)

	net.Tick()
	require.EqualValues(t, 3, net.FindPlace("stock").Tokens())
	require.EqualValues(t, 0, net.FindPlace("out").Tokens())
}
