package fault

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRaiseInvokesHandlerThenPanics(t *testing.T) {
	var gotOp, gotDetail string
	Install(func(op, detail string) {
		gotOp, gotDetail = op, detail
	})
	defer Install(nil)

	require.Panics(t, func() { Raise("event.NewEngine", "src must not be nil") })
	require.Equal(t, "event.NewEngine", gotOp)
	require.Equal(t, "src must not be nil", gotDetail)
}

func TestRaiseWithoutHandlerStillPanics(t *testing.T) {
	Install(nil)
	require.Panics(t, func() { Raise("op", "detail") })
}

func TestRequireNonNilRaisesOnNil(t *testing.T) {
	Install(nil)
	require.Panics(t, func() { RequireNonNil("op", "src", nil) })
}

func TestRequireNonNilPassesThroughNonNil(t *testing.T) {
	Install(nil)
	require.NotPanics(t, func() { RequireNonNil("op", "src", "value") })
}
