package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

type status string

type event string

const (
	signedOut status = "signed_out"
	checking  status = "checking"
	signedIn  status = "signed_in"

	restore  event = "restore"
	accept   event = "accept"
	reject   event = "reject"
	signOut  event = "sign_out"
	unknownE event = "unknown"
)

func newMachine(t *testing.T, opts ...statemachine.Option[status, event]) *statemachine.Machine[status, event] {
	t.Helper()
	base := []statemachine.Option[status, event]{
		statemachine.WithTransition(signedOut, checking, restore),
		statemachine.WithTransition(checking, signedIn, accept),
		statemachine.WithTransition(checking, signedOut, reject),
		statemachine.WithTransition(signedIn, signedOut, signOut),
	}
	m, err := statemachine.New(signedOut, append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func TestMachine_Fire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("follows declared transitions", func(t *testing.T) {
		t.Parallel()
		m := newMachine(t)

		require.NoError(t, m.Fire(ctx, restore))
		assert.Equal(t, checking, m.Current())
		require.NoError(t, m.Fire(ctx, accept))
		assert.True(t, m.Is(signedIn))
		require.NoError(t, m.Fire(ctx, signOut))
		assert.Equal(t, signedOut, m.Current())
	})

	t.Run("rejects undeclared transitions", func(t *testing.T) {
		t.Parallel()
		m := newMachine(t)

		err := m.Fire(ctx, accept)
		require.Error(t, err)
		assert.ErrorIs(t, err, statemachine.ErrNoTransition)
		var te *statemachine.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, string(signedOut), te.State)
		assert.Equal(t, string(accept), te.Event)
		assert.Equal(t, signedOut, m.Current())

		assert.ErrorIs(t, m.Fire(ctx, ""), statemachine.ErrInvalidEvent)
		assert.False(t, m.CanFire(ctx, unknownE))
	})

	t.Run("guards veto transitions", func(t *testing.T) {
		t.Parallel()
		allowed := false
		m, err := statemachine.New(signedOut,
			statemachine.WithTransition(signedOut, checking, restore,
				statemachine.WithGuard(func(context.Context, status, event) bool { return allowed }),
			),
		)
		require.NoError(t, err)

		assert.False(t, m.CanFire(ctx, restore))
		err = m.Fire(ctx, restore)
		assert.ErrorIs(t, err, statemachine.ErrTransitionRejected)
		assert.NotErrorIs(t, err, statemachine.ErrNoTransition)

		allowed = true
		assert.True(t, m.CanFire(ctx, restore))
		require.NoError(t, m.Fire(ctx, restore))
		assert.Equal(t, checking, m.Current())
	})

	t.Run("action error aborts transition", func(t *testing.T) {
		t.Parallel()
		var calls []string
		m, err := statemachine.New(signedOut,
			statemachine.WithTransition(signedOut, checking, restore,
				statemachine.WithAction(func(_ context.Context, from, to status, _ event) error {
					calls = append(calls, string(from)+"->"+string(to))
					return nil
				}),
			),
			statemachine.WithTransition(checking, signedIn, accept,
				statemachine.WithAction(func(context.Context, status, status, event) error {
					return errors.New("boom")
				}),
			),
		)
		require.NoError(t, err)

		require.NoError(t, m.Fire(ctx, restore))
		assert.Equal(t, []string{"signed_out->checking"}, calls)

		err = m.Fire(ctx, accept)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "action failed")
		assert.Equal(t, checking, m.Current())
	})

	t.Run("observers see completed transitions", func(t *testing.T) {
		t.Parallel()
		var seen []status
		var m *statemachine.Machine[status, event]
		m = newMachine(t, statemachine.WithObserver(func(from, to status, _ event) {
			seen = append(seen, to)
			assert.Equal(t, to, m.Current())
		}))

		require.NoError(t, m.Fire(ctx, restore))
		require.NoError(t, m.Fire(ctx, reject))
		assert.Equal(t, []status{checking, signedOut}, seen)
	})
}

func TestMachine_Reset(t *testing.T) {
	t.Parallel()
	m := newMachine(t)
	require.NoError(t, m.Fire(context.Background(), restore))

	m.Reset()
	assert.Equal(t, signedOut, m.Current())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New[status, event]("")
	assert.ErrorIs(t, err, statemachine.ErrInvalidState)

	_, err = statemachine.New(signedOut, statemachine.WithTransition(signedOut, "", restore))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	assert.Panics(t, func() {
		statemachine.MustNew[status, event]("")
	})
}
