package tipping_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whatssound/tipservice/internal/tipping"
)

func TestInitialStatus(t *testing.T) {
	status, err := tipping.InitialStatus(tipping.PaymentModeTest)
	require.NoError(t, err)
	assert.Equal(t, tipping.StatusTest, status)

	status, err = tipping.InitialStatus(tipping.PaymentModeLive)
	require.NoError(t, err)
	assert.Equal(t, tipping.StatusPending, status)

	_, err = tipping.InitialStatus("demo")
	assert.Error(t, err)
}

func TestTransition(t *testing.T) {
	allowed := map[tipping.Status]map[tipping.Event]tipping.Status{
		tipping.StatusPending: {
			tipping.EventConfirm: tipping.StatusCompleted,
			tipping.EventDecline: tipping.StatusFailed,
			tipping.EventFail:    tipping.StatusFailed,
		},
		tipping.StatusCompleted: {
			tipping.EventRefund: tipping.StatusRefunded,
		},
	}

	statuses := []tipping.Status{
		tipping.StatusTest, tipping.StatusPending, tipping.StatusCompleted,
		tipping.StatusFailed, tipping.StatusRefunded,
	}
	events := []tipping.Event{
		tipping.EventConfirm, tipping.EventDecline, tipping.EventFail, tipping.EventRefund,
	}

	for _, from := range statuses {
		for _, event := range events {
			t.Run(string(from)+"/"+string(event), func(t *testing.T) {
				next, err := tipping.Transition(from, event)

				expected, ok := allowed[from][event]
				if ok {
					require.NoError(t, err)
					assert.Equal(t, expected, next)
					return
				}

				var transitionErr *tipping.InvalidTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, from, transitionErr.From)
				assert.Equal(t, event, transitionErr.Event)
				assert.Empty(t, next)
			})
		}
	}
}

func TestTransition_ConfirmTwiceRejects(t *testing.T) {
	completed, err := tipping.Transition(tipping.StatusPending, tipping.EventConfirm)
	require.NoError(t, err)

	_, err = tipping.Transition(completed, tipping.EventConfirm)
	assert.Error(t, err)

	refunded, err := tipping.Transition(completed, tipping.EventRefund)
	require.NoError(t, err)
	assert.Equal(t, tipping.StatusRefunded, refunded)
}

func TestIsSettled(t *testing.T) {
	assert.True(t, tipping.IsSettled(tipping.StatusCompleted))
	assert.True(t, tipping.IsSettled(tipping.StatusTest))
	assert.False(t, tipping.IsSettled(tipping.StatusPending))
	assert.False(t, tipping.IsSettled(tipping.StatusFailed))
	assert.False(t, tipping.IsSettled(tipping.StatusRefunded))
	assert.ElementsMatch(t, []tipping.Status{tipping.StatusCompleted, tipping.StatusTest}, tipping.SettledStatuses())
}

func TestParseEvent(t *testing.T) {
	event, err := tipping.ParseEvent("refund")
	require.NoError(t, err)
	assert.Equal(t, tipping.EventRefund, event)

	_, err = tipping.ParseEvent("chargeback")
	var validationErr *tipping.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
