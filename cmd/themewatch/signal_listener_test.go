package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/require"
)

func TestInterrupt_Multiple(t *testing.T) {
	t.Parallel()

	sigChannel := make(chan os.Signal, 1)
	ctx, cancel := context.WithCancel(context.TODO())
	sigListener := newSignalListener(sigChannel, cancel, log.NewNopLogger())

	executeReturned := make(chan error, 1)
	go func() {
		executeReturned <- sigListener.Execute()
	}()
	time.Sleep(100 * time.Millisecond)
	sigListener.Interrupt(errors.New("test error"))

	// Confirm we can call Interrupt multiple times without blocking
	interruptComplete := make(chan struct{})
	expectedInterrupts := 3
	for i := 0; i < expectedInterrupts; i += 1 {
		go func() {
			sigListener.Interrupt(nil)
			interruptComplete <- struct{}{}
		}()
	}

	receivedInterrupts := 0
	for receivedInterrupts < expectedInterrupts {
		select {
		case <-interruptComplete:
			receivedInterrupts += 1
		case <-time.After(5 * time.Second):
			t.Fatalf("could not call interrupt multiple times and return within 5 seconds, received %d interrupts", receivedInterrupts)
		}
	}

	require.Equal(t, expectedInterrupts, receivedInterrupts)
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	select {
	case err := <-executeReturned:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("execute did not return after interrupt")
	}
}
