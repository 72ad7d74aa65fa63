package appshell

import (
	"context"
	"testing"
)

func TestCode(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	if got := Code(live, 0); got != 0 {
		t.Fatalf("live ctx, code 0: got %d", got)
	}
	if got := Code(live, 3); got != 3 {
		t.Fatalf("live ctx, code 3: got %d", got)
	}
	if got := Code(done, 0); got != ExitInterrupted {
		t.Fatalf("cancelled ctx, code 0: got %d", got)
	}
	if got := Code(done, 1); got != 1 {
		t.Fatalf("cancelled ctx keeps failure code: got %d", got)
	}
}
