package identity

import (
	"context"
	"testing"
)

func TestFileProviderMintsStableHandle(t *testing.T) {
	base := t.TempDir()
	p := File(base, "")
	ctx := context.Background()

	first, err := p.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if first == "" {
		t.Fatal("expected a generated handle")
	}

	second, err := File(base, "").Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if first != second {
		t.Fatalf("handle not stable across loads: %q != %q", first, second)
	}
}

func TestTokenShortCircuitsAnonymousFlow(t *testing.T) {
	p := File(t.TempDir(), "  custom-token  ")
	got, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got != "custom-token" {
		t.Fatalf("expected token handle, got %q", got)
	}
}

func TestNotifyDeliversCurrentHandle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := File(t.TempDir(), "tok")
	ch, err := p.Notify(ctx)
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := <-ch; got != "tok" {
		t.Fatalf("expected handle on channel, got %q", got)
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected channel close after cancel")
	}
}
