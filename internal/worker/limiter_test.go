package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://www.dekamer.be/doc/PCRI/html/56/ip001x.html"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(1, 1)
	url := "https://www.dekamer.be/a"

	if !limiter.Allow(url) {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("https://www.dekamer.be/b") {
		t.Error("second request to the same host should be limited")
	}
	if !limiter.Allow("https://other.example/") {
		t.Error("other host should pass")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("https://www.dekamer.be/") {
			t.Fatalf("request %d limited with rate 0", i)
		}
	}
}

func TestLimiter_SetHostDelay(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetHostDelay("slow.example", 10*time.Second)

	if !limiter.Allow("http://slow.example/") {
		t.Error("first request should pass")
	}
	if limiter.Allow("http://slow.example/") {
		t.Error("second request should wait for the crawl delay")
	}
	if !limiter.Allow("http://fast.example/") {
		t.Error("other host should pass")
	}

	// A delay faster than the default rate does not speed a host up
	limiter.SetHostDelay("fast.example", time.Millisecond)
	if got := limiter.limiter("fast.example").Limit(); got != 10 {
		t.Errorf("fast.example limit = %v, want 10", got)
	}
}

func TestHostOf(t *testing.T) {
	host, err := hostOf("https://www.dekamer.be/kvvcr/showpage.cfm")
	if err != nil {
		t.Fatalf("hostOf failed: %v", err)
	}
	if host != "www.dekamer.be" {
		t.Errorf("expected www.dekamer.be, got %s", host)
	}

	if _, err := hostOf("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
