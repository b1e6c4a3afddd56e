package http

import "testing"

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(3)
	defer rl.stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over the limit was allowed")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("unrelated client was denied")
	}
}
