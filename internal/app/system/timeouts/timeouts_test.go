package timeouts

import (
	"testing"
	"time"
)

func TestBudgetsWidenWithClass(t *testing.T) {
	if Ping() <= 0 {
		t.Fatal("ping budget must be positive")
	}
	if !(Ping() < Short() && Short() < Medium() && Medium() < Long()) {
		t.Errorf("budgets should widen per class: ping %v, short %v, medium %v, long %v",
			Ping(), Short(), Medium(), Long())
	}
	if Long() > time.Minute {
		t.Errorf("long budget %v should stay under a minute", Long())
	}
}
