package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

func newTestDeal(id string, executedAt time.Time) *domain.Deal {
	return &domain.Deal{
		DealID:      id,
		ProductID:   "p1",
		ProductName: "Железо",
		Side:        domain.SideAsk,
		Quantity:    1,
		UnitPrice:   10000,
		ExecutedAt:  executedAt,
	}
}

func TestDealLog_Append_and_All(t *testing.T) {
	l := NewDealLog(10)
	now := time.Now()

	l.Append(newTestDeal("d1", now))
	l.Append(newTestDeal("d2", now.Add(time.Second)))

	deals := l.All()
	if len(deals) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(deals))
	}
	if deals[0].DealID != "d1" || deals[1].DealID != "d2" {
		t.Fatalf("expected chronological order, got %s, %s", deals[0].DealID, deals[1].DealID)
	}
}

func TestDealLog_All_Empty(t *testing.T) {
	l := NewDealLog(10)

	deals := l.All()
	if deals == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(deals) != 0 {
		t.Fatalf("expected 0 deals, got %d", len(deals))
	}
}

func TestDealLog_EvictsOldestWhenFull(t *testing.T) {
	l := NewDealLog(3)
	now := time.Now()

	for i := 1; i <= 5; i++ {
		l.Append(newTestDeal(fmt.Sprintf("d%d", i), now.Add(time.Duration(i)*time.Second)))
	}

	deals := l.All()
	if len(deals) != 3 {
		t.Fatalf("expected 3 retained deals, got %d", len(deals))
	}
	for i, want := range []string{"d3", "d4", "d5"} {
		if deals[i].DealID != want {
			t.Fatalf("index %d: expected %s, got %s", i, want, deals[i].DealID)
		}
	}
	if l.Len() != 3 {
		t.Fatalf("expected Len 3, got %d", l.Len())
	}
}

func TestDealLog_DefaultCapacity(t *testing.T) {
	if got := NewDealLog(0).Cap(); got != DefaultDealLogCapacity {
		t.Fatalf("expected capacity %d, got %d", DefaultDealLogCapacity, got)
	}
}

func TestDealLog_All_ReturnsCopy(t *testing.T) {
	l := NewDealLog(10)
	l.Append(newTestDeal("d1", time.Now()))

	deals := l.All()
	deals[0] = nil

	if l.All()[0] == nil {
		t.Fatal("All should return a copy; internal state was mutated")
	}
}

func TestDealLog_ConcurrentAccess(t *testing.T) {
	l := NewDealLog(DefaultDealLogCapacity)
	var wg sync.WaitGroup
	now := time.Now()

	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			l.Append(newTestDeal(fmt.Sprintf("d%d", i), now))
		}(i)
		go func() {
			defer wg.Done()
			l.All()
		}()
	}
	wg.Wait()

	if l.Len() != 200 {
		t.Fatalf("expected 200 deals, got %d", l.Len())
	}
}
