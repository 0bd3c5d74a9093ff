package stats

import "testing"

func TestNewLedgerStartsAtFullHealth(t *testing.T) {
	l := NewLedger(80, 25)
	if l.Health() != 80 || l.MaxHealth() != 80 {
		t.Fatalf("expected 80/80 health, got %d/%d", l.Health(), l.MaxHealth())
	}
	if l.Coins() != 25 {
		t.Fatalf("expected 25 coins, got %d", l.Coins())
	}
}

func TestNewLedgerClampsInvalidInputs(t *testing.T) {
	l := NewLedger(0, -5)
	if l.MaxHealth() != DefaultMaxHealth {
		t.Fatalf("non-positive max health should fall back to %d, got %d", DefaultMaxHealth, l.MaxHealth())
	}
	if l.Coins() != 0 {
		t.Fatalf("negative starting coins should clamp to zero, got %d", l.Coins())
	}
}

func TestTakeDamageClampsAtZero(t *testing.T) {
	l := NewLedger(50, 0)
	l.TakeDamage(70)
	if l.Health() != 0 {
		t.Fatalf("health should clamp at zero, got %d", l.Health())
	}
	l.TakeDamage(-10)
	if l.Health() != 0 {
		t.Fatalf("negative damage must be ignored")
	}
}

func TestAddHealthClampsAtMax(t *testing.T) {
	l := NewLedger(50, 0)
	l.TakeDamage(10)
	l.AddHealth(25)
	if l.Health() != 50 {
		t.Fatalf("healing should clamp at max, got %d", l.Health())
	}
	l.AddHealth(-5)
	if l.Health() != 50 {
		t.Fatalf("negative healing must be ignored")
	}
}

func TestRestoreFull(t *testing.T) {
	l := NewLedger(50, 0)
	l.TakeDamage(49)
	l.RestoreFull()
	if l.Health() != 50 {
		t.Fatalf("expected full health, got %d", l.Health())
	}
}

func TestSpendCoins(t *testing.T) {
	l := NewLedger(50, 30)
	if !l.SpendCoins(20) {
		t.Fatalf("spend within balance should succeed")
	}
	if l.Coins() != 10 {
		t.Fatalf("expected 10 coins, got %d", l.Coins())
	}
	if l.SpendCoins(11) {
		t.Fatalf("overspend should fail")
	}
	if l.Coins() != 10 {
		t.Fatalf("failed spend must not partially debit, got %d", l.Coins())
	}
	if l.SpendCoins(-1) {
		t.Fatalf("negative spend should fail")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	l := NewLedger(60, 12)
	l.TakeDamage(15)
	l.RecordVictory()
	l.RecordDefeat()
	l.RecordEnemyDefeated()
	l.RecordEnemyDefeated()

	restored := Restore(l.Snapshot())
	if restored.Health() != 45 || restored.MaxHealth() != 60 {
		t.Fatalf("health mismatch after restore: %d/%d", restored.Health(), restored.MaxHealth())
	}
	if restored.Coins() != 12 {
		t.Fatalf("coins mismatch after restore: %d", restored.Coins())
	}
	if restored.RunsWon() != 1 || restored.RunsLost() != 1 || restored.EnemiesDefeated() != 2 {
		t.Fatalf("counters mismatch after restore: %d/%d/%d", restored.RunsWon(), restored.RunsLost(), restored.EnemiesDefeated())
	}
}

func TestRestoreClampsCorruptSnapshot(t *testing.T) {
	restored := Restore(Snapshot{Health: 900, MaxHealth: 50, Coins: -3, RunsWon: -1})
	if restored.Health() != 50 {
		t.Fatalf("out-of-range health should reset to max, got %d", restored.Health())
	}
	if restored.Coins() != 0 {
		t.Fatalf("negative coins should clamp to zero, got %d", restored.Coins())
	}
	if restored.RunsWon() != 0 {
		t.Fatalf("negative counters should clamp to zero, got %d", restored.RunsWon())
	}
}
