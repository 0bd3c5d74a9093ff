package stats

// DefaultMaxHealth is the starting health pool for a new player.
const DefaultMaxHealth = 100

// Ledger holds the persistent player statistics the dungeon core collaborates
// with: the health pool and the coin balance, plus cumulative run counters.
// A ledger outlives individual dungeon runs. It is owned by a single session
// and mutated only from that session's turn sequence, so it carries no lock.
type Ledger struct {
	health          int
	maxHealth       int
	coins           int
	runsWon         int
	runsLost        int
	enemiesDefeated int
}

// NewLedger returns a ledger at full health with the given starting balance.
func NewLedger(maxHealth, coins int) *Ledger {
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}
	if coins < 0 {
		coins = 0
	}
	return &Ledger{health: maxHealth, maxHealth: maxHealth, coins: coins}
}

// Health returns the current health value.
func (l *Ledger) Health() int { return l.health }

// MaxHealth returns the health ceiling.
func (l *Ledger) MaxHealth() int { return l.maxHealth }

// Coins returns the current balance.
func (l *Ledger) Coins() int { return l.coins }

// RunsWon returns the number of victorious runs recorded.
func (l *Ledger) RunsWon() int { return l.runsWon }

// RunsLost returns the number of defeats recorded.
func (l *Ledger) RunsLost() int { return l.runsLost }

// EnemiesDefeated returns the cumulative defeat counter across runs.
func (l *Ledger) EnemiesDefeated() int { return l.enemiesDefeated }

// TakeDamage reduces health, clamping at zero.
func (l *Ledger) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	l.health -= amount
	if l.health < 0 {
		l.health = 0
	}
}

// AddHealth restores health, clamping at the maximum.
func (l *Ledger) AddHealth(amount int) {
	if amount <= 0 {
		return
	}
	l.health += amount
	if l.health > l.maxHealth {
		l.health = l.maxHealth
	}
}

// RestoreFull resets health to the maximum. Used when a defeated player
// retries with a fresh dungeon.
func (l *Ledger) RestoreFull() {
	l.health = l.maxHealth
}

// AddCoins credits the balance.
func (l *Ledger) AddCoins(amount int) {
	if amount <= 0 {
		return
	}
	l.coins += amount
}

// SpendCoins debits the balance. Returns false without any partial spend when
// the balance is insufficient.
func (l *Ledger) SpendCoins(amount int) bool {
	if amount < 0 {
		return false
	}
	if l.coins < amount {
		return false
	}
	l.coins -= amount
	return true
}

// RecordVictory increments the won-runs counter.
func (l *Ledger) RecordVictory() { l.runsWon++ }

// RecordDefeat increments the lost-runs counter.
func (l *Ledger) RecordDefeat() { l.runsLost++ }

// RecordEnemyDefeated increments the cumulative defeat counter.
func (l *Ledger) RecordEnemyDefeated() { l.enemiesDefeated++ }

// Snapshot captures the persistent fields for storage.
type Snapshot struct {
	Health          int `json:"health"`
	MaxHealth       int `json:"maxHealth"`
	Coins           int `json:"coins"`
	RunsWon         int `json:"runsWon"`
	RunsLost        int `json:"runsLost"`
	EnemiesDefeated int `json:"enemiesDefeated"`
}

// Snapshot returns a copy of the persistent state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Health:          l.health,
		MaxHealth:       l.maxHealth,
		Coins:           l.coins,
		RunsWon:         l.runsWon,
		RunsLost:        l.runsLost,
		EnemiesDefeated: l.enemiesDefeated,
	}
}

// Restore rebuilds a ledger from a stored snapshot, clamping inconsistent
// values instead of failing.
func Restore(snapshot Snapshot) *Ledger {
	ledger := NewLedger(snapshot.MaxHealth, snapshot.Coins)
	if snapshot.Health >= 0 && snapshot.Health <= ledger.maxHealth {
		ledger.health = snapshot.Health
	}
	if snapshot.RunsWon > 0 {
		ledger.runsWon = snapshot.RunsWon
	}
	if snapshot.RunsLost > 0 {
		ledger.runsLost = snapshot.RunsLost
	}
	if snapshot.EnemiesDefeated > 0 {
		ledger.enemiesDefeated = snapshot.EnemiesDefeated
	}
	return ledger
}
