package combat

import (
	"math/rand"
	"testing"

	"dungeondelve/server/internal/stats"
	"dungeondelve/server/roster"
)

// fixedTemplate pins every enemy roll so rounds resolve deterministically.
func fixedTemplate(health, attack, reward int) roster.Template {
	return roster.Template{
		Name:   "Training Dummy",
		Health: roster.Range{Min: health, Max: health},
		Attack: roster.Range{Min: attack, Max: attack},
		Reward: roster.Range{Min: reward, Max: reward},
	}
}

func fixedConfig(fight, spell, heal int) Config {
	return Config{
		Fight: roster.Range{Min: fight, Max: fight},
		Spell: roster.Range{Min: spell, Max: spell},
		Heal:  roster.Range{Min: heal, Max: heal},
	}
}

func newTestEngine(cfg Config, template roster.Template, ledger *stats.Ledger) *Engine {
	rng := rand.New(rand.NewSource(1))
	return NewEngine(cfg, []roster.Template{template}, ledger, rng, nil)
}

func TestBeginIsIdempotentMidBattle(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(5, 10, 8), fixedTemplate(20, 4, 10), ledger)

	first := engine.Begin(1)
	second := engine.Begin(2)
	if first != second {
		t.Fatalf("Begin mid-battle must return the existing encounter")
	}
	if first.Health != 20 || first.MaxHealth != 20 {
		t.Fatalf("encounter health should roll from the template, got %d/%d", first.Health, first.MaxHealth)
	}
	if !engine.InBattle() {
		t.Fatalf("engine should report an active battle")
	}
}

func TestFightDefeatsEnemyAndPaysReward(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(20, 25, 8), fixedTemplate(15, 10, 7), ledger)
	engine.Begin(1)

	result := engine.Fight(2)
	if result.Outcome != OutcomeVictory {
		t.Fatalf("20 damage against 15 health should win, got outcome %v", result.Outcome)
	}
	if result.Reward != 7 {
		t.Fatalf("expected reward 7, got %d", result.Reward)
	}
	if ledger.Coins() != 7 {
		t.Fatalf("reward should credit the ledger, balance is %d", ledger.Coins())
	}
	if ledger.Health() != 100 {
		t.Fatalf("a felled enemy gets no counterattack, health is %d", ledger.Health())
	}
	if engine.InBattle() {
		t.Fatalf("encounter should be destroyed on victory")
	}
}

func TestSpellUsesItsOwnRange(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(1, 30, 8), fixedTemplate(25, 6, 5), ledger)
	engine.Begin(1)

	result := engine.Spell(2)
	if result.Outcome != OutcomeVictory {
		t.Fatalf("30 spell damage against 25 health should win, got %v", result.Outcome)
	}
}

func TestEnemyAnswersNonLethalAttack(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(5, 10, 8), fixedTemplate(50, 9, 5), ledger)
	engine.Begin(1)

	result := engine.Fight(2)
	if result.Outcome != OutcomeContinue {
		t.Fatalf("non-lethal round should continue, got %v", result.Outcome)
	}
	if result.PlayerDamage != 5 || result.EnemyDamage != 9 {
		t.Fatalf("expected 5 dealt and 9 taken, got %d/%d", result.PlayerDamage, result.EnemyDamage)
	}
	if ledger.Health() != 91 {
		t.Fatalf("ledger health should drop to 91, got %d", ledger.Health())
	}
	if engine.Current().Health != 45 {
		t.Fatalf("enemy health should drop to 45, got %d", engine.Current().Health)
	}
}

func TestDefendHalvesExactlyOneAttack(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(1, 2, 8), fixedTemplate(200, 10, 5), ledger)
	engine.Begin(1)

	defendResult := engine.Defend(2)
	if defendResult.EnemyDamage != 5 {
		t.Fatalf("10 damage halved should land 5, got %d", defendResult.EnemyDamage)
	}
	if ledger.Health() != 95 {
		t.Fatalf("expected health 95 after the guarded hit, got %d", ledger.Health())
	}

	// The guard does not carry into the next round.
	fightResult := engine.Fight(3)
	if fightResult.EnemyDamage != 10 {
		t.Fatalf("guard should expire after one attack, took %d", fightResult.EnemyDamage)
	}
	if ledger.Health() != 85 {
		t.Fatalf("expected health 85, got %d", ledger.Health())
	}
}

func TestDefendRoundsToNearest(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(1, 2, 8), fixedTemplate(200, 7, 5), ledger)
	engine.Begin(1)

	result := engine.Defend(2)
	// Half of 7 rounds to 4, not down to 3.
	if result.EnemyDamage != 4 {
		t.Fatalf("halved 7 should round to 4, got %d", result.EnemyDamage)
	}
}

func TestHealRestoresBeforeEnemyAnswers(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	ledger.TakeDamage(30)
	engine := newTestEngine(fixedConfig(1, 2, 9), fixedTemplate(200, 10, 5), ledger)
	engine.Begin(1)

	result := engine.Heal(2)
	if result.Outcome != OutcomeContinue {
		t.Fatalf("heal round should continue, got %v", result.Outcome)
	}
	// 70 + 9 healed - 10 enemy hit.
	if ledger.Health() != 69 {
		t.Fatalf("expected health 69, got %d", ledger.Health())
	}
}

func TestHealClampsAtMaxHealth(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	ledger.TakeDamage(2)
	engine := newTestEngine(fixedConfig(1, 2, 50), fixedTemplate(200, 10, 5), ledger)
	engine.Begin(1)

	engine.Heal(2)
	// 98 heals to the 100 cap, then takes 10.
	if ledger.Health() != 90 {
		t.Fatalf("expected health 90, got %d", ledger.Health())
	}
}

func TestDefeatEndsEncounter(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	ledger.TakeDamage(95)
	engine := newTestEngine(fixedConfig(1, 2, 8), fixedTemplate(200, 10, 5), ledger)
	engine.Begin(1)

	result := engine.Fight(2)
	if result.Outcome != OutcomeDefeat {
		t.Fatalf("a 10 damage hit against 5 health should defeat, got %v", result.Outcome)
	}
	if ledger.Health() != 0 {
		t.Fatalf("health should clamp at zero, got %d", ledger.Health())
	}
	if engine.InBattle() {
		t.Fatalf("encounter should be destroyed on defeat")
	}
}

func TestActionsOutsideBattleAreNoOps(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(5, 10, 8), fixedTemplate(20, 4, 10), ledger)

	for name, action := range map[string]func(uint64) Result{
		"fight":  engine.Fight,
		"spell":  engine.Spell,
		"heal":   engine.Heal,
		"defend": engine.Defend,
	} {
		result := action(1)
		if result.Outcome != OutcomeContinue || result.PlayerDamage != 0 || result.EnemyDamage != 0 {
			t.Errorf("%s outside battle should be a silent no-op, got %+v", name, result)
		}
	}
	if ledger.Health() != 100 || ledger.Coins() != 0 {
		t.Fatalf("ledger must be untouched outside battle")
	}
}

func TestAbandonDropsEncounter(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	engine := newTestEngine(fixedConfig(5, 10, 8), fixedTemplate(20, 4, 10), ledger)
	engine.Begin(1)
	engine.Abandon()
	if engine.InBattle() {
		t.Fatalf("abandon should clear the encounter")
	}
}

func TestEmptyRosterFallsBackToDefaults(t *testing.T) {
	ledger := stats.NewLedger(100, 0)
	rng := rand.New(rand.NewSource(1))
	engine := NewEngine(fixedConfig(5, 10, 8), nil, ledger, rng, nil)

	encounter := engine.Begin(1)
	if encounter == nil || encounter.Enemy == "" {
		t.Fatalf("empty roster should still produce an enemy")
	}
}

func TestRollsStayInsideConfiguredRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := roster.Range{Min: 5, Max: 12}
	for i := 0; i < 10000; i++ {
		roll := bounds.Roll(rng)
		if !bounds.Contains(roll) {
			t.Fatalf("roll %d escaped [%d,%d]", roll, bounds.Min, bounds.Max)
		}
	}
}
