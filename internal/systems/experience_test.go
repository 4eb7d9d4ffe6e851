package systems

import (
	"testing"

	"skrillax-agent/internal/domain"
)

func TestReceiveExperience(t *testing.T) {
	tests := []struct {
		name       string
		level      uint8
		exp        uint64
		spExp      uint64
		gainExp    uint64
		gainSPExp  uint64
		wantLevel  uint8
		wantExp    uint64
		wantSP     uint32
		wantSPExp  uint64
		wantPoints uint16
	}{
		{"No level up", 1, 0, 0, 50, 0, 1, 50, 0, 0, 0},
		{"Exact level up", 1, 40, 0, 60, 0, 2, 0, 0, 0, 3},
		{"Several levels", 1, 0, 0, 350, 0, 3, 50, 0, 0, 6},
		{"Missing curve entry stops", 6, 0, 0, 10000, 0, 7, 6800, 0, 0, 3},
		{"SP conversion keeps remainder", 1, 0, 100, 0, 800, 1, 0, 2, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			p := newTestPlayer(ctx, domain.CharacterState{Level: tt.level, Exp: tt.exp, SPExp: tt.spExp})

			ctx.Experience.Push(domain.ExperienceEvent{Target: p.ID, Exp: tt.gainExp, SPExp: tt.gainSPExp})
			_ = ReceiveExperience(ctx)

			if p.Level.Current != tt.wantLevel || p.Exp.Exp != tt.wantExp {
				t.Errorf("level %d exp %d, want level %d exp %d", p.Level.Current, p.Exp.Exp, tt.wantLevel, tt.wantExp)
			}
			if p.SP.Current != tt.wantSP || p.Exp.SPExp != tt.wantSPExp {
				t.Errorf("SP %d spExp %d, want SP %d spExp %d", p.SP.Current, p.Exp.SPExp, tt.wantSP, tt.wantSPExp)
			}
			if p.Stats.Remaining != tt.wantPoints {
				t.Errorf("stat points = %d, want %d", p.Stats.Remaining, tt.wantPoints)
			}

			ups := ctx.LevelUps.Items()
			if tt.wantLevel == tt.level {
				if len(ups) != 0 {
					t.Errorf("unexpected level up events: %+v", ups)
				}
				return
			}
			if len(ups) != 1 || ups[0].From != tt.level || ups[0].To != tt.wantLevel {
				t.Errorf("level up events = %+v", ups)
			}
		})
	}
}

func TestResetHealthManaOnLevel(t *testing.T) {
	ctx := newTestContext(t)
	p := newTestPlayer(ctx, domain.CharacterState{Level: 1})
	p.Health.Current = 10
	p.Mana.Current = 0
	p.Level.Current = 3

	ctx.LevelUps.Push(domain.LevelUpEvent{Entity: p.ID, From: 1, To: 3})
	_ = ResetHealthManaOnLevel(ctx)

	// floor(20 * 10 * 1.02^2)
	if p.Health.Max != 208 || p.Health.Current != 208 {
		t.Errorf("health = %+v, want 208/208", p.Health)
	}
	if p.Mana.Max != 208 || p.Mana.Current != 208 {
		t.Errorf("mana = %+v, want 208/208", p.Mana)
	}
}

func TestUpdateMaxOnStatChange(t *testing.T) {
	ctx := newTestContext(t)
	p := newTestPlayer(ctx, domain.CharacterState{Strength: 20, Intellect: 20, StatPoints: 5})
	hpBefore := p.Health.Current

	_ = e2eSpend(ctx, p, domain.StatStrength, 5)
	_ = UpdateMaxOnStatChange(ctx)

	if p.Health.Max != MaxHealth(domain.Stats{Strength: 25, Intelligence: 20}, 1) {
		t.Errorf("health max = %d", p.Health.Max)
	}
	// Текущее HP только прижимается, но не растет
	if p.Health.Current != hpBefore {
		t.Errorf("health current = %d, want %d", p.Health.Current, hpBefore)
	}
}

func TestUpdateMaxOnStatChange_ClampsDown(t *testing.T) {
	ctx := newTestContext(t)
	p := newTestPlayer(ctx, domain.CharacterState{Strength: 30, Intellect: 20, StatPoints: 1})
	p.Stats.Stats.Strength = 10
	_ = e2eSpend(ctx, p, domain.StatIntelligence, 1)
	_ = UpdateMaxOnStatChange(ctx)

	if p.Health.Current > p.Health.Max || p.Health.Max != 100 {
		t.Errorf("health = %+v, want clamped to 100", p.Health)
	}
}

func e2eSpend(ctx *Context, e *domain.Entity, axis domain.StatAxis, n uint16) error {
	if err := e.Input.Stats.Put(domain.StatIncrease{Axis: axis, Amount: n}); err != nil {
		return err
	}
	return IncreaseStats(ctx)
}
