package domain

import "testing"

func TestNewPlayer_FreshCharacter(t *testing.T) {
	e := NewPlayer(CharacterState{ID: 7, Name: "hero", Race: "chinese", Level: 1})

	if e.Kind != KindPlayer || e.Input == nil || e.Stats == nil {
		t.Fatalf("incomplete player bundle: %+v", e)
	}
	if e.Stats.Stats.Strength != BaseStrength {
		t.Errorf("Strength = %d, want base", e.Stats.Stats.Strength)
	}
	if e.Health.Current != e.Health.Max || e.Health.Max != 200 {
		t.Errorf("Health = %+v", e.Health)
	}
	if e.IsDead() {
		t.Error("fresh character is dead")
	}
}

func TestNewPlayer_ClampsPersistedPools(t *testing.T) {
	e := NewPlayer(CharacterState{Level: 1, Strength: 20, Intellect: 20, HP: 9999, MP: 50})
	if e.Health.Current != e.Health.Max {
		t.Errorf("HP = %d, want clamp to %d", e.Health.Current, e.Health.Max)
	}
	if e.Mana.Current != 50 {
		t.Errorf("MP = %d, want 50", e.Mana.Current)
	}
}

func TestNewPlayer_DeadStaysDead(t *testing.T) {
	e := NewPlayer(CharacterState{Level: 3, Dead: true})
	if !e.IsDead() || e.Dead.Despawn != nil {
		t.Errorf("dead player marker = %+v", e.Dead)
	}
	if e.State != StateDead {
		t.Errorf("State = %v", e.State)
	}
}

func TestCharacterState_RoundTrip(t *testing.T) {
	in := CharacterState{
		ID: 1, User: "u", Name: "n", Race: "european",
		Level: 5, MaxLevel: 6, Exp: 100, SPExp: 30, SP: 60,
		Strength: 25, Intellect: 22, StatPoints: 2,
		HP: 10, MP: 10, Gold: 500,
		Location:  Vec3{X: 100, Y: 5, Z: 200},
		Masteries: []MasteryEntry{{ID: 257, Level: 5}},
		Skills:    []uint32{2, 10},
	}

	out := CharacterStateOf(NewPlayer(in))

	if out.Level != 5 || out.MaxLevel != 6 || out.SP != 60 || out.Gold != 500 {
		t.Errorf("progress lost: %+v", out)
	}
	if out.Race != "european" || out.Location != in.Location {
		t.Errorf("identity lost: %+v", out)
	}
	if len(out.Masteries) != 1 || out.Masteries[0].Level != 5 {
		t.Errorf("Masteries = %+v", out.Masteries)
	}
	if len(out.Skills) != 2 {
		t.Errorf("Skills = %v", out.Skills)
	}
}

func TestNewMonster(t *testing.T) {
	e := NewMonster(MonsterSpec{RefID: 1954, Name: "wolf", Level: 3, MaxHP: 120, Origin: Vec3{X: 50, Z: 50}, Radius: 10})

	if e.Kind != KindMonster || e.Monster.RefID != 1954 {
		t.Fatalf("monster = %+v", e)
	}
	if e.Stroll == nil || e.Stroll.Check.Duration != DefaultStrollRecheck {
		t.Errorf("Stroll = %+v", e.Stroll)
	}
	if e.Input != nil || e.Exp != nil {
		t.Error("monsters do not take input or gain experience")
	}
}
