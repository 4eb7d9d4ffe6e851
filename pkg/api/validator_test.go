package api

import "testing"

func TestPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"Stat STR", StatIncreasePayload{Stat: "STR"}, false},
		{"Stat lowercase", StatIncreasePayload{Stat: "int"}, false},
		{"Stat unknown", StatIncreasePayload{Stat: "DEX"}, true},
		{"Mastery set", MasteryLevelUpPayload{Mastery: 257}, false},
		{"Mastery zero", MasteryLevelUpPayload{}, true},
		{"Skill set", LearnSkillPayload{Skill: 3}, false},
		{"Skill zero", LearnSkillPayload{}, true},
		{"GM spawn", GMPayload{Command: "SPAWN_MONSTER", RefID: 1954}, false},
		{"GM spawn no ref", GMPayload{Command: "spawn_monster"}, true},
		{"GM kill", GMPayload{Command: "KILL_MONSTER", Target: "123"}, false},
		{"GM kill no target", GMPayload{Command: "KILL_MONSTER"}, true},
		{"GM teleport", GMPayload{Command: "TELEPORT", Location: 1}, false},
		{"GM unknown", GMPayload{Command: "FLY"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
