package systems

import (
	"slices"
	"testing"

	"skrillax-agent/internal/schedule"
)

func TestPlan_Builds(t *testing.T) {
	s, err := schedule.New(Plan())
	if err != nil {
		t.Fatalf("schedule.New: %v", err)
	}

	update := s.Order(schedule.StageUpdate)
	before := func(a, b string) {
		t.Helper()
		ia, ib := slices.Index(update, a), slices.Index(update, b)
		if ia < 0 || ib < 0 || ia >= ib {
			t.Errorf("%s must run before %s: %v", a, b, update)
		}
	}
	before("handle_gm_commands", "handle_damage")
	before("handle_damage", "distribute_experience")
	before("handle_damage", "drop_gold")
	before("distribute_experience", "receive_experience")
	before("receive_experience", "reset_health_mana_on_level")
	before("increase_stats", "update_max_on_stat_change")

	if got := s.Order(schedule.StageLast); !slices.Equal(got, []string{"flush_store"}) {
		t.Errorf("last stage = %v", got)
	}
	if got := s.Order(schedule.StagePostUpdate); !slices.Equal(got, []string{"collect_changes"}) {
		t.Errorf("post update stage = %v", got)
	}
}

func TestPlan_BatchesHaveNoConflicts(t *testing.T) {
	s, err := schedule.New(Plan())
	if err != nil {
		t.Fatal(err)
	}
	for _, stage := range schedule.Stages() {
		for _, batch := range s.Batches(stage) {
			if len(batch) == 0 {
				t.Errorf("%s: empty batch", stage)
			}
		}
	}
}
