package systems

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/navmesh"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

const (
	masterySword uint32 = 257
	masteryBlade uint32 = 258

	skillSlash     uint32 = 2
	skillCombo     uint32 = 3
	skillEuropean  uint32 = 4
	skillUniversal uint32 = 5
	skillExpensive uint32 = 6

	mobWolf   uint32 = 1954
	itemSword uint32 = 10
)

func testData() worlddata.StaticLoader {
	return worlddata.StaticLoader{
		Items: []worlddata.Item{{ID: itemSword, CodeName: "ITEM_CH_SWORD_01", MaxStack: 1, Upgradable: true}},
		Characters: []worlddata.Character{
			{ID: mobWolf, CodeName: "MOB_CH_WOLF", Name: "Wolf", Level: 3, MaxHP: 100, Exp: 100, SPExp: 50},
		},
		Skills: []worlddata.Skill{
			{ID: skillSlash, Race: 0, SP: 10, Mastery: masterySword, MasteryLevel: 1},
			{ID: skillCombo, Race: 0, SP: 20, Mastery: masterySword, MasteryLevel: 5, Prerequisites: []uint32{skillSlash}},
			{ID: skillEuropean, Race: 1, SP: 5},
			{ID: skillUniversal, Race: domain.SkillOriginUniversal, SP: 5},
			{ID: skillExpensive, Race: 0, SP: 1000},
		},
		Masteries: []worlddata.Mastery{{ID: masterySword, Name: "sword"}, {ID: masteryBlade, Name: "blade"}},
		Teleports: []worlddata.Teleport{{ID: 1, Name: "Jangan", Location: domain.Vec3{X: 500, Y: 2, Z: 600}}},
		Levels: []worlddata.LevelEntry{
			{Level: 1, Exp: 100, MasterySP: 0},
			{Level: 2, Exp: 200, MasterySP: 10},
			{Level: 3, Exp: 400, MasterySP: 20},
			{Level: 4, Exp: 800, MasterySP: 30},
			{Level: 5, Exp: 1600, MasterySP: 50},
			{Level: 6, Exp: 3200, MasterySP: 60},
			{Level: 10, Exp: 10000, MasterySP: 100},
		},
		Gold: []worlddata.GoldEntry{{Level: 3, Min: 10, Max: 20}},
	}
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	data := worlddata.NewRegistry()
	if err := data.Load(testData()); err != nil {
		t.Fatalf("load test data: %v", err)
	}
	game := config.Default().Game
	return &Context{
		Store:   domain.NewStore(),
		Data:    data,
		Terrain: navmesh.Flat{Height: 7, Bounds: game.Bounds},
		Game:    game,
		Rng:     rand.New(rand.NewSource(1)),
		Delta:   100 * time.Millisecond,
	}
}

func newTestPlayer(ctx *Context, st domain.CharacterState) *domain.Entity {
	if st.Level == 0 {
		st.Level = 1
	}
	e := domain.NewPlayer(st)
	ctx.Store.Spawn(e)
	e.TakeChanges()
	return e
}

func newTestMonster(ctx *Context, origin domain.Vec3) *domain.Entity {
	e := domain.NewMonster(domain.MonsterSpec{
		RefID: mobWolf, Name: "Wolf", Level: 3, MaxHP: 100,
		Origin: origin, Radius: 10, Recheck: time.Second,
	})
	ctx.Store.Spawn(e)
	e.TakeChanges()
	return e
}
