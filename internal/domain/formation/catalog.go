package formation

// s keeps the catalog table readable.
func s(key string, x, y float64) Slot { return Slot{Key: key, X: x, Y: y} }

// Shared rows. Coordinates are meters; x=34 is the pitch spine.
var (
	goalkeeper = []Slot{s("GK", 34, 5.5)}
	backFour   = []Slot{s("LB", 8, 21), s("CB1", 24, 18), s("CB2", 44, 18), s("RB", 60, 21)}
	backThree  = []Slot{s("CB1", 17, 18), s("CB2", 34, 16), s("CB3", 51, 18)}
	backFive   = []Slot{s("LWB", 6, 26), s("CB1", 20, 17), s("CB2", 34, 15), s("CB3", 48, 17), s("RWB", 62, 26)}
)

func row(groups ...[]Slot) []Slot {
	var out []Slot
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// all lists the catalog in display order.
var all = []Formation{
	{Key: "4-3-3", Name: "4-3-3", Slots: row(goalkeeper, backFour, []Slot{
		s("CM1", 20, 48), s("CM2", 34, 45), s("CM3", 48, 48),
		s("LW", 10, 82), s("ST", 34, 92), s("RW", 58, 82),
	})},
	{Key: "4-4-2", Name: "4-4-2", Slots: row(goalkeeper, backFour, []Slot{
		s("LM", 8, 50), s("CM1", 24, 48), s("CM2", 44, 48), s("RM", 60, 50),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "4-2-3-1", Name: "4-2-3-1", Slots: row(goalkeeper, backFour, []Slot{
		s("DM1", 24, 36), s("DM2", 44, 36),
		s("LW", 10, 72), s("CAM", 34, 68), s("RW", 58, 72), s("ST", 34, 92),
	})},
	{Key: "4-1-4-1", Name: "4-1-4-1", Slots: row(goalkeeper, backFour, []Slot{
		s("DM", 34, 34),
		s("LM", 8, 55), s("CM1", 24, 52), s("CM2", 44, 52), s("RM", 60, 55),
		s("ST", 34, 92),
	})},
	{Key: "4-5-1", Name: "4-5-1", Slots: row(goalkeeper, backFour, []Slot{
		s("LM", 8, 50), s("CM1", 22, 46), s("CM2", 34, 42), s("CM3", 46, 46), s("RM", 60, 50),
		s("ST", 34, 92),
	})},
	{Key: "4-3-2-1", Name: "4-3-2-1 (Christmas Tree)", Slots: row(goalkeeper, backFour, []Slot{
		s("CM1", 20, 48), s("CM2", 34, 45), s("CM3", 48, 48),
		s("CAM1", 24, 68), s("CAM2", 44, 68), s("ST", 34, 92),
	})},
	{Key: "4-4-1-1", Name: "4-4-1-1", Slots: row(goalkeeper, backFour, []Slot{
		s("LM", 8, 50), s("CM1", 24, 48), s("CM2", 44, 48), s("RM", 60, 50),
		s("ST2", 34, 78), s("ST1", 34, 92),
	})},
	{Key: "4-2-2-2", Name: "4-2-2-2", Slots: row(goalkeeper, backFour, []Slot{
		s("DM1", 24, 36), s("DM2", 44, 36),
		s("CAM1", 20, 62), s("CAM2", 48, 62),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "4-1-2-1-2", Name: "4-1-2-1-2 (Diamond)", Slots: row(goalkeeper, backFour, []Slot{
		s("DM", 34, 34), s("CM1", 18, 50), s("CM2", 50, 50), s("CAM", 34, 66),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "4-2-4", Name: "4-2-4", Slots: row(goalkeeper, backFour, []Slot{
		s("CM1", 24, 48), s("CM2", 44, 48),
		s("LW", 10, 82), s("ST1", 26, 92), s("ST2", 42, 92), s("RW", 58, 82),
	})},
	{Key: "4-3-1-2", Name: "4-3-1-2", Slots: row(goalkeeper, backFour, []Slot{
		s("CM1", 20, 48), s("CM2", 34, 45), s("CM3", 48, 48),
		s("CAM", 34, 66), s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "3-5-2", Name: "3-5-2", Slots: row(goalkeeper, backThree, []Slot{
		s("LWB", 6, 42), s("CM1", 22, 50), s("CM2", 34, 46), s("CM3", 46, 50), s("RWB", 62, 42),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "3-4-3", Name: "3-4-3", Slots: row(goalkeeper, backThree, []Slot{
		s("LM", 8, 48), s("CM1", 24, 46), s("CM2", 44, 46), s("RM", 60, 48),
		s("LW", 12, 80), s("ST", 34, 90), s("RW", 56, 80),
	})},
	{Key: "3-4-2-1", Name: "3-4-2-1", Slots: row(goalkeeper, backThree, []Slot{
		s("LM", 8, 48), s("CM1", 24, 46), s("CM2", 44, 46), s("RM", 60, 48),
		s("CAM1", 24, 70), s("CAM2", 44, 70), s("ST", 34, 92),
	})},
	{Key: "3-1-4-2", Name: "3-1-4-2", Slots: row(goalkeeper, backThree, []Slot{
		s("DM", 34, 32),
		s("LM", 8, 52), s("CM1", 24, 50), s("CM2", 44, 50), s("RM", 60, 52),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "3-4-1-2", Name: "3-4-1-2", Slots: row(goalkeeper, backThree, []Slot{
		s("LM", 8, 48), s("CM1", 24, 46), s("CM2", 44, 46), s("RM", 60, 48),
		s("CAM", 34, 68), s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "5-3-2", Name: "5-3-2", Slots: row(goalkeeper, backFive, []Slot{
		s("CM1", 20, 48), s("CM2", 34, 45), s("CM3", 48, 48),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
	{Key: "5-4-1", Name: "5-4-1", Slots: row(goalkeeper, backFive, []Slot{
		s("LM", 8, 52), s("CM1", 24, 48), s("CM2", 44, 48), s("RM", 60, 52),
		s("ST", 34, 92),
	})},
	{Key: "5-2-2-1", Name: "5-2-2-1", Slots: row(goalkeeper, backFive, []Slot{
		s("CM1", 24, 46), s("CM2", 44, 46),
		s("CAM1", 20, 66), s("CAM2", 48, 66), s("ST", 34, 92),
	})},
	{Key: "5-2-1-2", Name: "5-2-1-2", Slots: row(goalkeeper, backFive, []Slot{
		s("CM1", 24, 46), s("CM2", 44, 46), s("CAM", 34, 64),
		s("ST1", 26, 92), s("ST2", 42, 92),
	})},
}

var (
	catalog = make(map[string]Formation, len(all))
	order   = make([]string, 0, len(all))
)

func init() { //nolint:gochecknoinits // builds the lookup index for the static table
	for _, f := range all {
		catalog[f.Key] = f
		order = append(order, f.Key)
	}
}
