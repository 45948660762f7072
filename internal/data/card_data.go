package data

// cardDef - боевая карта игрока: базовый урон, кубик и модификаторы броска.
type cardDef struct {
	id          string
	name        string
	baseDamage  int
	sides       int
	modifiers   []modifierDef
	description string
}

// modifierDef uses modifier.Kind names ("add", "multiply", ...).
type modifierDef struct {
	kind  string
	value int
}

var cardDefs = []cardDef{
	{
		id: "strike", name: "Strike",
		baseDamage: 4, sides: 6,
		description: "A plain attack.",
	},
	{
		id: "heavy_blow", name: "Heavy Blow",
		baseDamage: 6, sides: 8,
		modifiers:   []modifierDef{{kind: "add", value: -1}},
		description: "Slow but hard hitting.",
	},
	{
		id: "lucky_strike", name: "Lucky Strike",
		baseDamage: 2, sides: 6,
		modifiers:   []modifierDef{{kind: "reroll_if_at_most", value: 2}, {kind: "add", value: 1}},
		description: "Reroll a bad roll, then add 1.",
	},
	{
		id: "steady_aim", name: "Steady Aim",
		baseDamage: 3, sides: 6,
		modifiers:   []modifierDef{{kind: "minimum", value: 4}},
		description: "The roll is never below 4.",
	},
	{
		id: "double_edge", name: "Double Edge",
		baseDamage: 1, sides: 6,
		modifiers:   []modifierDef{{kind: "multiply", value: 2}},
		description: "Doubles the roll.",
	},
	{
		id: "precise_cut", name: "Precise Cut",
		baseDamage: 3, sides: 4,
		modifiers:   []modifierDef{{kind: "add", value: 2}},
		description: "Small die, easy critical.",
	},
}
