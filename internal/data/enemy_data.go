package data

// enemyDef - определение противника для Go-литералов.
type enemyDef struct {
	id   string
	name string

	// Stats
	hp               int
	baseDamage       int
	defense          int
	attackDice       int // sides; 0 → model.DefaultAttackDice
	damageMultiplier float64

	// Rewards
	exp  int
	loot []lootDef

	isBoss    bool
	canAttack bool

	// Floor range where the enemy appears (inclusive).
	minFloor int
	maxFloor int
}

// lootDef - позиция таблицы лута.
type lootDef struct {
	itemID string
	min    int
	max    int
}

var enemyDefs = []enemyDef{
	{
		id: "cave_rat", name: "Cave Rat",
		hp: 12, baseDamage: 2, defense: 0, attackDice: 4,
		exp: 5, loot: []lootDef{{itemID: "rat_tail", min: 1, max: 2}},
		canAttack: true, minFloor: 1, maxFloor: 3,
	},
	{
		id: "green_slime", name: "Green Slime",
		hp: 18, baseDamage: 1, defense: 1, attackDice: 6,
		exp: 6, loot: []lootDef{{itemID: "slime_gel", min: 1, max: 3}},
		canAttack: true, minFloor: 1, maxFloor: 4,
	},
	{
		id: "goblin_scout", name: "Goblin Scout",
		hp: 22, baseDamage: 3, defense: 1, attackDice: 6,
		exp: 10, loot: []lootDef{{itemID: "copper_coin", min: 2, max: 6}},
		canAttack: true, minFloor: 2, maxFloor: 5,
	},
	{
		id: "fungal_sentry", name: "Fungal Sentry",
		hp: 30, baseDamage: 0, defense: 3, attackDice: 4,
		exp: 8, loot: []lootDef{{itemID: "spore_sac", min: 1, max: 2}},
		canAttack: false, minFloor: 3, maxFloor: 6,
	},
	{
		id: "skeleton", name: "Skeleton",
		hp: 28, baseDamage: 4, defense: 2, attackDice: 6,
		exp: 14, loot: []lootDef{{itemID: "bone", min: 1, max: 2}, {itemID: "copper_coin", min: 1, max: 4}},
		canAttack: true, minFloor: 3, maxFloor: 7,
	},
	{
		id: "orc_brute", name: "Orc Brute",
		hp: 40, baseDamage: 5, defense: 2, attackDice: 8, damageMultiplier: 1.2,
		exp: 22, loot: []lootDef{{itemID: "iron_scrap", min: 1, max: 3}},
		canAttack: true, minFloor: 5, maxFloor: 8,
	},
	{
		id: "wraith", name: "Wraith",
		hp: 36, baseDamage: 6, defense: 1, attackDice: 8,
		exp: 26, loot: []lootDef{{itemID: "ectoplasm", min: 1, max: 2}},
		canAttack: true, minFloor: 6, maxFloor: 9,
	},
	{
		id: "stone_golem", name: "Stone Golem",
		hp: 60, baseDamage: 6, defense: 4, attackDice: 10,
		exp: 35, loot: []lootDef{{itemID: "golem_core", min: 1, max: 1}},
		canAttack: true, minFloor: 7, maxFloor: 10,
	},

	// Bosses
	{
		id: "rat_king", name: "Rat King",
		hp: 45, baseDamage: 4, defense: 1, attackDice: 8,
		exp: 60, loot: []lootDef{{itemID: "rat_crown", min: 1, max: 1}},
		isBoss: true, canAttack: true, minFloor: 3, maxFloor: 3,
	},
	{
		id: "bone_warden", name: "Bone Warden",
		hp: 70, baseDamage: 6, defense: 3, attackDice: 10,
		exp: 110, loot: []lootDef{{itemID: "warden_key", min: 1, max: 1}},
		isBoss: true, canAttack: true, minFloor: 6, maxFloor: 6,
	},
	{
		id: "lich", name: "The Lich",
		hp: 90, baseDamage: 8, defense: 3, attackDice: 12, damageMultiplier: 1.25,
		exp: 200, loot: []lootDef{{itemID: "phylactery", min: 1, max: 1}},
		isBoss: true, canAttack: true, minFloor: 10, maxFloor: 10,
	},
}

// heroDef - стартовые характеристики игрока.
var heroDef = enemyDef{
	id: "hero", name: "Hero",
	hp: 120, baseDamage: 2, defense: 1, attackDice: 6,
	canAttack: true,
}
