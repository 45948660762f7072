package data

// MaxHeroLevel is the highest level a hero can reach within one run.
const MaxHeroLevel = 10

// ExperienceTable holds cumulative XP required to reach each level.
// Index = level (0-10). Level 0 and 1 require 0 XP.
// Порог 10-го уровня примерно равен опыту за полностью пройденный забег.
var ExperienceTable = [MaxHeroLevel + 1]int{
	0,   // 0 (unused)
	0,   // 1
	10,  // 2
	30,  // 3
	60,  // 4
	100, // 5
	150, // 6
	220, // 7
	300, // 8
	400, // 9
	520, // 10
}

// GetExpForLevel returns cumulative XP required to reach the given level.
// Returns 0 for level <= 1. Clamped to MaxHeroLevel.
func GetExpForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return ExperienceTable[min(level, MaxHeroLevel)]
}

// GetLevelForExp returns the level corresponding to the given cumulative XP.
// Scans upward from startLevel to find the highest level whose threshold is <= exp.
func GetLevelForExp(exp, startLevel int) int {
	level := max(startLevel, 1)
	for level < MaxHeroLevel {
		if ExperienceTable[level+1] > exp {
			break
		}
		level++
	}
	return level
}
