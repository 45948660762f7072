package data

import "testing"

func TestGetExpForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 10},
		{5, 100},
		{10, 520},
		{42, 520}, // clamped to MaxHeroLevel
	}

	for _, tt := range tests {
		got := GetExpForLevel(tt.level)
		if got != tt.want {
			t.Errorf("GetExpForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestGetLevelForExp(t *testing.T) {
	tests := []struct {
		exp        int
		startLevel int
		want       int
	}{
		{0, 1, 1},
		{9, 1, 1},    // just below level 2
		{10, 1, 2},   // exactly level 2
		{11, 1, 2},   // just above level 2
		{100, 1, 5},  // exactly level 5
		{149, 1, 5},  // just below level 6
		{520, 1, 10}, // exactly level 10
		{9999, 1, 10},
		{300, 5, 8}, // start from level 5
		{300, 8, 8}, // start from exact level
		{0, 0, 1},   // start level clamped
	}

	for _, tt := range tests {
		got := GetLevelForExp(tt.exp, tt.startLevel)
		if got != tt.want {
			t.Errorf("GetLevelForExp(%d, %d) = %d, want %d", tt.exp, tt.startLevel, got, tt.want)
		}
	}
}

func TestExperienceTableMonotonic(t *testing.T) {
	for i := 1; i < MaxHeroLevel; i++ {
		if ExperienceTable[i] >= ExperienceTable[i+1] {
			t.Errorf("ExperienceTable[%d]=%d >= ExperienceTable[%d]=%d - must be strictly increasing",
				i, ExperienceTable[i], i+1, ExperienceTable[i+1])
		}
	}
}
