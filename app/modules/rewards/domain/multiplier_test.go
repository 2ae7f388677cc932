package rewardsdomain

import "testing"

func TestMultiplierTableBoundaries(t *testing.T) {
	table := DefaultMultiplierTable()

	cases := []struct {
		streak int
		want   int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{24, 2},
		{25, 3},
		{49, 3},
		{50, 5},
		{99, 5},
		{100, 10},
		{500, 10},
	}
	for _, tc := range cases {
		if got := table.Resolve(tc.streak); got != tc.want {
			t.Errorf("Resolve(%d) = %d, want %d", tc.streak, got, tc.want)
		}
	}
}

func TestMultiplierTableValidate(t *testing.T) {
	if err := DefaultMultiplierTable().Validate(); err != nil {
		t.Fatalf("default table must validate: %v", err)
	}

	bad := []MultiplierTable{
		{},
		{{MinStreak: 5, Factor: 1}},
		{{MinStreak: 0, Factor: 0}},
		{{MinStreak: 0, Factor: 1}, {MinStreak: 0, Factor: 2}},
	}
	for i, table := range bad {
		if err := table.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, table)
		}
	}
}

func TestMultiplierResolveEmptyTableDefaultsToOne(t *testing.T) {
	var table MultiplierTable
	if got := table.Resolve(50); got != 1 {
		t.Fatalf("empty table should resolve to 1, got %d", got)
	}
}
