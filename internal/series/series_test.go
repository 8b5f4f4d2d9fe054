package series

import "testing"

func TestMergeOverlapping(t *testing.T) {
	primary := []Point{
		{Period: "2021", Value: 2.5},
		{Period: "2022", Value: 9.1},
		{Period: "2023", Value: 7.3},
	}
	secondary := []Point{
		{Period: "2022", Value: 8.0},
		{Period: "2023", Value: 4.1},
		{Period: "2024", Value: 2.9},
	}

	merged := Merge(primary, secondary)
	if len(merged) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(merged))
	}

	// 2021: primary only.
	if merged[0].Period != "2021" || merged[0].Primary == nil || merged[0].Secondary != nil {
		t.Errorf("2021 row wrong: %+v", merged[0])
	}
	// 2022 and 2023: both sides.
	for _, row := range merged[1:3] {
		if row.Primary == nil || row.Secondary == nil {
			t.Errorf("%s row should have both sides: %+v", row.Period, row)
		}
	}
	if *merged[1].Primary != 9.1 || *merged[1].Secondary != 8.0 {
		t.Errorf("2022 values wrong: %+v", merged[1])
	}
	// 2024: secondary only.
	if merged[3].Period != "2024" || merged[3].Primary != nil || merged[3].Secondary == nil {
		t.Errorf("2024 row wrong: %+v", merged[3])
	}
}

func TestMergeDisjoint(t *testing.T) {
	primary := []Point{
		{Period: "2020", Value: 1.0},
		{Period: "2021", Value: 2.0},
	}
	secondary := []Point{
		{Period: "2022", Value: 3.0},
		{Period: "2023", Value: 4.0},
	}

	merged := Merge(primary, secondary)
	if len(merged) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(merged))
	}

	for i, row := range merged {
		onePrimary := row.Primary != nil && row.Secondary == nil
		oneSecondary := row.Primary == nil && row.Secondary != nil
		if !onePrimary && !oneSecondary {
			t.Errorf("row %d should have exactly one side populated: %+v", i, row)
		}
	}

	want := []string{"2020", "2021", "2022", "2023"}
	for i, row := range merged {
		if row.Period != want[i] {
			t.Errorf("row %d period = %s, want %s", i, row.Period, want[i])
		}
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("merge of two empty series should be empty, got %d rows", len(got))
	}

	only := []Point{{Period: "2023", Value: 5.0}}
	merged := Merge(only, nil)
	if len(merged) != 1 || merged[0].Primary == nil || merged[0].Secondary != nil {
		t.Errorf("one-sided merge wrong: %+v", merged)
	}
	merged = Merge(nil, only)
	if len(merged) != 1 || merged[0].Primary != nil || merged[0].Secondary == nil {
		t.Errorf("one-sided merge wrong: %+v", merged)
	}
}

func TestMergeUnorderedInput(t *testing.T) {
	primary := []Point{
		{Period: "2023", Value: 3.0},
		{Period: "2021", Value: 1.0},
		{Period: "2022", Value: 2.0},
	}

	merged := Merge(primary, nil)
	want := []string{"2021", "2022", "2023"}
	for i, row := range merged {
		if row.Period != want[i] {
			t.Errorf("row %d period = %s, want %s", i, row.Period, want[i])
		}
	}
}

func TestTail(t *testing.T) {
	points := []Point{
		{Period: "2020", Value: 1},
		{Period: "2021", Value: 2},
		{Period: "2022", Value: 3},
	}

	if got := Tail(points, 2); len(got) != 2 || got[0].Period != "2021" {
		t.Errorf("Tail(2) = %+v", got)
	}
	if got := Tail(points, 5); len(got) != 3 {
		t.Errorf("Tail larger than input should return all, got %d", len(got))
	}
	if got := Tail(points, 0); len(got) != 3 {
		t.Errorf("Tail(0) should return all, got %d", len(got))
	}
}
