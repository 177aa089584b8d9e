package entity

import "testing"

func TestNextOrderCode(t *testing.T) {
	orders := []Order{
		{OrderCode: "SP/2025/0001"},
		{OrderCode: "SP/2025/0007"},
		{OrderCode: "SP/2024/0420"}, // other year, ignored
		{OrderCode: "garbage"},
	}

	if got := NextOrderCode(orders, 2025); got != "SP/2025/0008" {
		t.Errorf("NextOrderCode = %q, want SP/2025/0008", got)
	}
	// Fresh year starts at 0001.
	if got := NextOrderCode(orders, 2026); got != "SP/2026/0001" {
		t.Errorf("NextOrderCode = %q, want SP/2026/0001", got)
	}
	if got := NextOrderCode(nil, 2025); got != "SP/2025/0001" {
		t.Errorf("NextOrderCode = %q, want SP/2025/0001", got)
	}
}

func TestParseOrderCodeSeq(t *testing.T) {
	cases := []struct {
		code string
		year int
		want int
	}{
		{"SP/2025/0042", 2025, 42},
		{"SP/2025/0042", 2024, 0},
		{"SP/2025/abcd", 2025, 0},
		{"XX/2025/0042", 2025, 0},
	}
	for _, tc := range cases {
		if got := ParseOrderCodeSeq(tc.code, tc.year); got != tc.want {
			t.Errorf("ParseOrderCodeSeq(%q, %d) = %d, want %d", tc.code, tc.year, got, tc.want)
		}
	}
}

func TestSizeBreakdownTotal(t *testing.T) {
	b := SizeBreakdown{XS: 1, S: 2, M: 3, L: 4, XL: 5, X2L: 6, X3L: 7, X4L: 8, X5L: 9}
	if got := b.Total(); got != 45 {
		t.Errorf("Total = %d, want 45", got)
	}
	if (SizeBreakdown{}).Total() != 0 {
		t.Error("empty breakdown should total 0")
	}
}

func TestSizeBreakdownHasNegative(t *testing.T) {
	if (SizeBreakdown{M: 5}).HasNegative() {
		t.Error("positive breakdown flagged negative")
	}
	if !(SizeBreakdown{X3L: -1}).HasNegative() {
		t.Error("negative quantity not detected")
	}
}

func TestStatusAction(t *testing.T) {
	if got := StatusAction(StatusDispatched); got != "was dispatched" {
		t.Errorf("StatusAction = %q", got)
	}
	if got := StatusAction("bogus"); got != "was updated" {
		t.Errorf("StatusAction fallback = %q", got)
	}
}
