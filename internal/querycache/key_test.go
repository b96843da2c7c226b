package querycache

import "testing"

func TestKey_Matches(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		sel  Key
		want bool
	}{
		{"same key", NewKey(ResourceBoxes, "b-1"), NewKey(ResourceBoxes, "b-1"), true},
		{"wildcard", NewKey(ResourceBoxes, "b-1"), AnyOf(ResourceBoxes), true},
		{"wildcard list key", NewKey(ResourceBoxes), AnyOf(ResourceBoxes), true},
		{"other params", NewKey(ResourceBoxes, "b-1"), NewKey(ResourceBoxes, "b-2"), false},
		{"other resource", NewKey(ResourceOrders, "o-1"), AnyOf(ResourceBoxes), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Matches(tt.sel); got != tt.want {
				t.Fatalf("%s.Matches(%s) = %v, want %v", tt.key, tt.sel, got, tt.want)
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	if got := NewKey(ResourceSlots, "2030-01-01", "2030-01-07").String(); got != "slots:2030-01-01/2030-01-07" {
		t.Fatalf("unexpected key string %q", got)
	}
	if got := NewKey(ResourceBoxes).String(); got != "boxes" {
		t.Fatalf("unexpected key string %q", got)
	}
	if !AnyOf(ResourceOrders).IsSelector() {
		t.Fatalf("AnyOf must be a selector")
	}
}
