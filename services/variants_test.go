package services

import (
	"reflect"
	"testing"
)

func TestProductVariantsDeterministic(t *testing.T) {
	a := ProductVariants("UltraBook Pro")
	b := ProductVariants("UltraBook Pro")

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same name must yield identical variant groups")
	}
}

func TestProductVariantsGroups(t *testing.T) {
	groups := ProductVariants("Wireless Mouse")

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	wantIDs := []string{"ram", "storage", "processor"}
	for i, want := range wantIDs {
		if groups[i].ID != want {
			t.Fatalf("group %d: expected id %q, got %q", i, want, groups[i].ID)
		}
	}

	if !reflect.DeepEqual(groups[0].Options, []string{"8GB", "16GB", "32GB"}) {
		t.Fatalf("unexpected RAM options: %v", groups[0].Options)
	}
	if !reflect.DeepEqual(groups[1].Options, []string{"256GB SSD", "512GB SSD", "1TB SSD"}) {
		t.Fatalf("unexpected storage options: %v", groups[1].Options)
	}
	if len(groups[2].Options) != 5 {
		t.Fatalf("expected 5 processor options, got %d", len(groups[2].Options))
	}
}
