package state

import (
	"reflect"
	"testing"
)

var labels = []string{"debian-12.iso", "ubuntu-24.04-desktop.iso", "Big Buck Bunny", "archlinux.iso"}

func TestMatchEmptyQueryReturnsAll(t *testing.T) {
	if got := Match(labels, "  "); !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestMatchFuzzy(t *testing.T) {
	got := Match(labels, "bunny")
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("expected only Big Buck Bunny, got %v", got)
	}
	got = Match(labels, "UBU")
	found := false
	for _, idx := range got {
		if idx == 1 {
			found = true
		}
		if idx == 0 || idx == 3 {
			t.Fatalf("unexpected match %d in %v", idx, got)
		}
	}
	if !found {
		t.Fatalf("expected case-insensitive match on ubuntu, got %v", got)
	}
}

func TestMatchGlob(t *testing.T) {
	got := Match(labels, "*.ISO")
	if !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Fatalf("expected iso files, got %v", got)
	}
	if got := Match(labels, "deb?an*"); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected debian, got %v", got)
	}
}

func TestMatchNoResults(t *testing.T) {
	if got := Match(labels, "zzzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
