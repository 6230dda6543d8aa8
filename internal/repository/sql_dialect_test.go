package repository

import (
	"testing"
)

func TestBuildSearchCondition(t *testing.T) {
	cond, argCount := buildSearchCondition(nil, []string{"name", "description", " "})
	want := "name LIKE ? OR description LIKE ?"
	if cond != want {
		t.Fatalf("search condition mismatch, want %q got %q", want, cond)
	}
	if argCount != 2 {
		t.Fatalf("expected 2 args, got %d", argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%mug%", 3)
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	for i, arg := range args {
		if arg != "%mug%" {
			t.Fatalf("arg %d mismatch: %v", i, arg)
		}
	}
}

func TestLikeOperatorDefaultsToSQLite(t *testing.T) {
	if op := likeOperator(nil); op != "LIKE" {
		t.Fatalf("expected LIKE for nil db, got %s", op)
	}
}
