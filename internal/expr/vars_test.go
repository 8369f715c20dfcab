package expr_test

import (
	"reflect"
	"testing"

	"strux/internal/expr"
)

func TestIdents(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"a + b * a", []string{"a", "b"}},
		// routine names are not variable uses
		{"f(x) + a[i].y", []string{"x", "a", "i"}},
		{"obj.method(n)", []string{"obj", "n"}},
		{"Point{x: px, y: py}", []string{"px", "py"}},
		{"42 + 3.14", nil},
		{"{a, b, a}", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := expr.Idents(parse(t, tt.src))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Idents(%q): got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		src   string
		name  string
		plain bool
	}{
		{"x", "x", true},
		{"a[i]", "a", false},
		{"rec.comp", "rec", false},
		{"m[i].x[j]", "m", false},
		{"f(x)", "", false},
		{"42", "", false},
	}
	for _, tt := range tests {
		name, plain := expr.Target(parse(t, tt.src))
		if name != tt.name || plain != tt.plain {
			t.Errorf("Target(%q): got (%q, %v), want (%q, %v)",
				tt.src, name, plain, tt.name, tt.plain)
		}
	}
}

func TestUsedInTarget(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		// a plain name is overwritten, not read
		{"x", nil},
		// a partial update reads the root and the subscripts
		{"a[i]", []string{"a", "i"}},
		{"a[i + j]", []string{"a", "i", "j"}},
		{"rec.comp", []string{"rec"}},
		{"m[i].x[k]", []string{"m", "i", "k"}},
	}
	for _, tt := range tests {
		got := expr.UsedInTarget(parse(t, tt.src))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("UsedInTarget(%q): got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestWalkStopsDescent(t *testing.T) {
	e := parse(t, "f(a + b)")
	var visited int
	expr.Walk(e, func(expr.Expr) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visit returning false must stop descent, visited %d nodes", visited)
	}
}
