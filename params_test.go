package seam

import (
	"strings"
	"testing"
)

func TestExpandMacros(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		orderBy []string
		want    string
		wantErr string
	}{
		{
			name: "no macros untouched",
			text: "SELECT 1 FROM t",
			want: "SELECT 1 FROM t",
		},
		{
			name:    "order macro joined",
			text:    "ORDER BY $order_by",
			orderBy: []string{"created_at DESC", "id ASC"},
			want:    "ORDER BY created_at DESC, id ASC",
		},
		{
			name:    "reverse macro flips directions",
			text:    "OVER (ORDER BY $rev_order_by)",
			orderBy: []string{"created_at DESC"},
			want:    "OVER (ORDER BY created_at ASC)",
		},
		{
			name:    "both macros in one text",
			text:    "$order_by | $rev_order_by",
			orderBy: []string{"a ASC", "b DESC"},
			want:    "a ASC, b DESC | a DESC, b ASC",
		},
		{
			name:    "macro without order terms fails",
			text:    "ORDER BY $order_by",
			wantErr: "order_by macro",
		},
		{
			name:    "reverse macro without order terms fails",
			text:    "ORDER BY $rev_order_by",
			wantErr: "order_by macro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandMacros(tt.text, tt.orderBy)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expandMacros() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("expandMacros() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expandMacros() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReverseOrder(t *testing.T) {
	got := reverseOrder([]string{"created_at DESC", "name asc", "id"})
	want := []string{"created_at ASC", "name DESC", "id"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reverseOrder()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBindPlaceholders_Question(t *testing.T) {
	text := "a = ?x AND b = ?y AND c = ?x"
	params := map[string]any{"x": 1, "y": "two"}

	got, args, err := bindPlaceholders(text, params, Question)
	if err != nil {
		t.Fatalf("bindPlaceholders() error: %v", err)
	}
	if want := "a = ? AND b = ? AND c = ?"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	// One argument per occurrence, duplicates included.
	if len(args) != 3 || args[0] != 1 || args[1] != "two" || args[2] != 1 {
		t.Errorf("args = %v, want [1 two 1]", args)
	}
}

func TestBindPlaceholders_Dollar(t *testing.T) {
	text := "a = ?x AND b = ?y AND c = ?x"
	params := map[string]any{"x": 1, "y": "two"}

	got, args, err := bindPlaceholders(text, params, Dollar)
	if err != nil {
		t.Fatalf("bindPlaceholders() error: %v", err)
	}
	if want := "a = $1 AND b = $2 AND c = $3"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3 entries", args)
	}
}

func TestBindPlaceholders_MissingParameter(t *testing.T) {
	_, _, err := bindPlaceholders("a = ?who", map[string]any{}, Question)
	if err == nil {
		t.Fatal("expected error for missing parameter")
	}
	if !strings.Contains(err.Error(), "Missing parameter: who") {
		t.Errorf("error = %q, want containing %q", err.Error(), "Missing parameter: who")
	}
}

func TestBindPlaceholders_BareMarkerUntouched(t *testing.T) {
	got, args, err := bindPlaceholders("a = ? AND b = ?x", map[string]any{"x": 5}, Question)
	if err != nil {
		t.Fatalf("bindPlaceholders() error: %v", err)
	}
	if want := "a = ? AND b = ?"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("args = %v, want [5]", args)
	}
}

func TestRewrite_OccurrenceOrderAcrossClauses(t *testing.T) {
	text := "WITH c AS (SELECT * FROM t WHERE a = ?first) SELECT 1 WHERE b = ?second"
	got, args, err := rewrite(text, map[string]any{"first": 10, "second": 20}, nil, Dollar)
	if err != nil {
		t.Fatalf("rewrite() error: %v", err)
	}
	if !strings.Contains(got, "a = $1") || !strings.Contains(got, "b = $2") {
		t.Errorf("rewrite() = %q, markers not in occurrence order", got)
	}
	if args[0] != 10 || args[1] != 20 {
		t.Errorf("args = %v, want [10 20]", args)
	}
}
