package reminder

import "testing"

func TestString(t *testing.T) {
	var tests = []struct {
		name string
		rem  Reminder
		want string
	}{
		{
			name: "plain",
			rem:  New("src/a.rs", 1, 4, "TODO", "TODO: fix parsing"),
			want: "src/a.rs:1:4:TODO: fix parsing",
		},
		{
			name: "colons kept",
			rem:  New("C:/x.c", 12, 1, "BUG", "BUG: a: b"),
			want: "C:/x.c:12:1:BUG: a: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rem.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	r := New("f.go", 3, 5, "FIXME", "FIXME: overflow")
	if r.File() != "f.go" || r.Row() != 3 || r.Col() != 5 {
		t.Fatalf("unexpected position %s:%d:%d", r.File(), r.Row(), r.Col())
	}
	if r.Verb() != "FIXME" {
		t.Fatalf("expected verb FIXME, got %q", r.Verb())
	}
	if r.Text() != "FIXME: overflow" {
		t.Fatalf("unexpected text %q", r.Text())
	}
}
