package logbuf

import (
	"fmt"
	"slices"
	"testing"
)

func lines(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}

	return out
}

func TestAppend_NeverExceedsCapacity(t *testing.T) {
	for _, count := range []int{0, 1, 499, 500, 501, 1000, 1337} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			buf := New(DefaultCapacity)
			sent := lines("line", count)

			for _, line := range sent {
				buf.Append(line)

				if buf.Len() > DefaultCapacity {
					t.Fatalf("Len() = %d after append, exceeds %d", buf.Len(), DefaultCapacity)
				}
			}

			want := sent
			if len(want) > DefaultCapacity {
				want = want[len(want)-DefaultCapacity:]
			}

			if got := buf.Lines(); !slices.Equal(got, want) {
				t.Errorf("Lines() kept %d lines starting %q, want %d starting %q",
					len(got), first(got), len(want), first(want))
			}
		})
	}
}

func TestAppend_501stEvictsFirst(t *testing.T) {
	buf := New(DefaultCapacity)
	for _, line := range lines("Downloading assets...", 501) {
		buf.Append(line)
	}

	got := buf.Lines()
	if len(got) != 500 {
		t.Fatalf("Len = %d, want 500", len(got))
	}

	if got[0] != "Downloading assets... 2" {
		t.Errorf("first line = %q, want the 2nd message sent", got[0])
	}

	if got[499] != "Downloading assets... 501" {
		t.Errorf("last line = %q, want the 501st message", got[499])
	}

	if buf.Evicted() != 1 {
		t.Errorf("Evicted() = %d, want 1", buf.Evicted())
	}
}

func TestReplace_KeepsMostRecent(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		want    []string
	}{
		{name: "empty", history: nil, want: []string{}},
		{name: "short", history: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "exactly full", history: lines("h", 500), want: lines("h", 500)},
		{name: "overflow", history: lines("h", 750), want: lines("h", 750)[250:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := New(DefaultCapacity)
			for _, line := range lines("old", 620) {
				buf.Append(line)
			}

			buf.Replace(tt.history)

			if got := buf.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %d lines starting %q, want %d starting %q",
					len(got), first(got), len(tt.want), first(tt.want))
			}
		})
	}
}

func TestReplace_DoesNotAliasInput(t *testing.T) {
	history := []string{"a", "b"}
	buf := New(4)
	buf.Replace(history)

	history[0] = "changed"

	if got := buf.Lines(); got[0] != "a" {
		t.Errorf("buffer aliases the replaced history: %v", got)
	}
}

func TestAppendAfterReplace(t *testing.T) {
	buf := New(3)
	buf.Replace([]string{"a", "b", "c", "d"})
	buf.Append("e")

	if got, want := buf.Lines(), []string{"c", "d", "e"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestLines_ReturnsCopy(t *testing.T) {
	buf := New(2)
	buf.Append("a")

	got := buf.Lines()
	got[0] = "changed"

	if buf.Lines()[0] != "a" {
		t.Error("Lines() exposes internal storage")
	}
}

func TestNew_NonPositiveCapacity(t *testing.T) {
	if got := New(0).Cap(); got != DefaultCapacity {
		t.Errorf("New(0).Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func first(in []string) string {
	if len(in) == 0 {
		return ""
	}

	return in[0]
}
