package workspace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01T10:00:00Z", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01T10:00:00+02:00", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-05-01T10:00:00.123456", time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.Local)},
		{"2024-05-01T10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)},
		{"2024-05-01T10:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.in)
		if err != nil {
			t.Errorf("ParseTime(%q) = %v, want nil error", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseTime("next tuesday"); err == nil {
		t.Errorf("ParseTime(%q) = nil error, want error", "next tuesday")
	}
}

func TestTimeJSON(t *testing.T) {
	var v struct {
		A Time  `json:"a"`
		B *Time `json:"b"`
		C Time  `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2024-05-01T10:00:00","b":null,"c":null}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.B != nil || !v.C.IsZero() {
		t.Errorf("null timestamps decoded to %v and %v, want nil and zero", v.B, v.C)
	}
	out, err := json.Marshal(v.A)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(out), `"2024-05-01T10:00:00"`; got != want {
		t.Errorf("Marshal(%v) = %s, want %s", v.A, got, want)
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"grace  brewster murray hopper", "GBMH"},
		{"émile", "É"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Initials(tc.name); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestContactName(t *testing.T) {
	contacts := []Contact{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}
	two, nine := ID(2), ID(9)
	if got := ContactName(contacts, &two); got != "Grace" {
		t.Errorf("ContactName(2) = %q, want Grace", got)
	}
	if got := ContactName(contacts, &nine); got != Unassigned {
		t.Errorf("ContactName(9) = %q, want %q", got, Unassigned)
	}
	if got := ContactName(contacts, nil); got != Unassigned {
		t.Errorf("ContactName(nil) = %q, want %q", got, Unassigned)
	}
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d int) Time { return At(now.AddDate(0, 0, d)) }
	events := []Event{
		{ID: 1, StartTime: at(3)},
		{ID: 2, StartTime: at(-1)},
		{ID: 3, StartTime: at(1)},
		{ID: 4, StartTime: At(now)},
		{ID: 5, StartTime: at(2)},
	}
	var got []ID
	for _, e := range UpcomingEvents(events, now, 3) {
		got = append(got, e.ID)
	}
	if diff := cmp.Diff([]ID{4, 3, 5}, got); diff != "" {
		t.Errorf("UpcomingEvents mismatch (-want +got):\n%s", diff)
	}
}

func TestTotalUnread(t *testing.T) {
	channels := []Channel{{Name: "general", UnreadCount: 2}, {Name: "private", UnreadCount: 3}}
	if got := TotalUnread(channels); got != 5 {
		t.Errorf("TotalUnread = %d, want 5", got)
	}
}
