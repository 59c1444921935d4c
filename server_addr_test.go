package hotelcore

import "testing"

func TestNormalizeServerAddr(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "game.example.com", want: "game.example.com:30000"},
		{in: "game.example.com:38101", want: "game.example.com:38101"},
		{in: "  game.example.com  ", want: "game.example.com:30000"},
		{in: "[::1]:38101", want: "[::1]:38101"},
		{in: "::1", want: "[::1]:30000"},
		{in: "", wantErr: true},
		{in: "game.example.com:notaport", wantErr: true},
	}
	for _, c := range cases {
		got, err := normalizeServerAddr(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("normalizeServerAddr(%q) = %q, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeServerAddr(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("normalizeServerAddr(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseProxyAddr(t *testing.T) {
	addr, user, pass, err := parseProxyAddr("10.0.0.1:1080")
	if err != nil || addr != "10.0.0.1:1080" || user != "" || pass != "" {
		t.Fatalf("got (%q,%q,%q,%v)", addr, user, pass, err)
	}

	addr, user, pass, err = parseProxyAddr("10.0.0.1:1080:alice:secret")
	if err != nil || addr != "10.0.0.1:1080" || user != "alice" || pass != "secret" {
		t.Fatalf("got (%q,%q,%q,%v)", addr, user, pass, err)
	}

	if _, _, _, err := parseProxyAddr("not-a-proxy"); err == nil {
		t.Fatalf("expected error for malformed proxy string")
	}
}
