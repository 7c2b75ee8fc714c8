package common

import "testing"

func TestPlayerNameFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "standard player URL",
			url:  "https://fbref.com/en/players/bc7dc64d/Bukayo-Saka-Stats",
			want: "Bukayo Saka",
		},
		{
			name: "all competitions URL",
			url:  "https://fbref.com/en/players/bc7dc64d/all_comps/Bukayo-Saka-Stats---All-Competitions",
			want: "Bukayo Saka",
		},
		{
			name: "no stats segment",
			url:  "https://fbref.com/en/players/bc7dc64d/",
			want: "unknown_player",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayerNameFromURL(tt.url); got != tt.want {
				t.Errorf("PlayerNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestToAllCompsURL(t *testing.T) {
	tests := []struct {
		name   string
		href   string
		player string
		want   string
	}{
		{
			name:   "season specific URL",
			href:   "/en/players/bc7dc64d/2023-2024/Bukayo-Saka-Stats",
			player: "Bukayo Saka",
			want:   "https://fbref.com/en/players/bc7dc64d/all_comps/Bukayo-Saka-Stats---All-Competitions",
		},
		{
			name:   "plain player URL",
			href:   "/en/players/98ea5115/David-Raya-Stats",
			player: "David Raya",
			want:   "https://fbref.com/en/players/98ea5115/all_comps/David-Raya-Stats---All-Competitions",
		},
		{
			name:   "already converted",
			href:   "/en/players/bc7dc64d/all_comps/Bukayo-Saka-Stats---All-Competitions",
			player: "Bukayo Saka",
			want:   "https://fbref.com/en/players/bc7dc64d/all_comps/Bukayo-Saka-Stats---All-Competitions",
		},
		{
			name:   "unexpected shape passes through",
			href:   "/en/squads/18bb7c10/Arsenal-Stats",
			player: "Arsenal",
			want:   "https://fbref.com/en/squads/18bb7c10/Arsenal-Stats",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAllCompsURL(tt.href, tt.player); got != tt.want {
				t.Errorf("ToAllCompsURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  https://fbref.com/en/comps/ ", "https://fbref.com/en/comps/"},
		{"https://fbref.com/en/comps/9/,", "https://fbref.com/en/comps/9/"},
		{"[link](https://fbref.com/en/comps/)", "https://fbref.com/en/comps/"},
		{"(https://fbref.com/en/comps/)", "https://fbref.com/en/comps/"},
	}
	for _, tt := range tests {
		if got := SanitizeURL(tt.in); got != tt.want {
			t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://fbref.com/en/comps/",
		"http://fbref.com/en/squads/18bb7c10/Arsenal-Stats",
	}
	invalid := []string{
		"",
		"ftp://fbref.com/",
		"fbref.com/en/comps/",
		"https://fbref.com/en/with space",
	}
	for _, u := range valid {
		if !ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = true, want false", u)
		}
	}
}
