package models

// League is one competition discovered from the competitions catalog.
// SeasonURL points at the latest season page once resolved.
type League struct {
	ID        string `json:"league_id" yaml:"league_id"`
	Name      string `json:"name" yaml:"name"`
	Country   string `json:"country" yaml:"country"`
	Tier      string `json:"tier" yaml:"tier"`
	Gender    string `json:"gender" yaml:"gender"`
	BaseURL   string `json:"base_url" yaml:"base_url"`
	SeasonURL string `json:"season_url,omitempty" yaml:"season_url,omitempty"`
}

// Team is one club extracted from a league standings table.
type Team struct {
	Name       string `json:"team_name"`
	SquadURL   string `json:"squad_url"`
	LeagueName string `json:"league_name,omitempty"`
}

// PlayerLink is one roster entry pointing at a player's all-competitions
// stats page.
type PlayerLink struct {
	Name string
	URL  string
}
