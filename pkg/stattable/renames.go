package stattable

import (
	"regexp"
	"strings"
)

// keyColumnNames are the identity columns shared by every table on a
// player page. A column containing any of these substrings never gets a
// category prefix and is eligible as a merge key.
var keyColumnNames = []string{"Season", "Age", "Squad", "Country", "Comp", "LgRank", "MP"}

func isIdentityName(name string) bool {
	for _, key := range keyColumnNames {
		if strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// playingTimePatterns match minutes/starts columns that the site repeats
// on every table. They are stripped everywhere except the playing_time
// table itself.
var playingTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Playing[_ ]Time[_ ]`),
	regexp.MustCompile(`(?i)^(MP|Starts|Min|90s|Mn/MP|Min%|Mn/Start|Compl)$`),
	regexp.MustCompile(`(?i)Performance_(Starts|Min|90s)`),
	regexp.MustCompile(`(?i)Team_Success_`),
	regexp.MustCompile(`(?i)Subs_`),
}

// duplicate90sColumns are per-category 90s columns made redundant by the
// one kept on the standard table.
var duplicate90sColumns = map[string]bool{
	"90s_shooting":   true,
	"90s_passing":    true,
	"90s_pass_types": true,
	"90s_defense":    true,
	"90s_gca":        true,
	"90s_possession": true,
	"90s_misc":       true,
}

var fieldPlayerBasicRenames = map[string]string{
	"Season":  "season",
	"Age":     "age",
	"Squad":   "squad",
	"Country": "country",
	"Comp":    "competition",
}

var fieldPlayerPlayingTimeRenames = map[string]string{
	"MP_playing_time":                       "matches_played",
	"Playing Time_MP_playing_time":          "matches_played",
	"Starts_playing_time":                   "starts",
	"Playing Time_Starts_playing_time":      "starts",
	"Min_playing_time":                      "minutes",
	"Playing Time_Min_playing_time":         "minutes",
	"90s_playing_time":                      "minutes_90",
	"Playing Time_90s_playing_time":         "minutes_90",
	"Playing Time_Mn/MP":                    "minutes_per_match",
	"Mn/MP_playing_time":                    "minutes_per_match",
	"Playing Time_Mn/MP_playing_time":       "minutes_per_match",
	"Playing Time_Min%_playing_time":        "minutes_pct",
	"Min%_playing_time":                     "minutes_pct",
	"Starts_Starts_playing_time":            "starts_total",
	"Starts_Mn/Start_playing_time":          "minutes_per_start",
	"Mn/Start_playing_time":                 "minutes_per_start",
	"Starts_Compl":                          "matches_completed",
	"Compl_playing_time":                    "matches_completed",
	"Starts_Compl_playing_time":             "matches_completed",
	"Subs_Subs_playing_time":                "subs_on",
	"Subs_playing_time":                     "subs_on",
	"Subs_Mn/Sub_playing_time":              "minutes_per_sub",
	"Mn/Sub_playing_time":                   "minutes_per_sub",
	"Subs_unSub_playing_time":               "subs_unused",
	"unSub_playing_time":                    "subs_unused",
	"Team Success_PPM_playing_time":         "team_points_per_match",
	"PPM_playing_time":                      "team_points_per_match",
	"Team Success_onG_playing_time":         "team_goals_for",
	"onG_playing_time":                      "team_goals_for",
	"Team Success_onGA_playing_time":        "team_goals_against",
	"onGA_playing_time":                     "team_goals_against",
	"Team Success_+/-_playing_time":         "team_goal_diff",
	"+/-_playing_time":                      "team_goal_diff",
	"Team Success_+/-90_playing_time":       "team_goal_diff_per90",
	"+/-90_playing_time":                    "team_goal_diff_per90",
	"Team Success_On-Off_playing_time":      "team_on_off",
	"On-Off_playing_time":                   "team_on_off",
	"Team Success (xG)_onxG_playing_time":   "team_xg_for",
	"onxG_playing_time":                     "team_xg_for_xg",
	"Team Success (xG)_onxGA_playing_time":  "team_xg_against",
	"onxGA_playing_time":                    "team_xg_against_xg",
	"Team Success (xG)_xG+/-_playing_time":  "team_xg_diff",
	"xG+/-_playing_time":                    "team_xg_diff",
	"Team Success (xG)_xG+/-90_playing_time": "team_xg_diff_per90",
	"xG+/-90_playing_time":                  "team_xg_diff_per90",
	"Team Success (xG)_On-Off_playing_time": "team_xg_on_off",
}

// fieldPlayerSuffixMap abbreviates category suffixes on merged column
// names. Order matters: the first matching suffix wins.
var fieldPlayerSuffixMap = []struct{ old, new string }{
	{"_shooting", "_sh"},
	{"_passing", "_pass"},
	{"_pass_types", "_pt"},
	{"_defense", "_def"},
	{"_possession", "_poss"},
	{"_misc", "_misc"},
	{"_gca", "_gca"},
}

var goalkeeperBasicRenames = map[string]string{
	"Season":  "season",
	"Age":     "age",
	"Squad":   "squad",
	"Country": "country",
	"Comp":    "competition",
	"MP":      "matches_played",
	"Starts":  "starts",
	"Min":     "minutes",
	"90s":     "minutes_90",

	"GA":       "goals_against",
	"GA90":     "goals_against_per90",
	"SoTA":     "shots_on_target_against",
	"Saves":    "saves",
	"Save%":    "save_pct",
	"W":        "wins",
	"D":        "draws",
	"L":        "losses",
	"CS":       "clean_sheets",
	"CS%":      "clean_sheet_pct",
	"PKA":      "penalty_kicks_attempted",
	"PKsv":     "penalty_kicks_saved",
	"PKm":      "penalty_kicks_missed",
	"PSxG":     "post_shot_expected_goals",
	"PSxG/SoT": "psxg_per_shot_on_target",
	"PSxG+/-":  "psxg_net",
	"/90":      "per_90_minutes",

	"Cmp":      "passes_completed",
	"Att":      "passes_attempted",
	"Cmp%":     "pass_completion_pct",
	"TotDist":  "total_pass_distance",
	"PrgDist":  "progressive_pass_distance",
	"AvgLen":   "avg_pass_length",
	"Launched": "long_passes_attempted",
	"Launch%":  "long_pass_pct",

	"Gls":   "goals",
	"Ast":   "assists",
	"G+A":   "goals_plus_assists",
	"G-PK":  "non_penalty_goals",
	"PK":    "penalty_kicks_made",
	"PKatt": "penalty_kicks_attempted",
	"xG":    "expected_goals",
	"npxG":  "non_penalty_expected_goals",
	"xA":    "expected_assists",

	"Sh":    "shots",
	"SoT":   "shots_on_target",
	"SoT%":  "shots_on_target_pct",
	"G/Sh":  "goals_per_shot",
	"G/SoT": "goals_per_shot_on_target",

	"Tkl":     "tackles",
	"TklW":    "tackles_won",
	"Def 3rd": "tackles_def_3rd",
	"Mid 3rd": "tackles_mid_3rd",
	"Att 3rd": "tackles_att_3rd",
	"Int":     "interceptions",
	"Blocks":  "blocks",

	"Touches":  "touches",
	"Def Pen":  "touches_def_pen_area",
	"Carries":  "carries",
	"Take-Ons": "take_ons",

	"GCA":   "goal_creating_actions",
	"GCA90": "goal_creating_actions_per90",
	"SCA":   "shot_creating_actions",
	"SCA90": "shot_creating_actions_per90",

	"CrdY":  "yellow_cards",
	"CrdR":  "red_cards",
	"Fls":   "fouls_committed",
	"Fld":   "fouls_drawn",
	"Recov": "ball_recoveries",
	"Won":   "aerial_duels_won",
	"Lost":  "aerial_duels_lost",
	"Won%":  "aerial_duels_won_pct",

	"Live": "live_passes",
	"Dead": "dead_passes",
	"FK":   "free_kicks",
	"TB":   "through_balls",
	"Sw":   "switches",
	"Crs":  "crosses",
	"TI":   "throw_ins",
	"CK":   "corner_kicks",

	"Opp":     "crosses_stopped",
	"Stp":     "crosses_stopped_pct",
	"Stp%":    "cross_stop_pct",
	"#OPA":    "defensive_actions_outside_penalty_area",
	"AvgDist": "avg_distance_defensive_actions",
}

// snakeCaseReplacements rewrite mechanical snake_case output into readable
// names. Applied in order as substring replacements, so earlier entries
// can shadow longer ones.
var snakeCaseReplacements = []struct{ old, new string }{
	{"g_plus_a", "goals_plus_assists"},
	{"g_minus_pk", "goals_minus_penalties"},
	{"g_plus_a_minus_pk", "goals_plus_assists_minus_penalties"},
	{"per_90_minutes", "per_90"},
	{"def_3rd", "def_third"},
	{"mid_3rd", "mid_third"},
	{"att_3rd", "att_third"},
	{"def_pen", "def_penalty_area"},
	{"att_pen", "att_penalty_area"},
	{"take_minus_ons", "takeons"},
	{"mn_per_mp", "minutes_per_match"},
	{"min_pct", "minutes_pct"},
	{"mn_per_start", "minutes_per_start"},
	{"mn_per_sub", "minutes_per_sub"},
}
