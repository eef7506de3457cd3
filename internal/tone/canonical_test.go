package tone

import "testing"

func TestCanonicalTemperature(t *testing.T) {
	tests := []struct {
		input string
		want  Temperature
	}{
		{"warm", TemperatureWarm},
		{"Warm", TemperatureWarm},
		{"warm (golden undertone)", TemperatureWarm},
		{"cool", TemperatureCool},
		{"COOL-pink", TemperatureCool},
		{"cold", TemperatureCool},
		{"neutral", TemperatureNeutral},
		{"olive", TemperatureNeutral},
		{"", TemperatureNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalTemperature(tt.input); got != tt.want {
				t.Errorf("CanonicalTemperature(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalSeason(t *testing.T) {
	tests := []struct {
		input string
		want  Season
	}{
		{"spring", SeasonSpring},
		{"Light Spring", SeasonSpring},
		{"summer", SeasonSummer},
		{"autumn", SeasonAutumn},
		{"fall", SeasonAutumn},
		{"Deep Fall", SeasonAutumn},
		{"winter", SeasonWinter},
		{"Unknown", SeasonAutumn},
		{"", SeasonAutumn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalSeason(tt.input); got != tt.want {
				t.Errorf("CanonicalSeason(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalisationIdempotent(t *testing.T) {
	for _, temp := range Temperatures() {
		if got := CanonicalTemperature(string(temp)); got != temp {
			t.Errorf("CanonicalTemperature(%q) = %q, want unchanged", temp, got)
		}
		if got := CanonicalTemperature(string(CanonicalTemperature(string(temp)))); got != temp {
			t.Errorf("CanonicalTemperature is not idempotent for %q", temp)
		}
	}
	for _, season := range Seasons() {
		if got := CanonicalSeason(string(season)); got != season {
			t.Errorf("CanonicalSeason(%q) = %q, want unchanged", season, got)
		}
	}
}

func TestCanonicalHex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#c08060", "#C08060"},
		{"C08060", "#C08060"},
		{"#c80", DefaultHex},
		{"tan", DefaultHex},
		{"", DefaultHex},
	}

	for _, tt := range tests {
		if got := CanonicalHex(tt.input); got != tt.want {
			t.Errorf("CanonicalHex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
