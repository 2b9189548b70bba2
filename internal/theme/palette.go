package theme

// Palette defines the color scheme for a page.
type Palette struct {
	Background string
	Card       string
	CardBorder string
	Text       string
	TextMuted  string
	Accent     string
	// AccentAlt highlights temperatures.
	AccentAlt string
}

// DefaultPalette is used before any weather has loaded.
var DefaultPalette = Palette{
	Background: "#e8f0f5",
	Card:       "#ffffff",
	CardBorder: "#c8d8e8",
	Text:       "#1a2530",
	TextMuted:  "#506070",
	Accent:     "#2080b0",
	AccentAlt:  "#c06030",
}

// DefaultDarkPalette is the dark-mode counterpart of DefaultPalette.
var DefaultDarkPalette = Palette{
	Background: "#0f0f1a",
	Card:       "#1a1a2e",
	CardBorder: "#2a2a4e",
	Text:       "#eeeeee",
	TextMuted:  "#8888a0",
	Accent:     "#4fc3f7",
	AccentAlt:  "#ff7043",
}

type palettePair struct {
	light Palette
	dark  Palette
}

// Light variants are tuned for daylight backgrounds, dark ones for the
// user's dark mode.
var palettes = map[WeatherCondition]palettePair{
	ConditionClearWarm: {
		light: Palette{"#f5f0e8", "#ffffff", "#e0d8c8", "#2a2520", "#706050", "#d07020", "#c04010"},
		dark:  Palette{"#0a0a12", "#141420", "#252535", "#dde0e8", "#7080a0", "#7799cc", "#dd7755"},
	},
	ConditionClearCool: {
		light: Palette{"#e8f0f5", "#ffffff", "#c8d8e8", "#1a2530", "#506070", "#2080b0", "#c06030"},
		dark:  Palette{"#060810", "#101420", "#1a2030", "#d0d8e8", "#6070a0", "#6688bb", "#cc7766"},
	},
	ConditionPartlyCloudy: {
		light: Palette{"#eef1f4", "#ffffff", "#d0d8e0", "#202830", "#607080", "#3090c0", "#d06030"},
		dark:  Palette{"#0a0a14", "#121220", "#202030", "#d8d8e0", "#707080", "#7080a0", "#aa7766"},
	},
	ConditionMostlyCloudy: {
		light: Palette{"#dfe3e7", "#f0f2f4", "#c0c8d0", "#252830", "#606870", "#4080a0", "#b05530"},
		dark:  Palette{"#0c0c0e", "#141416", "#1e1e22", "#d0d0d4", "#686870", "#606878", "#886666"},
	},
	ConditionLightRain: {
		light: Palette{"#d8e2e8", "#e8f0f4", "#b8c8d4", "#1a2028", "#506068", "#3070a0", "#a05535"},
		dark:  Palette{"#08090c", "#0e1014", "#181c22", "#c8ccd4", "#606870", "#506080", "#887066"},
	},
	ConditionHeavyRain: {
		light: Palette{"#c8d2d8", "#dce4e8", "#a8b8c4", "#181c20", "#485058", "#306088", "#904830"},
		dark:  Palette{"#050607", "#0a0c0e", "#141618", "#bcc0c4", "#545860", "#405060", "#705858"},
	},
	ConditionStorm: {
		light: Palette{"#c0c4cc", "#d4d8e0", "#a0a8b4", "#181820", "#484858", "#6050a0", "#a04040"},
		dark:  Palette{"#050406", "#0a080c", "#141218", "#c0b8c0", "#585060", "#604070", "#804848"},
	},
	ConditionSnow: {
		light: Palette{"#f0f4f8", "#ffffff", "#d8e0e8", "#1c2430", "#5a6878", "#4a88b8", "#b86048"},
		dark:  Palette{"#0a0e14", "#121820", "#1e2630", "#e4eaf0", "#6a7888", "#88aacc", "#cc8877"},
	},
	ConditionFog: {
		light: Palette{"#dcdee2", "#eaecf0", "#c0c4c8", "#202428", "#606468", "#607080", "#906858"},
		dark:  Palette{"#080808", "#101010", "#1c1c1c", "#c4c4c8", "#606064", "#585860", "#706060"},
	},
	ConditionHot: {
		light: Palette{"#f8f0e0", "#ffffff", "#e8d8c0", "#302010", "#806040", "#d07010", "#d03000"},
		dark:  Palette{"#100c08", "#1a1410", "#28201a", "#e0d8cc", "#807060", "#aa7744", "#bb5544"},
	},
	ConditionFrost: {
		light: Palette{"#e4ecf4", "#f4f8fc", "#c4d4e4", "#102030", "#406080", "#2080b8", "#c06040"},
		dark:  Palette{"#040810", "#0a1018", "#121c28", "#d0d8e4", "#607090", "#5080a0", "#a07070"},
	},
}

// GetPalette returns the palette for a condition in light or dark mode.
// An empty condition yields the default palette for the mode.
func GetPalette(condition WeatherCondition, dark bool) Palette {
	p, ok := palettes[condition]
	switch {
	case !ok && dark:
		return DefaultDarkPalette
	case !ok:
		return DefaultPalette
	case dark:
		return p.dark
	default:
		return p.light
	}
}
