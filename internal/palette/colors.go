package palette

// Solarized, from <http://ethanschoonover.com/solarized>.
//
//	        light                        dark
//	base03  ...........................  background
//	base02  ...........................  background highlights
//	base01  optional emphasized content  comments
//	base00  body text .................  ...........................
//	base0   ...........................  body text
//	base1   comments ..................  optional emphasized content
//	base2   background highlights .....  ...........................
//	base3   background ................  ...........................
var Solarized = newPalette("solarized", map[string]string{
	"base03":  "#002b36",
	"base02":  "#073642",
	"base01":  "#586e75",
	"base00":  "#657b83",
	"base0":   "#839496",
	"base1":   "#93a1a1",
	"base2":   "#eee8d5",
	"base3":   "#fdf6e3",
	"yellow":  "#b58900",
	"orange":  "#cb4b16",
	"red":     "#dc322f",
	"magenta": "#d33682",
	"violet":  "#6c71c4",
	"blue":    "#268bd2",
	"cyan":    "#2aa198",
	"green":   "#859900",
})

// Tango, from the Tango icon theme guidelines. Names follow Elm's colour
// module (butter is "yellow", chameleon is "green", aluminium is "gray" and
// "charcoal", and so on).
var Tango = newPalette("tango", map[string]string{
	"lightYellow": "#fce94f", "yellow": "#edd400", "darkYellow": "#c4a000",
	"lightOrange": "#fcaf3e", "orange": "#f57900", "darkOrange": "#ce5c00",
	"lightBrown": "#e9b96e", "brown": "#c17d11", "darkBrown": "#8f5902",
	"lightGreen": "#8ae234", "green": "#73d216", "darkGreen": "#4e9a06",
	"lightBlue": "#729fcf", "blue": "#3465a4", "darkBlue": "#204a87",
	"lightPurple": "#ad7fa8", "purple": "#75507b", "darkPurple": "#5c3566",
	"lightRed": "#ef2929", "red": "#cc0000", "darkRed": "#a40000",
	"lightGray": "#eeeeec", "gray": "#d3d7cf", "darkGray": "#babdb6",
	"lightCharcoal": "#888a85", "charcoal": "#555753", "darkCharcoal": "#2e3436",
})
