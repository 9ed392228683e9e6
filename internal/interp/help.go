package interp

// helpText is the static output of the `?` command. Line numbers are the
// same 0-based indexes shown in the prompt and in printed lines.
var helpText = []string{
	"         NUM - Set current line",
	"           ? - Print this help",
	"     c [NUM] - Print context, defaults to 2 lines",
	"           d - Delete current line",
	"           e - Edit current line",
	"    f [TEXT] - Find text below current line",
	"    F [TEXT] - Find text above current line",
	"           i - Insert new line below current line",
	"           I - Insert new line above current line",
	"           m - Print every line",
	"     p [NUM] - Print current line, or set and print the given line",
	"           q - Quit",
	"w [FILENAME] - Write to FILENAME, or to the opened file",
}
