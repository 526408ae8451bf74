package media

import "strings"

// defaultFontFile is used for any style the table does not know.
const defaultFontFile = "Poppins-Regular.ttf"

var fontFiles = map[string]string{
	"arial":   "Arial.ttf",
	"roboto":  "Roboto-Regular.ttf",
	"atma":    "Atma-Regular.ttf",
	"bangers": "Bangers-Regular.ttf",
}

// FontFileForStyle resolves a style name to a font file, case-insensitively.
func FontFileForStyle(style string) string {
	if name, ok := fontFiles[strings.ToLower(style)]; ok {
		return name
	}
	return defaultFontFile
}
