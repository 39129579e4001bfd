package latex

import "strings"

// latexReplacer rewrites every character LaTeX treats specially. strings.Replacer
// makes a single pass, so replacement text is never escaped again.
var latexReplacer = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"{", "\\{",
	"}", "\\}",
	"$", "\\$",
	"&", "\\&",
	"#", "\\#",
	"_", "\\_",
	"%", "\\%",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

// Escape makes s safe to interpolate into LaTeX body text
func Escape(s string) string { return latexReplacer.Replace(s) }

// escJoin escapes each element then joins with sep
func escJoin(slice []string, sep string) string {
	if len(slice) == 0 {
		return ""
	}
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = Escape(s)
	}
	return strings.Join(out, sep)
}
