package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const maxIncludes = 32

var (
	forbiddenPrimitives = []*regexp.Regexp{
		regexp.MustCompile(`\\write18`),
		regexp.MustCompile(`\\openout`),
		regexp.MustCompile(`\\openin`),
		regexp.MustCompile(`\\read\b`),
		regexp.MustCompile(`\\immediate\s*\\write`),
	}

	// packages that re-enable shell escape or read arbitrary files
	forbiddenPackages = []string{"shellesc", "write18", "catchfile", "verbatiminput"}

	usePackagePattern = regexp.MustCompile(`\\usepackage\s*(\[[^\]]*\])?\s*\{([^}]*)\}`)
	includePattern    = regexp.MustCompile(`\\(input|include)\s*\{([^}]*)\}`)
)

// validateLatex rejects sources that use file or shell primitives, unsafe
// packages, or includes that leave the build directory
func validateLatex(src string) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("empty input")
	}
	lower := strings.ToLower(src)

	for _, re := range forbiddenPrimitives {
		if re.MatchString(lower) {
			return fmt.Errorf("contains forbidden primitive: %s", re.String())
		}
	}

	for _, m := range usePackagePattern.FindAllStringSubmatch(lower, -1) {
		for _, pkg := range strings.Split(m[2], ",") {
			pkg = strings.TrimSpace(pkg)
			for _, bad := range forbiddenPackages {
				if pkg == bad {
					return fmt.Errorf("forbidden package: %s", bad)
				}
			}
		}
	}

	includes := includePattern.FindAllStringSubmatch(lower, -1)
	for _, m := range includes {
		arg := strings.TrimSpace(m[2])
		if strings.HasPrefix(arg, "/") || strings.Contains(arg, "://") || strings.Contains(arg, "..") {
			return fmt.Errorf("forbidden include path: %s", arg)
		}
	}
	if len(includes) > maxIncludes {
		return fmt.Errorf("too many includes: %d", len(includes))
	}

	return nil
}
