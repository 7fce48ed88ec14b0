package archive

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	Zip    Format = "zip"
	Tar    Format = "tar"
	TarGz  Format = "tar.gz"
	TarZst Format = "tar.zst"
	Jar    Format = "jar"
)

var formats = []Format{Zip, Tar, TarGz, TarZst, Jar}

// aliases maps extra file suffixes onto formats. Longer suffixes are
// checked before shorter ones.
var aliases = map[string]Format{
	".tgz":  TarGz,
	".tzst": TarZst,
}

func (f Format) Ext() string {
	return "." + string(f)
}

func (f Format) isZip() bool {
	return f == Zip || f == Jar
}

func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(s), ".")
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	if f, ok := aliases["."+s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown archive format: %s", s)
}

// Detect picks the format from the file name.
func Detect(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))

	var best Format
	bestLen := 0
	for _, f := range formats {
		if strings.HasSuffix(name, f.Ext()) && len(f.Ext()) > bestLen {
			best, bestLen = f, len(f.Ext())
		}
	}
	for suffix, f := range aliases {
		if strings.HasSuffix(name, suffix) && len(suffix) > bestLen {
			best, bestLen = f, len(suffix)
		}
	}

	if best == "" {
		return "", fmt.Errorf("cannot detect archive format of %s", path)
	}
	return best, nil
}
