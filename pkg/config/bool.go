package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	trueTokens  = []string{"yes", "true", "t", "y", "1"}
	falseTokens = []string{"no", "false", "f", "n", "0"}
)

// ParseBool accepts the yes/no style tokens the pipeline documents, case-insensitive.
func ParseBool(s string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lo.Contains(trueTokens, v):
		return true, nil
	case lo.Contains(falseTokens, v):
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrBoolValue, s)
}

// FormatBool renders b the way the pipeline script compares it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// boolValue is a flag.Value that always takes an argument, so
// "--merge false" works as well as "--merge=false".
type boolValue struct{ dst *bool }

func (b *boolValue) String() string {
	if b.dst == nil {
		return ""
	}
	return FormatBool(*b.dst)
}

func (b *boolValue) Set(s string) error {
	v, err := ParseBool(s)
	if err != nil {
		return err
	}
	*b.dst = v
	return nil
}
