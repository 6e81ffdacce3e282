// Package converter folds Chinese text between script variants.
package converter

import (
	"fmt"

	"github.com/liuzl/gocc"
	"github.com/sirupsen/logrus"
)

// TextConverter converts Traditional Chinese text to Simplified Chinese.
type TextConverter interface {
	TradToSim(text string) string
}

// openCCConverter is the gocc backed TextConverter
type openCCConverter struct {
	cc *gocc.OpenCC
}

// NewOpenCCConverter loads the t2s dictionary and returns a converter.
func NewOpenCCConverter() (TextConverter, error) {
	cc, err := gocc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenCC converter: %w", err)
	}
	logrus.Debug("OpenCC converter (t2s) initialized")
	return &openCCConverter{cc: cc}, nil
}

// TradToSim returns text converted to Simplified Chinese, or text unchanged
// when conversion fails.
func (c *openCCConverter) TradToSim(text string) string {
	if c.cc == nil || text == "" {
		return text
	}
	out, err := c.cc.Convert(text)
	if err != nil {
		logrus.Warnf("Failed to convert %q to Simplified Chinese: %v", text, err)
		return text
	}
	return out
}

// identity leaves text untouched.
type identity struct{}

func (identity) TradToSim(text string) string { return text }

// Identity returns a converter that performs no conversion.
func Identity() TextConverter {
	return identity{}
}

// NewOrIdentity returns the OpenCC converter, falling back to Identity when
// the dictionaries cannot be loaded.
func NewOrIdentity() TextConverter {
	c, err := NewOpenCCConverter()
	if err != nil {
		logrus.Warnf("Traditional/Simplified folding disabled: %v", err)
		return Identity()
	}
	return c
}
