package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"unicode/utf8"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
	"golang.org/x/text/language"

	"citeview/bib"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	PreviewConfig struct {
		Template         string         `yaml:"template"`
		KeywordDelimiter string         `yaml:"keyword_delimiter" validate:"required,len=1"`
		Highlight        HighlightStyle `yaml:"highlight" validate:"gte=0"`
		Aliases          bool           `yaml:"aliases"`
		Language         string         `yaml:"language" validate:"required,bcp47_language_tag"`
		Sprig            bool           `yaml:"sprig"`
	}

	AbbreviationConfig struct {
		Name         string `yaml:"name" validate:"required"`
		Abbreviation string `yaml:"abbreviation" validate:"required"`
	}

	JournalsConfig struct {
		Abbreviations []AbbreviationConfig `yaml:"abbreviations" validate:"dive"`
		// warn about abbreviated journal names in rendered records
		Check bool `yaml:"check"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Preview   PreviewConfig  `yaml:"preview"`
		Journals  JournalsConfig `yaml:"journals"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above. Layout text uses braces and
// backslashes and must reach compiler untouched.
const TemplateFieldName = "template"

var requiredOptions = []func(*gencfg.ProcessingOptions){
	gencfg.WithDoNotExpandField(TemplateFieldName),
}

// Delimiter returns keyword separator as a rune.
func (c *PreviewConfig) Delimiter() rune {
	if r, _ := utf8.DecodeRuneInString(c.KeywordDelimiter); r != utf8.RuneError {
		return r
	}
	return ','
}

// LanguageTag returns parsed language of user visible labels.
func (c *PreviewConfig) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// Resolver returns field resolver selected by configuration.
func (c *PreviewConfig) Resolver() bib.Resolver {
	if c.Aliases {
		return bib.AliasResolver
	}
	return bib.DirectResolver
}

// List returns configured journal abbreviations.
func (c *JournalsConfig) List() *bib.Abbreviations {
	list := bib.NewAbbreviations()
	for _, a := range c.Abbreviations {
		list.Add(bib.Abbreviation{Name: a.Name, Abbreviation: a.Abbreviation})
	}
	return list
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// unknown keys are errors, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults, then applies
// values from the file at path (if any) on top and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump serializes actual configuration.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
