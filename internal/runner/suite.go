package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feature - содержимое одного файла сценариев.
type Feature struct {
	Name        string         `yaml:"feature"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Background  []StepSpec     `yaml:"background"`
	Scenarios   []ScenarioSpec `yaml:"scenarios"`

	Path string `yaml:"-"`
}

type ScenarioSpec struct {
	Name  string     `yaml:"name"`
	Tags  []string   `yaml:"tags"`
	Steps []StepSpec `yaml:"steps"`
	// Examples превращает сценарий в шаблон: для каждой строки создается
	// отдельный сценарий, а <ключ> в тексте и аргументах заменяется значением.
	Examples []map[string]string `yaml:"examples"`
}

// StepSpec - шаг в файле: ровно один из ключей given/when/then/and/but и
// необязательный список args.
type StepSpec struct {
	Keyword string
	Text    string
	Args    []string
}

func (s *StepSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Given string   `yaml:"given"`
		When  string   `yaml:"when"`
		Then  string   `yaml:"then"`
		And   string   `yaml:"and"`
		But   string   `yaml:"but"`
		Args  []string `yaml:"args"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	set := 0
	for _, kv := range []struct{ keyword, text string }{
		{"Given", raw.Given}, {"When", raw.When}, {"Then", raw.Then}, {"And", raw.And}, {"But", raw.But},
	} {
		if kv.text != "" {
			s.Keyword, s.Text = kv.keyword, kv.text
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("строка %d: шаг должен содержать ровно одно из given/when/then/and/but", node.Line)
	}
	s.Args = raw.Args
	return nil
}

// Step - шаг, связанный с реализацией.
type Step struct {
	Keyword string
	Text    string
	Args    []string
	def     StepDef
}

// Scenario - готовый к запуску сценарий.
type Scenario struct {
	Feature string
	Name    string
	Tags    []string
	Steps   []Step
}

type Suite struct {
	Features  []*Feature
	Scenarios []Scenario
}

// ParseFeature разбирает YAML одного файла.
func ParseFeature(path string, data []byte) (*Feature, error) {
	var f Feature
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("%s: не задано имя feature", path)
	}
	f.Path = path
	return &f, nil
}

// LoadSuite читает все *.yaml и *.yml из dir и связывает шаги с reg.
// Неизвестные шаги и неверное число аргументов обнаруживаются здесь, до
// запуска браузера; возвращаются все найденные ошибки разом.
func LoadSuite(dir string, reg *Registry) (*Suite, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("в %s нет файлов сценариев", dir)
	}
	sort.Strings(paths)

	features := make([]*Feature, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := ParseFeature(path, data)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	return BuildSuite(features, reg)
}

func BuildSuite(features []*Feature, reg *Registry) (*Suite, error) {
	suite := &Suite{Features: features}
	var errs []error

	for _, f := range features {
		for _, spec := range f.Scenarios {
			for _, sc := range expand(spec) {
				built := Scenario{
					Feature: f.Name,
					Name:    sc.Name,
					Tags:    mergeTags(f.Tags, sc.Tags),
				}
				for _, st := range append(append([]StepSpec(nil), f.Background...), sc.Steps...) {
					step, err := bind(reg, f.Name, sc.Name, st)
					if err != nil {
						errs = append(errs, err)
						continue
					}
					built.Steps = append(built.Steps, step)
				}
				suite.Scenarios = append(suite.Scenarios, built)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return suite, nil
}

func bind(reg *Registry, feature, scenario string, st StepSpec) (Step, error) {
	def, ok := reg.Lookup(st.Text)
	if !ok {
		return Step{}, &UnknownStepError{Feature: feature, Scenario: scenario, Text: st.Text}
	}
	if len(st.Args) != def.Args {
		return Step{}, fmt.Errorf("%s / %s: шаг %q ждет %d аргументов, передано %d: %w",
			feature, scenario, st.Text, def.Args, len(st.Args), ErrStepArgs)
	}
	return Step{Keyword: st.Keyword, Text: def.Text, Args: st.Args, def: def}, nil
}

func expand(spec ScenarioSpec) []ScenarioSpec {
	if len(spec.Examples) == 0 {
		return []ScenarioSpec{spec}
	}

	out := make([]ScenarioSpec, 0, len(spec.Examples))
	for i, row := range spec.Examples {
		sc := ScenarioSpec{
			Name: fmt.Sprintf("%s #%d", substitute(spec.Name, row), i+1),
			Tags: spec.Tags,
		}
		for _, st := range spec.Steps {
			args := make([]string, len(st.Args))
			for j, a := range st.Args {
				args[j] = substitute(a, row)
			}
			sc.Steps = append(sc.Steps, StepSpec{Keyword: st.Keyword, Text: st.Text, Args: args})
		}
		out = append(out, sc)
	}
	return out
}

func substitute(s string, row map[string]string) string {
	for k, v := range row {
		s = strings.ReplaceAll(s, "<"+k+">", v)
	}
	return s
}

func mergeTags(feature, scenario []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range append(append([]string(nil), feature...), scenario...) {
		t = normalizeTag(t)
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "@"))
}

// Filter оставляет сценарии, у которых есть хотя бы один из тегов
// include. Тег с префиксом "!" исключает сценарий. Пустой список
// оставляет все.
func (s *Suite) Filter(tags []string) []Scenario {
	var include, exclude []string
	for _, t := range tags {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(t), "!"); ok {
			exclude = append(exclude, normalizeTag(rest))
			continue
		}
		if n := normalizeTag(t); n != "" {
			include = append(include, n)
		}
	}

	var out []Scenario
	for _, sc := range s.Scenarios {
		if hasAny(sc.Tags, exclude) {
			continue
		}
		if len(include) > 0 && !hasAny(sc.Tags, include) {
			continue
		}
		out = append(out, sc)
	}
	return out
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
