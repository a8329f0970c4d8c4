package colors

import (
	_ "embed"
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed colors.yaml
var defaultTable []byte

// カラーID -> 言語 -> 表示名 の表
// 言語キーは基本コード（"eng" も "en" も "en"）
type Table struct {
	byID    map[string]map[string]string
	reverse map[string]map[string]string // lang -> display -> id
}

// Parse は `id: {lang: 表示名}` 形式のYAMLを読む
func Parse(data []byte) (*Table, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse color table: %w", err)
	}

	t := &Table{
		byID:    make(map[string]map[string]string, len(raw)),
		reverse: make(map[string]map[string]string),
	}
	for id, names := range raw {
		t.byID[id] = make(map[string]string, len(names))
		for lang, display := range names {
			code, ok := Canonical(lang)
			if !ok {
				return nil, fmt.Errorf("color %q: unknown language %q", id, lang)
			}
			t.byID[id][code] = display

			if t.reverse[code] == nil {
				t.reverse[code] = make(map[string]string)
			}
			if other, dup := t.reverse[code][display]; dup && other != id {
				return nil, fmt.Errorf("color %q: %s name %q already used by %q", id, code, display, other)
			}
			t.reverse[code][display] = id
		}
	}
	return t, nil
}

var (
	defaultOnce sync.Once
	defaultT    *Table
)

// 組み込みの表（英語・フランス語）
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultTable)
		if err != nil {
			panic(err)
		}
		defaultT = t
	})
	return defaultT
}

// Translate は from の表示名を to の表示名にする。
// 表に無い場合はそのまま返す
func (t *Table) Translate(color, from, to string) string {
	id, ok := t.Identify(color, from)
	if !ok {
		return color
	}
	code, ok := Canonical(to)
	if !ok {
		return color
	}
	if display, ok := t.byID[id][code]; ok && display != "" {
		return display
	}
	return color
}

// 表示名からカラーIDを引く
func (t *Table) Identify(color, lang string) (string, bool) {
	code, ok := Canonical(lang)
	if !ok {
		return "", false
	}
	id, ok := t.reverse[code][color]
	return id, ok
}

// 組み込みの表で翻訳
func Translate(color, from, to string) string {
	return Default().Translate(color, from, to)
}

// 言語コードを基本コードにそろえる（"eng" -> "en", "fr-FR" -> "fr"）
func Canonical(lang string) (string, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	return base.String(), true
}
