package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes and rule message
// keys. data fills {name} placeholders in the message.
type Translator interface {
	Message(key string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		"invalid_type":          "invalid type, expected {expected}",
		"required":              "required property missing",
		"unknown_key":           "unknown key",
		"duplicate_key":         "duplicate key",
		"too_short":             "ensure this value has at least {min} {unit}",
		"too_long":              "ensure this value has at most {max} {unit}",
		"too_small":             "ensure this value is greater than or equal to {min}",
		"too_big":               "ensure this value is less than or equal to {max}",
		"pattern":               "string does not match regex \"{pattern}\"",
		"invalid_enum":          "value is not a valid enumeration member; permitted: {allowed}",
		"invalid_format":        "invalid {format}",
		"discriminator_missing": "discriminator '{key}' is missing",
		"discriminator_unknown": "unrecognized {key} '{value}', expected one of: {allowed}",
		"null_not_allowed":      "none is not an allowed value",
		"parse_error":           "parse error",
		"truncated":             "truncated",

		"options.duplicates":       "Option values must be unique, found duplicates: {duplicates}",
		"options.out_of_range":     "Option value {value} out of range [{min}, {max}]",
		"visible_options.too_big":  "The value for 'visible_options' must be less or equal to the number of items in 'options' ({count})",
		"bounds.min_not_lower":     "'min' ({min}) must be lower than 'max' ({max})",
		"responses.duplicate_user": "Responses contains several responses for the same user_id: '{user_id}'",
	},
	"ja": {
		"invalid_type":          "型が不正です（期待: {expected}）",
		"required":              "必須プロパティが不足しています",
		"unknown_key":           "未知のキーです",
		"duplicate_key":         "キーが重複しています",
		"too_short":             "{min} {unit}以上が必要です",
		"too_long":              "{max} {unit}以下にしてください",
		"too_small":             "{min} 以上にしてください",
		"too_big":               "{max} 以下にしてください",
		"pattern":               "正規表現 \"{pattern}\" に一致しません",
		"invalid_enum":          "許可されていない値です（許可: {allowed}）",
		"invalid_format":        "{format} の形式が不正です",
		"discriminator_missing": "識別子 '{key}' がありません",
		"discriminator_unknown": "{key} '{value}' は不明です（許可: {allowed}）",
		"null_not_allowed":      "null は許可されていません",
		"parse_error":           "解析エラー",
		"truncated":             "打ち切られました",

		"options.duplicates":       "選択肢の値は一意である必要があります。重複: {duplicates}",
		"options.out_of_range":     "選択肢の値 {value} は範囲 [{min}, {max}] 外です",
		"visible_options.too_big":  "'visible_options' は 'options' の件数 ({count}) 以下である必要があります",
		"bounds.min_not_lower":     "'min' ({min}) は 'max' ({max}) より小さくなければなりません",
		"responses.duplicate_user": "同じ user_id の回答が複数あります: '{user_id}'",
	},
}

// dictTranslator is the built-in catalog-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(key string, data map[string]string) string {
	msg, ok := catalogs[t.lang][key]
	if !ok {
		if msg, ok = catalogs["en"][key]; !ok {
			return key
		}
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in catalogs.
func Languages() []string { return []string{"en", "ja"} }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation. nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for key using the current Translator.
func T(key string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}

// Data builds a placeholder map from alternating key/value pairs.
func Data(kv ...any) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
	}
	return m
}
