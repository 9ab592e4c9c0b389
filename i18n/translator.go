package i18n

// Translator retrieves localized messages for expectation codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "kind").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type.invalid":
			if e := data["expected"]; e != "" {
				return e + " 型の値"
			}
			return "型が不正です"
		case "map.key_required":
			return "キーが存在すること"
		case "map.unknown_key":
			return "未知のキーがないこと"
		case "list.length_mismatch":
			return "要素数が一致すること"
		case "value.range_out_of_bounds":
			return "範囲内の値"
		case "value.not_equal":
			return "一致する値"
		case "value.too_short":
			return "より長い値"
		case "value.too_long":
			return "より短い値"
		case "value.invalid":
			return "妥当な値"
		case "coerce.failed":
			if k := data["kind"]; k != "" {
				return k + " に変換できる値"
			}
			return "変換できる値"
		case "misuse.parent_required":
			return "when は親スキーマの中でのみ使用できます"
		case "json.malformed":
			return "整形式の JSON"
		case "json.too_large":
			return "サイズ上限内の入力"
		case "yaml.malformed":
			return "整形式の YAML"
		}
	default: // "en"
		switch code {
		case "type.invalid":
			if e := data["expected"]; e != "" {
				return "a value of type " + e
			}
			return "a value of a different type"
		case "map.key_required":
			return "key to exist"
		case "map.unknown_key":
			return "no unknown keys"
		case "list.length_mismatch":
			return "a list of a different length"
		case "value.range_out_of_bounds":
			return "a value within bounds"
		case "value.not_equal":
			return "a different value"
		case "value.too_short":
			return "a longer value"
		case "value.too_long":
			return "a shorter value"
		case "value.invalid":
			return "a valid value"
		case "coerce.failed":
			if k := data["kind"]; k != "" {
				return "a value coercible to " + k
			}
			return "a coercible value"
		case "misuse.parent_required":
			return "when to be used inside a keyed schema"
		case "json.malformed":
			return "well-formed JSON"
		case "json.too_large":
			return "input within the size limit"
		case "yaml.malformed":
			return "well-formed YAML"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
