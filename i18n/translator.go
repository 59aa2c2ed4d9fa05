package i18n

// Message keys, one per user-facing outcome.
const (
	KeyUnexpectedKeyword = "unexpected_keyword"
	KeyDuplicateItem     = "duplicate_item"
	KeyUnexpectedValue   = "unexpected_value"
	KeyParseError        = "parse_error"
)

// Translator retrieves localized messages for message keys.
// data carries the values to embed: "path", "key" and "value".
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(key string, data map[string]string) string {
	path, k, value := data["path"], data["key"], data["value"]
	switch t.lang {
	case "ja":
		switch key {
		case KeyUnexpectedKeyword:
			return "想定外のキーワードです " + path + "/" + k
		case KeyDuplicateItem:
			return "要素が重複しています " + path + "/" + value
		case KeyUnexpectedValue:
			return "想定外の値です " + path + ": " + value
		case KeyParseError:
			return "パーサーがファイルを解析できませんでした"
		}
	default: // "en"
		switch key {
		case KeyUnexpectedKeyword:
			return "Unexpected keyword " + path + "/" + k
		case KeyDuplicateItem:
			return "Duplicate item " + path + "/" + value
		case KeyUnexpectedValue:
			return "Unexpected value " + path + ": " + value
		case KeyParseError:
			return "parser failed to parse the file"
		}
	}
	return key
}

// Default returns the built-in English Translator.
func Default() Translator { return dictTranslator{lang: "en"} }

// Lookup returns the built-in Translator for lang ("en"/"ja"); anything else
// falls back to English.
func Lookup(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}
