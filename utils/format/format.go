package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/souqhub/marketplace/constant"
)

const (
	million = 1_000_000
	billion = 1_000_000_000
)

// FormatLargeNumber renders a monetary amount in the active language,
// abbreviating to million/billion terms the way prices are shown in the UI
// (e.g. 25000000 SYP -> "25 مليون ل.س", 25000000 USD -> "$25 Million").
func FormatLargeNumber(amount float64, lang constant.Language, currency constant.Currency) string {
	value, scale := scaled(amount, lang)

	if lang == constant.LanguageArabic {
		s := value
		if scale != "" {
			s += " " + scale
		}
		return s + " " + arabicCurrencySuffix(currency)
	}

	s := value
	if scale != "" {
		s += " " + scale
	}
	if currency == constant.CurrencyUSD {
		return "$" + s
	}
	return s + " " + string(currency)
}

func scaled(amount float64, lang constant.Language) (string, string) {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= billion:
		return trimZeros(amount / billion), scaleWord(lang, "Billion", "مليار")
	case abs >= million:
		return trimZeros(amount / million), scaleWord(lang, "Million", "مليون")
	default:
		return groupThousands(amount), ""
	}
}

func scaleWord(lang constant.Language, en, ar string) string {
	if lang == constant.LanguageArabic {
		return ar
	}
	return en
}

func arabicCurrencySuffix(currency constant.Currency) string {
	if currency == constant.CurrencyUSD {
		return "دولار"
	}
	return "ل.س"
}

// trimZeros formats with up to one decimal place, dropping a trailing ".0".
func trimZeros(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPrice renders a full precision price with its currency marker,
// without large-number abbreviation.
func FormatPrice(amount float64, currency constant.Currency) string {
	if currency == constant.CurrencyUSD {
		return fmt.Sprintf("$%s", groupThousands(amount))
	}
	return fmt.Sprintf("%s %s", groupThousands(amount), string(currency))
}
