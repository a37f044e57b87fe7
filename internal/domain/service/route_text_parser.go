package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	distancePattern     = regexp.MustCompile(`(\d[\d.,]*)\s*(\p{L}+)?`)
	durationPartPattern = regexp.MustCompile(`(\d+)\s*(\p{L}+)?`)
	firstIntegerPattern = regexp.MustCompile(`\d+`)
)

// dotDecimalLanguages は小数点に "." を使う言語（それ以外の言語は "," とみなす）
var dotDecimalLanguages = map[string]bool{
	"en": true, "ja": true, "zh": true, "ko": true, "th": true,
	"he": true, "hi": true, "ms": true, "tl": true, "fil": true,
}

// ParseDistanceMeters は "2,5 km" "800 m" "1.2 mi" のような表示テキストから距離（メートル）を取り出す
// language はテキストの言語タグ（MAPS_LANGUAGE）で、区切り記号が1つだけのときの解釈に使う
// 単位がない場合はkmとして扱う。解析できない場合はok=false
func ParseDistanceMeters(text, language string) (meters int, ok bool) {
	m := distancePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, ok := parseLocaleNumber(m[1], decimalSeparator(language))
	if !ok {
		return 0, false
	}

	factor := 1000.0
	switch strings.ToLower(m[2]) {
	case "m", "metros", "meters", "metres":
		factor = 1
	case "mi", "miles", "milhas":
		factor = 1609.344
	case "ft", "feet", "pés":
		factor = 0.3048
	}
	return int(math.Round(value * factor)), true
}

// ParseDurationMinutes は "1 hora 5 min" "2 hours 3 mins" "1h30" のような表示テキストから分数を取り出す
// 時間の直後にある単位のない数値は分とする
// 単位が一つも認識できない場合は最初の整数を分として扱う
func ParseDurationMinutes(text string) (minutes int, ok bool) {
	matched := false
	afterHours := false
	for _, part := range durationPartPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(part[1])
		if err != nil {
			continue
		}
		unit := strings.ToLower(part[2])
		switch {
		case unit == "" && afterHours:
			minutes += n
		case unit == "":
			continue
		case strings.HasPrefix(unit, "d"):
			minutes += n * 24 * 60
		case strings.HasPrefix(unit, "h"):
			minutes += n * 60
			afterHours = true
			matched = true
			continue
		case strings.HasPrefix(unit, "min"):
			minutes += n
		default:
			continue
		}
		afterHours = false
		matched = true
	}
	if matched {
		return minutes, true
	}

	first := firstIntegerPattern.FindString(text)
	if first == "" {
		return 0, false
	}
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return n, true
}

// decimalSeparator は言語タグ（"pt-BR" "en" など）の小数点を返す。空なら0
func decimalSeparator(language string) byte {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return 0
	}
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if dotDecimalLanguages[lang] {
		return '.'
	}
	return ','
}

// parseLocaleNumber は小数点が "," と "." のどちらでも解析する
// 両方ある場合は後ろにある方を小数点、もう一方を桁区切りとみなす
// 同じ記号が複数ある場合は桁区切りとみなす
// 記号が1つだけの場合、decimalと異なり、かつ後ろがちょうど3桁なら桁区切りとする
// decimalが0（言語不明）なら1つだけの記号は常に小数点とする
func parseLocaleNumber(raw string, decimal byte) (float64, bool) {
	raw = strings.Trim(raw, ".,")
	if raw == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(raw, ",") > 1 || (decimal == '.' && thousandsGroup(raw, lastComma)) {
			raw = strings.ReplaceAll(raw, ",", "")
		} else {
			raw = strings.Replace(raw, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(raw, ".") > 1 || (decimal == ',' && thousandsGroup(raw, lastDot)) {
			raw = strings.ReplaceAll(raw, ".", "")
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// thousandsGroup は位置sepの記号が1〜3桁と3桁を区切っているかを判定する
func thousandsGroup(raw string, sep int) bool {
	return sep >= 1 && sep <= 3 && len(raw)-sep-1 == 3
}
