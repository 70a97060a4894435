package recipeclip

import (
	"regexp"
	"strconv"
	"strings"
)

// NormalizeIngredients turns raw ingredient lines into canonical strings.
// The result is case-insensitively deduplicated, order-preserving on first
// occurrence, and idempotent: normalizing an already-canonical list returns
// it unchanged.
func NormalizeIngredients(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		s := normalizeIngredientLine(line)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return mergeSaltAndPepper(out)
}

const saltAndPepper = "Salt and pepper to taste"

// mergeSaltAndPepper collapses a standalone "Salt" entry and a standalone
// "Pepper..." entry anywhere in the list into one "Salt and pepper to taste"
// entry at the earlier position. The input may already carry the canonical
// entry; only one survives so the output stays deduplicated.
func mergeSaltAndPepper(list []string) []string {
	saltIdx, pepperIdx := -1, -1
	for i, s := range list {
		lower := strings.ToLower(s)
		if saltIdx < 0 && lower == "salt" {
			saltIdx = i
		}
		if pepperIdx < 0 && strings.HasPrefix(lower, "pepper") {
			pepperIdx = i
		}
	}
	if saltIdx < 0 || pepperIdx < 0 {
		return list
	}

	first, second := saltIdx, pepperIdx
	if second < first {
		first, second = second, first
	}
	merged := make([]string, 0, len(list)-1)
	merged = append(merged, list[:first]...)
	merged = append(merged, saltAndPepper)
	merged = append(merged, list[first+1:second]...)
	merged = append(merged, list[second+1:]...)

	out := merged[:0]
	seen := false
	for _, s := range merged {
		if strings.EqualFold(s, saltAndPepper) {
			if seen {
				continue
			}
			seen = true
		}
		out = append(out, s)
	}
	return out
}

// quantity matches an integer, decimal, fraction, mixed number, or numeric
// range at the start of a line. Unicode vulgar fractions are normalized to
// ASCII before matching.
var (
	quantityRe = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+\.\d+|\d+\s*[-–]\s*\d+|\d+)\b`)
	rangeRe    = regexp.MustCompile(`\s*[-–]\s*`)
)

var vulgarFractions = map[rune]string{
	'½': "1/2", '⅓': "1/3", '⅔': "2/3", '¼': "1/4", '¾': "3/4",
	'⅕': "1/5", '⅖': "2/5", '⅗': "3/5", '⅘': "4/5",
	'⅙': "1/6", '⅚': "5/6", '⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// unitAliases maps every accepted spelling to its canonical singular unit.
var unitAliases = map[string]string{
	"tsp": "teaspoon", "tsps": "teaspoon", "t": "teaspoon",
	"teaspoon": "teaspoon", "teaspoons": "teaspoon",
	"tbsp": "tablespoon", "tbsps": "tablespoon", "tbs": "tablespoon",
	"tbl": "tablespoon", "tablespoon": "tablespoon", "tablespoons": "tablespoon",
	"c": "cup", "cup": "cup", "cups": "cup",
	"oz": "ounce", "ounce": "ounce", "ounces": "ounce",
	"lb": "pound", "lbs": "pound", "pound": "pound", "pounds": "pound",
	"g": "gram", "gram": "gram", "grams": "gram",
	"kg": "kilogram", "kilogram": "kilogram", "kilograms": "kilogram",
	"ml": "milliliter", "milliliter": "milliliter", "milliliters": "milliliter",
	"l": "liter", "liter": "liter", "liters": "liter", "litre": "liter", "litres": "liter",
	"qt": "quart", "quart": "quart", "quarts": "quart",
	"pt": "pint", "pint": "pint", "pints": "pint",
	"gal": "gallon", "gallon": "gallon", "gallons": "gallon",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"stick": "stick", "sticks": "stick",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece",
	"package": "package", "packages": "package", "pkg": "package",
	"bunch": "bunch", "bunches": "bunch",
	"head": "head", "heads": "head",
	"sprig": "sprig", "sprigs": "sprig",
	"stalk": "stalk", "stalks": "stalk",
	"jar": "jar", "jars": "jar",
	"bag": "bag", "bags": "bag",
	"bottle": "bottle", "bottles": "bottle",
	"leaf": "leaf", "leaves": "leaf",
}

// unitPlurals holds irregular plurals; everything else takes "s".
var unitPlurals = map[string]string{
	"pinch": "pinches",
	"dash":  "dashes",
	"bunch": "bunches",
	"leaf":  "leaves",
}

// qualifiers are trailing preparation notes split off the food name.
var qualifiers = map[string]struct{}{
	"diced": {}, "chopped": {}, "minced": {}, "sliced": {}, "grated": {},
	"shredded": {}, "crushed": {}, "peeled": {}, "beaten": {}, "drained": {},
	"rinsed": {}, "cubed": {}, "julienned": {}, "softened": {}, "melted": {},
	"divided": {}, "optional": {}, "thawed": {}, "trimmed": {}, "halved": {},
	"quartered": {}, "crumbled": {}, "toasted": {}, "sifted": {},
	"finely chopped": {}, "finely diced": {}, "roughly chopped": {},
	"thinly sliced": {}, "freshly ground": {},
}

// normalizeIngredientLine parses one raw line into {quantity, unit, item,
// note} and renders the canonical string.
func normalizeIngredientLine(line string) string {
	s := CleanText(line)
	if s == "" {
		return ""
	}
	s = normalizeFractions(s)

	qty, pluralQty, rest := parseQuantity(s)

	// Parenthetical content becomes a note.
	rest, parenNotes := splitParens(rest)

	// Trailing comma segments that are known qualifiers become notes.
	rest, commaNotes := splitQualifiers(rest)

	unit, item := parseUnit(rest, qty != "")
	if item == "" {
		// A bare quantity or unit with no food name is not worth
		// restructuring; keep the cleaned original.
		return s
	}

	var b strings.Builder
	if qty != "" {
		b.WriteString(qty)
		b.WriteByte(' ')
	}
	if unit != "" {
		if pluralQty {
			unit = pluralizeUnit(unit)
		}
		b.WriteString(unit)
		b.WriteByte(' ')
	}
	b.WriteString(item)

	notes := append(commaNotes, parenNotes...)
	switch {
	case len(notes) == 1 && strings.EqualFold(notes[0], "optional"):
		b.WriteString(" (optional)")
	default:
		for _, n := range notes {
			if isQualifier(n) || strings.EqualFold(n, "optional") {
				b.WriteString(", ")
				b.WriteString(n)
			} else {
				b.WriteString(" (")
				b.WriteString(n)
				b.WriteByte(')')
			}
		}
	}
	return b.String()
}

// normalizeFractions rewrites unicode vulgar fractions as ASCII, joining a
// preceding integer into a mixed number ("1½" -> "1 1/2").
func normalizeFractions(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		frac, ok := vulgarFractions[r]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if i > 0 && runes[i-1] >= '0' && runes[i-1] <= '9' {
			b.WriteByte(' ')
		}
		b.WriteString(frac)
	}
	return b.String()
}

// parseQuantity recognizes a leading quantity token and reports whether a
// following unit should pluralize: quantities greater than one, mixed
// numbers, and ranges pluralize; bare "1" and fractions at or below one
// never do.
func parseQuantity(s string) (qty string, plural bool, rest string) {
	m := quantityRe.FindString(s)
	if m == "" {
		return "", false, s
	}
	rest = strings.TrimSpace(s[len(m):])
	qty = spaceRe.ReplaceAllString(strings.TrimSpace(m), " ")

	switch {
	case strings.ContainsAny(qty, "-–"):
		// Numeric range such as "2-3".
		parts := rangeRe.Split(qty, 2)
		qty = parts[0] + "-" + parts[1]
		plural = true
	case strings.Contains(qty, " "):
		// Mixed number such as "1 1/2".
		plural = true
	case strings.Contains(qty, "/"):
		num, den, _ := strings.Cut(qty, "/")
		n, _ := strconv.Atoi(num)
		d, _ := strconv.Atoi(den)
		plural = d > 0 && n > d
	default:
		v, _ := strconv.ParseFloat(qty, 64)
		plural = v > 1
	}
	return qty, plural, rest
}

// parseUnit splits a recognized unit token off the front of rest. A leading
// token that is not a recognized unit stays part of the food name, so
// "2 jalapenos, diced" keeps "jalapenos". Units are only recognized directly
// after a quantity.
func parseUnit(rest string, afterQuantity bool) (unit, item string) {
	if !afterQuantity {
		return "", rest
	}
	token, remainder, found := strings.Cut(rest, " ")
	if !found {
		token, remainder = rest, ""
	}
	canonical, ok := unitAliases[strings.ToLower(strings.TrimSuffix(token, "."))]
	if !ok {
		return "", rest
	}
	remainder = strings.TrimSpace(remainder)
	remainder = strings.TrimPrefix(remainder, "of ")
	return canonical, strings.TrimSpace(remainder)
}

func pluralizeUnit(unit string) string {
	if p, ok := unitPlurals[unit]; ok {
		return p
	}
	return unit + "s"
}

// splitParens removes parenthetical groups from s and returns their contents
// as notes.
func splitParens(s string) (string, []string) {
	if !strings.Contains(s, "(") {
		return s, nil
	}
	var notes []string
	var b strings.Builder
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
				if depth == 0 {
					if note := strings.TrimSpace(s[start:i]); note != "" {
						notes = append(notes, note)
					}
				}
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	cleaned := strings.TrimSpace(spaceRe.ReplaceAllString(b.String(), " "))
	cleaned = strings.TrimRight(cleaned, ",")
	return cleaned, notes
}

// splitQualifiers peels known preparation qualifiers off the trailing comma
// segments of s, preserving their original order.
func splitQualifiers(s string) (string, []string) {
	segments := strings.Split(s, ",")
	cut := len(segments)
	for cut > 1 && isQualifier(strings.TrimSpace(segments[cut-1])) {
		cut--
	}
	if cut == len(segments) {
		return s, nil
	}
	notes := make([]string, 0, len(segments)-cut)
	for _, seg := range segments[cut:] {
		notes = append(notes, strings.TrimSpace(seg))
	}
	head := strings.TrimSpace(strings.Join(segments[:cut], ","))
	return head, notes
}

func isQualifier(s string) bool {
	_, ok := qualifiers[strings.ToLower(s)]
	return ok
}

// IngredientLike reports whether a line looks like an ingredient: it starts
// with a quantity, optionally followed by a unit. This is the hard signal
// used by the orchestrator's confidence check.
func IngredientLike(line string) bool {
	s := normalizeFractions(CleanText(line))
	qty, _, rest := parseQuantity(s)
	if qty == "" {
		return false
	}
	return strings.TrimSpace(rest) != ""
}
