package recipeclip

import (
	"regexp"
	"strings"
)

// Lexical signals for splitting a loose caption into an ingredients-looking
// part and a directions-looking part. Used only when no structured signal
// exists at all.
var (
	ingredientsHeaderRe = regexp.MustCompile(`(?i)^[^a-z]*ingredients\b[:\s]*$`)
	directionsHeaderRe  = regexp.MustCompile(`(?i)^[^a-z]*(directions?|steps?|method|instructions?)\b[:\s]*$`)
	stepNumberRe        = regexp.MustCompile(`^\s*(\d+)[.):]\s+`)
	bulletRe            = regexp.MustCompile(`^[-•*▪︎✅🔸🔹➡️]+\s*`)

	cookingVerbRe = regexp.MustCompile(`(?i)\b(preheat|bake|mix|stir|whisk|fold|combine|cook|simmer|boil|fry|saute|sauté|roast|grill|blend|pour|add|heat|serve|season|chill|refrigerate|knead|toss|drizzle|spread|layer|garnish|remove|transfer|cover|let|rest)\b`)

	foodWordRe = regexp.MustCompile(`(?i)\b(butter|sugar|flour|salt|pepper|oil|egg|eggs|milk|cream|cheese|garlic|onion|chicken|beef|pork|rice|pasta|water|vanilla|chocolate|honey|lemon|lime|tomato|basil|cilantro|parsley|soy|sauce|vinegar|yogurt|bread|beans|corn|avocado|bacon|shrimp|salmon|broth|stock|paprika|cumin|cinnamon|oregano|thyme|ginger|tofu|noodles|potato|potatoes|carrot|carrots|spinach|mushroom|mushrooms)\b`)
)

// CaptionRecipe is a recipe inferred from free text.
type CaptionRecipe struct {
	Ingredients []string
	Steps       []string
}

// ParseCaption splits free-form caption text into ingredient lines and step
// lines. It first honors explicit section headers; without them it falls
// back to lexical classification: lines with quantity/unit tokens lean
// ingredient, lines with cooking-action verbs lean step. Returns nil when
// the text yields neither.
func ParseCaption(text string) *CaptionRecipe {
	lines := Lines(text)
	if len(lines) == 0 {
		return nil
	}

	if r := parseCaptionSections(lines); r != nil {
		return r
	}
	return parseCaptionLexical(lines)
}

// parseCaptionSections handles captions with explicit "Ingredients" /
// "Directions" headers.
func parseCaptionSections(lines []string) *CaptionRecipe {
	ingStart, dirStart := -1, -1
	for i, line := range lines {
		if ingStart < 0 && ingredientsHeaderRe.MatchString(line) {
			ingStart = i
		} else if dirStart < 0 && directionsHeaderRe.MatchString(line) {
			dirStart = i
		}
	}
	if ingStart < 0 {
		return nil
	}

	r := &CaptionRecipe{}
	ingEnd := len(lines)
	if dirStart > ingStart {
		ingEnd = dirStart
	}
	for _, line := range lines[ingStart+1 : ingEnd] {
		if line = stripBullet(line); line != "" {
			r.Ingredients = append(r.Ingredients, line)
		}
	}
	if dirStart >= 0 {
		// The directions header can come first; its section ends where the
		// ingredients section begins.
		stepEnd := len(lines)
		if dirStart < ingStart {
			stepEnd = ingStart
		}
		for _, line := range lines[dirStart+1 : stepEnd] {
			line = stepNumberRe.ReplaceAllString(stripBullet(line), "")
			if line != "" {
				r.Steps = append(r.Steps, line)
			}
		}
	}
	if len(r.Ingredients) == 0 && len(r.Steps) == 0 {
		return nil
	}
	return r
}

// parseCaptionLexical classifies each line by its signals. A line that looks
// like a quantity-led ingredient goes to the prefix; once cooking verbs
// dominate, the remainder is treated as directions.
func parseCaptionLexical(lines []string) *CaptionRecipe {
	r := &CaptionRecipe{}
	inSteps := false
	for _, raw := range lines {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		switch {
		case !inSteps && IngredientLike(line) && !cookingVerbRe.MatchString(line):
			r.Ingredients = append(r.Ingredients, line)
		case stepNumberRe.MatchString(line) || cookingVerbRe.MatchString(line):
			inSteps = true
			if s := stepNumberRe.ReplaceAllString(line, ""); s != "" {
				r.Steps = append(r.Steps, s)
			}
		case !inSteps && len(r.Ingredients) > 0 && FoodWordCount(line) > 0:
			// Unquantified item between quantified ones ("Fresh basil").
			r.Ingredients = append(r.Ingredients, line)
		}
	}
	if len(r.Ingredients) == 0 && len(r.Steps) == 0 {
		return nil
	}
	return r
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

// FoodWordCount returns how many common food-word tokens the line contains.
// This feeds the soft confidence signal for loose sources like captions and
// meta descriptions.
func FoodWordCount(line string) int {
	return len(foodWordRe.FindAllString(line, -1))
}
