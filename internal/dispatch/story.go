package dispatch

import "strings"

// storyTemplates are the fixed story arcs; one is picked at random per
// request.
var storyTemplates = []string{
	"Once upon a time, there was a {character} who was {adjective}. One day, they discovered {discovery}. This discovery led them on a journey to {destination}, where they encountered {obstacle}. With determination and courage, they overcame the obstacle and {resolution}.",
	"In a distant land, a {character} set out on an adventure to {goal}. Along the way, they faced many challenges, including {challenge}. But through wisdom and bravery, they succeeded in {achievement}. Their journey became a legend, known far and wide as the {story_name}.",
	"A {adjective} {character} found themselves caught in an unexpected situation. While trying to {action}, they stumbled upon {discovery}. This started a chain of events that led to {unexpected_turn}. In the end, they learned {lesson}, and their life was changed forever.",
}

// slotRule fills one template slot: the primary value when the trigger word
// is a key of the key-point set, the fallback otherwise.
type slotRule struct {
	slot     string
	trigger  string
	primary  string
	fallback string
}

var slotRules = []slotRule{
	{"character", "knight", "knight", "hero"},
	{"adjective", "brave", "brave", "kind"},
	{"discovery", "treasure", "a hidden treasure", "a powerful artifact"},
	{"destination", "castle", "a distant castle", "an enchanted forest"},
	{"obstacle", "dragon", "a dangerous dragon", "an evil sorcerer"},
	{"resolution", "legend", "became a legend", "defeated the dark forces"},
	{"goal", "evil", "defeat the evil forces", "find a rare artifact"},
	{"challenge", "terrain", "treacherous terrain", "a fierce monster"},
	{"achievement", "kingdom", "saving the kingdom", "finding the treasure"},
	{"story_name", "knight", "The Brave Knight's Quest", "The Hero's Journey"},
	{"action", "fight", "fight the sorcerer", "seek the hidden treasure"},
	{"unexpected_turn", "cursed", "they realized the treasure was cursed", "they were betrayed by an ally"},
	{"lesson", "courage", "the true meaning of courage", "the importance of friendship"},
}

// storyKeyPoints is the fixed key-point set handed to the generator. The
// user's message is not consulted: the triggers above check key membership,
// and none of these keys is a trigger, so every slot takes its fallback.
var storyKeyPoints = map[string]string{
	"character":  "young prince",
	"setting":    "magical forest",
	"conflict":   "an evil dragon",
	"resolution": "outsmarting the dragon using clever tricks",
}

// generateStory picks a template with pick and fills its slots from
// keyPoints.
func generateStory(keyPoints map[string]string, pick func(n int) int) string {
	story := storyTemplates[pick(len(storyTemplates))]
	for _, r := range slotRules {
		value := r.fallback
		if _, ok := keyPoints[r.trigger]; ok {
			value = r.primary
		}
		story = strings.ReplaceAll(story, "{"+r.slot+"}", value)
	}
	return story
}
