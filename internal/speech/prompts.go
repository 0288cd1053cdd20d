package speech

var prompts = []string{
	"Please describe what you see in this picture. Take your time and include as many details as possible.",
	"Tell me about a typical day in your life, from when you wake up until you go to bed.",
	"Describe your favorite memory from childhood. What made it special?",
	"Explain how to make your favorite recipe or dish step by step.",
	"Tell me about the weather today and how it makes you feel.",
	"Describe the route from your home to the nearest grocery store.",
	"Talk about your family members and what they mean to you.",
	"Explain what you would do if you found a wallet on the street.",
}

// Prompts returns the elicitation prompts in presentation order.
func Prompts() []string {
	out := make([]string, len(prompts))
	copy(out, prompts)
	return out
}
