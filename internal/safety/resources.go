package safety

// Crisis resource payloads are fixed text delivered verbatim, tiered by risk
// level. Contact identifiers (988, 741741, 911) are US lines per the product
// launch region.

const highRiskResources = `I'm concerned about what you've shared. Please consider:

1. Call or text 988 (US Suicide & Crisis Lifeline) - available 24/7
2. Text HOME to 741741 (Crisis Text Line) - available 24/7
3. Call emergency services (911 in US) if you're in immediate danger

Would you like me to provide more specific resources?`

const moderateRiskResources = `Thank you for sharing. It sounds like you're going through a difficult time.
Here are some resources that might help:

1. Text HOME to 741741 (Crisis Text Line) - available 24/7
2. Call 988 (US Suicide & Crisis Lifeline) - available 24/7
3. Consider speaking with a mental health professional

Would it help to talk more about what you're experiencing?`

// Resources returns the crisis payload for a level. Low and none carry no
// payload; those turns continue through the regular pipeline.
func Resources(level RiskLevel) string {
	switch level {
	case LevelHigh:
		return highRiskResources
	case LevelModerate:
		return moderateRiskResources
	default:
		return ""
	}
}

// GroundingPrompt returns a short grounding exercise suited to the level.
func GroundingPrompt(level RiskLevel) string {
	switch level {
	case LevelHigh:
		return "Let's try a grounding exercise together. Name five things you can see, four things you can touch, three things you can hear, two things you can smell, and one thing you can taste."
	case LevelModerate:
		return "Take a deep breath with me. Look around your surroundings. What is one thing you can do right now to feel safer?"
	case LevelLow:
		return "What is one small step you can take right now to improve your mood?"
	default:
		return "Focus on your breathing and describe how you feel in this moment."
	}
}
