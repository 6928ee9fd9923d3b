package events

const VacancyCollectedTopic = "vacancy:collected"

type VacancyCollected struct {
	ExternalID string
	Title      string
	SkillCount int
}
