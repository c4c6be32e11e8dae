package domain

// MatchCandidate is one ranked suggestion produced by auto-match. It is
// derived per request and never persisted. Score is in [0,1]; the skill,
// availability, and location flags explain how it was computed.
// swagger:model MatchCandidate
type MatchCandidate struct {
	VolunteerID   string   `json:"volunteer_id"`
	Score         float64  `json:"score"`
	SkillScore    float64  `json:"skill_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Available     bool     `json:"available"`
	LocationMatch bool     `json:"location_match"`
}
