// Package screening serves the static screening criteria and the placeholder
// CV-to-job analysis.
package screening

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed criteria.yaml
var criteriaYAML []byte

// Criteria lists the screening criteria offered to the frontend.
type Criteria struct {
	TechnicalSkills  []string `yaml:"technical_skills" json:"technical_skills"`
	SoftSkills       []string `yaml:"soft_skills" json:"soft_skills"`
	ExperienceLevels []string `yaml:"experience_levels" json:"experience_levels"`
}

// LoadCriteria parses the embedded criteria file.
func LoadCriteria() (Criteria, error) {
	return ParseCriteria(criteriaYAML)
}

// ParseCriteria parses criteria from YAML.
func ParseCriteria(data []byte) (Criteria, error) {
	var c Criteria
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Criteria{}, fmt.Errorf("failed to parse screening criteria: %w", err)
	}
	return c, nil
}

// AnalysisRequest asks for a CV to be scored against a job description.
type AnalysisRequest struct {
	JobDescription    string   `json:"job_description"`
	CVText            string   `json:"cv_text"`
	ScreeningCriteria []string `json:"screening_criteria"`
}

// Analysis is the result of a CV-to-job analysis.
type Analysis struct {
	Score            float64            `json:"score"`
	MatchPercentage  float64            `json:"match_percentage"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	Recommendations  []string           `json:"recommendations"`
	DetailedAnalysis map[string]float64 `json:"detailed_analysis"`
}

// Analyze returns a fixed example analysis. The values do not depend on the input.
func Analyze(req AnalysisRequest) Analysis {
	return Analysis{
		Score:           8.5,
		MatchPercentage: 85.0,
		Strengths: []string{
			"Relevant experience with Python and FastAPI",
			"Solid machine learning knowledge",
			"Experience on AI projects",
		},
		Weaknesses: []string{
			"No Docker experience",
			"No mention of vector database experience",
		},
		Recommendations: []string{
			"Consider adding container experience",
			"Highlight specific AI/ML projects",
		},
		DetailedAnalysis: map[string]float64{
			"technical_skills_match": 0.9,
			"experience_relevance":   0.8,
			"education_match":        0.7,
		},
	}
}
