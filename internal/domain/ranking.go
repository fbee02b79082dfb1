package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// ContactWithheld is the upstream sentinel meaning "field intentionally withheld".
	ContactWithheld = "xxx"

	NoEmailPlaceholder = "No email"
	NoPhonePlaceholder = "No phone"
)

// Matches a leading number (optionally decimal, optionally suffixed with +)
// followed by a years/yrs/year/yr token, e.g. "5+ years of experience".
var experiencePattern = regexp.MustCompile(`(?i)([0-9]*\.?[0-9]+)\s*\+?\s*(years|yrs|year|yr)`)

// RawRanking is the loosely-typed record returned by the ranking workflow.
// Score is left untyped because the upstream occasionally emits strings.
type RawRanking struct {
	Name          string   `json:"name"`
	Score         any      `json:"score"`
	Justification string   `json:"justification"`
	Experience    *float64 `json:"experience"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
}

// CandidateRanking is the normalized, locally cached form of one ranked resume.
// Derived fields are computed once at ingest, not per filter pass.
type CandidateRanking struct {
	Name            string   `json:"name"`
	Score           float64  `json:"score"`
	Justification   string   `json:"justification"`
	ExperienceYears float64  `json:"experience_years"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	HasEmail        bool     `json:"has_email"`
	HasPhone        bool     `json:"has_phone"`
	MatchedSkills   []string `json:"matched_skills"`
}

// FilterState holds the transient filter controls of the results view.
// Both ranges are inclusive at both ends; the controls maintain low <= high.
type FilterState struct {
	SearchQuery   string
	SkillQuery    string
	ScoreMin      float64
	ScoreMax      float64
	ExperienceMin float64
	ExperienceMax float64
	FilterEmail   bool
	FilterPhone   bool
}

// NormalizeRankings converts the upstream result list into CandidateRanking
// records, deriving experience, contact presence and matched skills.
func NormalizeRankings(raws []RawRanking, declaredSkills []string) []CandidateRanking {
	rankings := make([]CandidateRanking, 0, len(raws))
	for i, raw := range raws {
		rankings = append(rankings, NormalizeRanking(raw, i, declaredSkills))
	}
	return rankings
}

// NormalizeRanking derives the computed fields for a single upstream record.
// index is used for the fallback display name of anonymous candidates.
func NormalizeRanking(raw RawRanking, index int, declaredSkills []string) CandidateRanking {
	c := CandidateRanking{
		Name:          raw.Name,
		Score:         CoerceScore(raw.Score),
		Justification: raw.Justification,
		MatchedSkills: MatchSkills(raw.Justification, declaredSkills),
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Candidate %d", index+1)
	}

	if raw.Experience != nil {
		c.ExperienceYears = *raw.Experience
	} else {
		c.ExperienceYears = ExtractExperienceYears(raw.Justification)
	}

	c.Email, c.HasEmail = normalizeContact(raw.Email, NoEmailPlaceholder)
	c.Phone, c.HasPhone = normalizeContact(raw.Phone, NoPhonePlaceholder)
	return c
}

// ExtractExperienceYears scans justification text for the first years-of-experience
// mention. Returns 0 when nothing matches.
func ExtractExperienceYears(text string) float64 {
	match := experiencePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	years, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return years
}

// CoerceScore turns the untyped upstream score into a number, defaulting to 0.
// Out-of-band values pass through unchanged; filtering never clamps.
func CoerceScore(v any) float64 {
	switch s := v.(type) {
	case float64:
		return s
	case int:
		return float64(s)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
		return 0
	default:
		return 0
	}
}

// MatchSkills returns the declared skills found (case-insensitive substring)
// in the justification text, preserving declaration order.
func MatchSkills(justification string, declaredSkills []string) []string {
	haystack := strings.ToLower(justification)
	matched := make([]string, 0, len(declaredSkills))
	for _, skill := range declaredSkills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			matched = append(matched, strings.TrimSpace(skill))
		}
	}
	return matched
}

// normalizeContact maps the withheld sentinel and empty values to a readable
// placeholder, reporting whether a real contact value is present.
func normalizeContact(value, placeholder string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, ContactWithheld) {
		return placeholder, false
	}
	return trimmed, true
}

// Matches reports whether the candidate passes every active filter predicate.
func (f FilterState) Matches(c CandidateRanking) bool {
	q := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	if q != "" {
		inName := strings.Contains(strings.ToLower(c.Name), q)
		inEmail := c.HasEmail && strings.Contains(strings.ToLower(c.Email), q)
		inJustification := strings.Contains(strings.ToLower(c.Justification), q)
		if !inName && !inEmail && !inJustification {
			return false
		}
	}

	sq := strings.ToLower(strings.TrimSpace(f.SkillQuery))
	if sq != "" {
		found := false
		for _, skill := range c.MatchedSkills {
			if strings.Contains(strings.ToLower(skill), sq) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.Score < f.ScoreMin || c.Score > f.ScoreMax {
		return false
	}
	if c.ExperienceYears < f.ExperienceMin || c.ExperienceYears > f.ExperienceMax {
		return false
	}
	if f.FilterEmail && !c.HasEmail {
		return false
	}
	if f.FilterPhone && !c.HasPhone {
		return false
	}
	return true
}

// Project returns the candidates passing all filter predicates, preserving
// input order. The projection is pure; re-running it with unchanged inputs
// yields an identical result.
func Project(rankings []CandidateRanking, filter FilterState) []CandidateRanking {
	out := make([]CandidateRanking, 0, len(rankings))
	for _, c := range rankings {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
