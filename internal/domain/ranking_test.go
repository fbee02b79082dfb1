package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-talent-sift-backend/internal/domain"
)

func TestExtractExperienceYears(t *testing.T) {
	t.Run("Should extract plain years mention", func(t *testing.T) {
		assert.Equal(t, 5.0, domain.ExtractExperienceYears("5+ years of experience in Go"))
	})

	t.Run("Should extract decimal and short tokens", func(t *testing.T) {
		assert.Equal(t, 2.5, domain.ExtractExperienceYears("has 2.5 yrs with Python"))
		assert.Equal(t, 7.0, domain.ExtractExperienceYears("7 yr tenure"))
	})

	t.Run("Should take the first match", func(t *testing.T) {
		assert.Equal(t, 3.0, domain.ExtractExperienceYears("3 years at Acme, then 10 years elsewhere"))
	})

	t.Run("Should default to zero when nothing matches", func(t *testing.T) {
		assert.Equal(t, 0.0, domain.ExtractExperienceYears("no mention"))
		assert.Equal(t, 0.0, domain.ExtractExperienceYears(""))
	})
}

func TestCoerceScore(t *testing.T) {
	assert.Equal(t, 8.5, domain.CoerceScore(8.5))
	assert.Equal(t, 9.0, domain.CoerceScore("9"))
	assert.Equal(t, 0.0, domain.CoerceScore("strong"))
	assert.Equal(t, 0.0, domain.CoerceScore(nil))
	// Out-of-band values pass through unclamped
	assert.Equal(t, 11.0, domain.CoerceScore(11.0))
	assert.Equal(t, -2.0, domain.CoerceScore(-2.0))
}

func TestNormalizeRanking(t *testing.T) {
	t.Run("Should derive experience from justification when field absent", func(t *testing.T) {
		c := domain.NormalizeRanking(domain.RawRanking{
			Name:          "Jane",
			Score:         8.0,
			Justification: "Jane has 5+ years of experience with Go",
		}, 0, nil)
		assert.Equal(t, 5.0, c.ExperienceYears)
	})

	t.Run("Should prefer the upstream experience field", func(t *testing.T) {
		exp := 9.0
		c := domain.NormalizeRanking(domain.RawRanking{
			Justification: "2 years of experience",
			Experience:    &exp,
		}, 0, nil)
		assert.Equal(t, 9.0, c.ExperienceYears)
	})

	t.Run("Should normalize withheld contacts to placeholders", func(t *testing.T) {
		c := domain.NormalizeRanking(domain.RawRanking{Email: "xxx", Phone: ""}, 0, nil)
		assert.Equal(t, "No email", c.Email)
		assert.Equal(t, "No phone", c.Phone)
		assert.False(t, c.HasEmail)
		assert.False(t, c.HasPhone)
	})

	t.Run("Should keep real contacts", func(t *testing.T) {
		c := domain.NormalizeRanking(domain.RawRanking{Email: "jane@example.com", Phone: "+91 1234"}, 0, nil)
		assert.Equal(t, "jane@example.com", c.Email)
		assert.True(t, c.HasEmail)
		assert.True(t, c.HasPhone)
	})

	t.Run("Should name anonymous candidates by position", func(t *testing.T) {
		c := domain.NormalizeRanking(domain.RawRanking{}, 2, nil)
		assert.Equal(t, "Candidate 3", c.Name)
	})

	t.Run("Should match declared skills case-insensitively", func(t *testing.T) {
		c := domain.NormalizeRanking(domain.RawRanking{
			Justification: "Strong golang and KUBERNETES background",
		}, 0, []string{"Golang", "Kubernetes", "Rust"})
		assert.Equal(t, []string{"Golang", "Kubernetes"}, c.MatchedSkills)
	})
}

func defaultFilter() domain.FilterState {
	return domain.FilterState{
		ScoreMin:      1,
		ScoreMax:      10,
		ExperienceMin: 0,
		ExperienceMax: 35,
	}
}

func sampleRankings() []domain.CandidateRanking {
	return domain.NormalizeRankings([]domain.RawRanking{
		{Name: "Alice", Score: 9.0, Justification: "Alice has 6 years of experience with Go", Email: "alice@corp.com", Phone: "111"},
		{Name: "Bob", Score: 4.0, Justification: "Bob has 1 year of experience", Email: "xxx", Phone: "xxx"},
		{Name: "Carol", Score: 10.0, Justification: "Carol shows 12 years of experience in Java", Email: "carol@corp.com"},
	}, []string{"Go", "Java"})
}

func TestProject(t *testing.T) {
	rankings := sampleRankings()

	t.Run("Empty filter matches everything in input order", func(t *testing.T) {
		out := domain.Project(rankings, defaultFilter())
		assert.Len(t, out, 3)
		assert.Equal(t, "Alice", out[0].Name)
		assert.Equal(t, "Bob", out[1].Name)
		assert.Equal(t, "Carol", out[2].Name)
	})

	t.Run("Projection is idempotent", func(t *testing.T) {
		filter := defaultFilter()
		filter.SearchQuery = "experience"
		first := domain.Project(rankings, filter)
		second := domain.Project(rankings, filter)
		assert.Equal(t, first, second)
	})

	t.Run("Text match covers name, email and justification", func(t *testing.T) {
		filter := defaultFilter()
		filter.SearchQuery = "ALICE"
		assert.Len(t, domain.Project(rankings, filter), 1)

		filter.SearchQuery = "carol@corp.com"
		assert.Len(t, domain.Project(rankings, filter), 1)

		filter.SearchQuery = "java"
		assert.Len(t, domain.Project(rankings, filter), 1)
	})

	t.Run("Placeholder contacts are not searchable", func(t *testing.T) {
		filter := defaultFilter()
		filter.SearchQuery = "no email"
		assert.Empty(t, domain.Project(rankings, filter))
	})

	t.Run("Score range is inclusive at both ends", func(t *testing.T) {
		filter := defaultFilter()
		out := domain.Project(rankings, filter)
		// Carol's score of 10 sits exactly on the upper bound
		assert.Len(t, out, 3)

		filter.ScoreMax = 9
		out = domain.Project(rankings, filter)
		assert.Len(t, out, 2)
	})

	t.Run("Malformed scores coerce instead of crashing", func(t *testing.T) {
		weird := domain.NormalizeRankings([]domain.RawRanking{
			{Name: "Zero", Score: "n/a"},
			{Name: "Eleven", Score: 11.0},
		}, nil)
		out := domain.Project(weird, defaultFilter())
		// "n/a" coerces to 0, 11 stays 11; both fall outside [1,10]
		assert.Empty(t, out)
	})

	t.Run("Experience range filters derived years", func(t *testing.T) {
		filter := defaultFilter()
		filter.ExperienceMin = 5
		out := domain.Project(rankings, filter)
		assert.Len(t, out, 2)
		assert.Equal(t, "Alice", out[0].Name)
		assert.Equal(t, "Carol", out[1].Name)
	})

	t.Run("Presence filters exclude withheld contacts", func(t *testing.T) {
		filter := defaultFilter()
		filter.FilterEmail = true
		out := domain.Project(rankings, filter)
		assert.Len(t, out, 2)
		for _, c := range out {
			assert.True(t, c.HasEmail)
		}

		filter.FilterPhone = true
		out = domain.Project(rankings, filter)
		assert.Len(t, out, 1)
		assert.Equal(t, "Alice", out[0].Name)
	})

	t.Run("Skill query matches against matched skills only", func(t *testing.T) {
		filter := defaultFilter()
		filter.SkillQuery = "go"
		out := domain.Project(rankings, filter)
		assert.Len(t, out, 1)
		assert.Equal(t, "Alice", out[0].Name)
	})

	t.Run("Output is always a subset preserving relative order", func(t *testing.T) {
		filter := defaultFilter()
		filter.SearchQuery = "experience"
		out := domain.Project(rankings, filter)
		positions := make(map[string]int)
		for i, c := range rankings {
			positions[c.Name] = i
		}
		for i := 1; i < len(out); i++ {
			assert.Less(t, positions[out[i-1].Name], positions[out[i].Name])
		}
	})
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL"}, domain.ParseSkills(" Go, Kubernetes ,SQL,,"))
	assert.Nil(t, domain.ParseSkills("   "))
}

func TestDomainKey(t *testing.T) {
	assert.Equal(t, "startitnow_co_in_credits", domain.DomainKey("startitnow.co.in"))
	assert.Equal(t, "zoho_com_credits", domain.DomainKey("Zoho.com"))
}

func TestEmailDomain(t *testing.T) {
	d, err := domain.EmailDomain("Jane@StartItNow.co.in")
	assert.NoError(t, err)
	assert.Equal(t, "startitnow.co.in", d)

	_, err = domain.EmailDomain("not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}
