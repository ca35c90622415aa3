// Package schema maps arbitrary decoded JSON onto the canonical CVRecord.
//
// The upstream contract drifted across releases of the prompt templates
// (field names and list caps changed from version to version), so the field
// renames and caps live here as one versioned configuration object instead of
// per-field logic scattered through the pipeline.
package schema

// Version selects a schema revision.
type Version string

// Shipped schema revisions.
const (
	// V1 is the original single-language contract: short lists, up to 15 jobs.
	V1 Version = "v1"
	// V2 is the two-language contract: uniform caps of 6 and 10.
	V2 Version = "v2"
)

// Caps holds the per-list maximum lengths enforced at normalization time.
// Lists are truncated to the cap, never rejected. Zero means unbounded.
type Caps struct {
	Languages          int
	Skills             int
	Hobbies            int
	WorkExperience     int
	AchievementsPerJob int
	Education          int
}

// Schema is a versioned normalization configuration.
type Schema struct {
	Version Version
	Caps    Caps
}

// ForVersion returns the schema for a revision. Unknown versions fall back
// to the default.
func ForVersion(v Version) Schema {
	switch v {
	case V1:
		return Schema{
			Version: V1,
			Caps: Caps{
				Languages:          3,
				Skills:             6,
				Hobbies:            3,
				WorkExperience:     15,
				AchievementsPerJob: 3,
				Education:          6,
			},
		}
	default:
		return Default()
	}
}

// Default returns the current schema revision (V2).
func Default() Schema {
	return Schema{
		Version: V2,
		Caps: Caps{
			Languages:          6,
			Skills:             6,
			Hobbies:            6,
			WorkExperience:     10,
			AchievementsPerJob: 3,
			Education:          10,
		},
	}
}

// Key aliases accepted for each canonical field. The upstream generator has
// emitted every one of these spellings at some point; the first recognized
// alias with a string value wins.
var (
	personalInfoAliases = map[string][]string{
		"name":     {"name", "NAME"},
		"title":    {"title", "job_title", "JOB_TITLE"},
		"phone":    {"phone"},
		"email":    {"email"},
		"city":     {"city"},
		"zip":      {"zip", "postal_code"},
		"country":  {"country"},
		"linkedin": {"linkedin", "Linkedin", "linkedin_url"},
	}

	jobAliases = map[string][]string{
		"company":        {"company"},
		"from":           {"from", "from_date"},
		"to":             {"to", "to_date"},
		"title":          {"title", "job_title"},
		"responsibility": {"responsibility"},
	}

	educationAliases = map[string][]string{
		"degree":      {"degree"},
		"graduation":  {"graduation", "graduation_date"},
		"institution": {"institution", "university"},
		"location":    {"location", "university_location"},
		"country":     {"country", "university_country"},
	}
)
