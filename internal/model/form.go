package model

// Go models that match the JSON schemas used to validate payloads at the
// HTTP boundary.

// Submission carries the candidate identity fields of an application form.
// Anything the form sends beyond these lands in Extra and is stored as the
// application's opaque form-data payload.
type Submission struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone,omitempty"`
	LinkedIn string                 `json:"linkedinProfile,omitempty"`
	GitHub   string                 `json:"githubProfile,omitempty"`
	Extra    map[string]interface{} `json:"-"`
}

// FormData returns the payload persisted with the application: every form
// answer that is not a candidate identity field.
func (s Submission) FormData() map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range s.Extra {
		out[k] = v
	}
	return out
}
