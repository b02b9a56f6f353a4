package profile

import "time"

type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	Company        string    `json:"company,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status"`
	Skills         []string  `json:"skills"`
	Bio            string    `json:"bio,omitempty"`
	GitHubUsername string    `json:"githubusername,omitempty"`
	Social         Social    `json:"social"`
	Date           time.Time `json:"date"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// UpsertRequest is the profile form. Skills is a comma separated list.
type UpsertRequest struct {
	Status         string `json:"status" validate:"notblank"`
	Skills         string `json:"skills" validate:"notblank"`
	Company        string `json:"company"`
	Website        string `json:"website" validate:"omitempty,url"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube" validate:"omitempty,url"`
	Twitter        string `json:"twitter" validate:"omitempty,url"`
	Facebook       string `json:"facebook" validate:"omitempty,url"`
	LinkedIn       string `json:"linkedin" validate:"omitempty,url"`
	Instagram      string `json:"instagram" validate:"omitempty,url"`
}
