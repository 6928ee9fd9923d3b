package hh

import (
	"encoding/json"
	"fmt"
	"time"
)

type Vacancy struct {
	VacancyPreview
	Description string
	KeySkills   []KeySkill `json:"key_skills"`
}

// VacancyPreview is one summary record from the listing endpoint. The upstream
// API does not guarantee any of the nested objects, so all of them are
// pointers and nil means "not supplied".
type VacancyPreview struct {
	ID                string
	Name              string
	PublishedAt       CustomTime         `json:"published_at"`
	Employer          *Employer          `json:"employer"`
	Address           *Address           `json:"address"`
	Salary            *Salary            `json:"salary"`
	ProfessionalRoles []ProfessionalRole `json:"professional_roles"`
	Experience        *Experience        `json:"experience"`
}

type Employer struct {
	ID   string
	Name string
}

type Address struct {
	ID   string
	City string
}

type Salary struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type ProfessionalRole struct {
	Name string
}

type Experience struct {
	Name string
}

type KeySkill struct {
	Name string
}

type CustomTime struct {
	time.Time
}

const timeLayout = "2006-01-02T15:04:05-0700"

func (dt *CustomTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	t, err := time.Parse(timeLayout, str)
	if err != nil {
		return fmt.Errorf("parsing time %s: %v", str, err)
	}
	dt.Time = t
	return nil
}
