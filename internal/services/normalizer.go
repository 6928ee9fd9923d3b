package services

import (
	"github.com/akazarov/hh-collector/internal/clients/hh"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/pkg/errors"
)

// normalizedVacancy is the canonical shape of one listing item: the vacancy
// itself plus the lookup entities it references. Company and location are nil
// when the upstream record does not carry them.
type normalizedVacancy struct {
	vacancy  entities.Vacancy
	company  *entities.Company
	location *entities.Location
}

const dateLayout = "2006-01-02"

// normalizeVacancy maps one raw summary record to entity shapes. The id,
// title and publication time are required; everything else degrades
// independently to "no value" when the parent object is absent.
func normalizeVacancy(preview hh.VacancyPreview) (normalizedVacancy, error) {

	if preview.ID == "" {
		return normalizedVacancy{}, errors.New("vacancy has no id")
	}
	if preview.Name == "" {
		return normalizedVacancy{}, errors.Errorf("vacancy %v has no title", preview.ID)
	}
	if preview.PublishedAt.IsZero() {
		return normalizedVacancy{}, errors.Errorf("vacancy %v has no publication time", preview.ID)
	}

	normalized := normalizedVacancy{
		vacancy: entities.Vacancy{
			ExternalID:  preview.ID,
			Title:       preview.Name,
			PublishDate: preview.PublishedAt.Format(dateLayout),
			Category:    extractCategory(preview),
			Position:    extractPosition(preview),
		},
	}

	if preview.Employer != nil && preview.Employer.ID != "" {
		normalized.company = &entities.Company{
			ExternalID: preview.Employer.ID,
			Name:       preview.Employer.Name,
		}
	}

	if preview.Address != nil && preview.Address.ID != "" {
		normalized.location = &entities.Location{
			ExternalID: preview.Address.ID,
			Country:    entities.DefaultCountry,
			City:       preview.Address.City,
		}
	}

	if preview.Salary != nil {
		normalized.vacancy.MinSalary = preview.Salary.From
		normalized.vacancy.MaxSalary = preview.Salary.To
	}

	return normalized, nil
}

func extractCategory(preview hh.VacancyPreview) *string {
	if len(preview.ProfessionalRoles) == 0 {
		return nil
	}
	return &preview.ProfessionalRoles[0].Name
}

func extractPosition(preview hh.VacancyPreview) *string {
	if preview.Experience == nil {
		return nil
	}
	return &preview.Experience.Name
}
