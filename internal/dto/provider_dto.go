package dto

import (
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
)

type ProviderRequest struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	BusinessName      string  `json:"businessName"`
	ProfileImage      string  `json:"profileImage"`
	PhoneNumber       string  `json:"phoneNumber"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	Country           string  `json:"country"`
	Profession        string  `json:"profession"`
	YearsOfExperience int     `json:"yearsOfExperience"`
	HourlyRate        float64 `json:"hourlyRate"`
	Language          string  `json:"language"`
}

func (r *ProviderRequest) Fields() services.ProviderFields {
	return services.ProviderFields{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		BusinessName:      r.BusinessName,
		ProfileImage:      r.ProfileImage,
		PhoneNumber:       r.PhoneNumber,
		Address:           r.Address,
		City:              r.City,
		Country:           r.Country,
		Profession:        r.Profession,
		YearsOfExperience: r.YearsOfExperience,
		HourlyRate:        r.HourlyRate,
		Language:          r.Language,
	}
}

type CalendarRequest struct {
	Email        string `json:"email"`
	CalendarLink string `json:"calendar_link"`
}

type CalendarResponse struct {
	Message  string           `json:"message"`
	Calendar *models.Calendar `json:"calendar"`
}
