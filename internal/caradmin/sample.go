package caradmin

import "time"

// SampleOrganizations returns the organizations used by the preview page.
func SampleOrganizations() []Organization {
	return []Organization{
		{
			ID:   1,
			Name: "Northwind Fleet",
			Stations: []StationConfig{
				{Name: "Reception", DefaultStatus: "waiting", AllowedStatuses: []string{"waiting", "checked_in"}},
				{Name: "Wash", DefaultStatus: "pending", AllowedStatuses: []string{"pending", "in_progress", "done"}},
				{Name: "Inspection", DefaultStatus: "pending", AllowedStatuses: []string{"pending", "passed", "failed"}},
			},
		},
		{ID: 2, Name: "Contoso Rentals"},
	}
}

// SampleCar returns a populated car for the first sample organization.
func SampleCar() Car {
	car := NewCar(SampleOrganizations()[0])
	car.Make = "Volvo"
	car.Model = "V60"
	car.RegistrationNumber = "ABC123"
	car.Color = "Silver"
	car.Year = 2021
	car.Mileage = 48200
	car.CreatedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	car.UpdatedAt = time.Date(2024, 5, 14, 16, 5, 0, 0, time.UTC)

	car.Metadata.Set("fuel", "hybrid")
	car.Metadata.Set("seats", 5.0)
	car.Tags = []any{"fleet", "long-term"}
	car.Notes = []any{"Replace wiper blades"}
	return car
}
