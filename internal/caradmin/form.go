package caradmin

import (
	"strconv"
	"time"

	"github.com/goliatone/go-jsonfields/pkg/model"
)

// JSONFieldNames lists the JSON columns edited on the form, in form order.
var JSONFieldNames = []string{
	"station_fields",
	"metadata",
	"tags",
	"notes",
	"messages",
	"custom_car_info",
}

// Form builds the change form for car. orgs feeds the organization select.
// JSON columns start on one line; the page formats them once edited.
func Form(car Car, orgs []Organization) model.FormModel {
	options := make([]model.Option, 0, len(orgs))
	for _, org := range orgs {
		options = append(options, model.Option{Value: strconv.Itoa(org.ID), Label: org.Name})
	}

	stationFields := model.CompactJSONField("station_fields", "Station fields", car.StationFields)
	stationFields.HelpText = "Custom station fields for the car."

	return model.FormModel{
		ID:     "car_form",
		Title:  title(car),
		Method: "post",
		Fieldsets: []model.Fieldset{
			{
				Title: "Basic Information",
				Fields: []model.Field{
					{Name: "organization", Label: "Organization", Widget: model.WidgetSelect, Value: optionalInt(car.OrganizationID), Options: options},
					{Name: "make", Label: "Make", Widget: model.WidgetInput, Value: car.Make},
					{Name: "model", Label: "Model", Widget: model.WidgetInput, Value: car.Model},
					{Name: "registration_number", Label: "Registration number", Widget: model.WidgetInput, Value: car.RegistrationNumber},
					{Name: "color", Label: "Color", Widget: model.WidgetInput, Value: car.Color},
					{Name: "year", Label: "Year", Widget: model.WidgetNumber, Value: optionalInt(car.Year)},
					{Name: "mileage", Label: "Mileage", Widget: model.WidgetNumber, Value: optionalInt(car.Mileage)},
				},
			},
			{
				Title: "Status Information",
				Fields: []model.Field{
					{Name: "is_active", Label: "Is active", Widget: model.WidgetCheckbox, Value: strconv.FormatBool(car.IsActive)},
					{Name: "is_archived", Label: "Is archived", Widget: model.WidgetCheckbox, Value: strconv.FormatBool(car.IsArchived)},
					{Name: "is_deleted", Label: "Is deleted", Widget: model.WidgetCheckbox, Value: strconv.FormatBool(car.IsDeleted)},
					{Name: "created_at", Label: "Created at", Widget: model.WidgetInput, Value: timestamp(car.CreatedAt), ReadOnly: true},
					{Name: "updated_at", Label: "Updated at", Widget: model.WidgetInput, Value: timestamp(car.UpdatedAt), ReadOnly: true},
				},
			},
			{
				Title:       "Station & Workflow",
				Description: "Current status and history in different stations",
				Collapsed:   true,
				Fields:      []model.Field{stationFields},
			},
			{
				Title:     "Additional Information",
				Collapsed: true,
				Fields: []model.Field{
					{Name: "files", Label: "Files", Widget: model.WidgetFile},
					model.CompactJSONField("metadata", "Metadata", car.Metadata),
					model.CompactJSONField("tags", "Tags", car.Tags),
					model.CompactJSONField("notes", "Notes", car.Notes),
					model.CompactJSONField("messages", "Messages", car.Messages),
					model.CompactJSONField("custom_car_info", "Custom car info", car.CustomCarInfo),
				},
			},
		},
	}
}

func title(car Car) string {
	if car.RegistrationNumber == "" {
		return "Add car"
	}
	return "Change car " + car.RegistrationNumber
}

func optionalInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
