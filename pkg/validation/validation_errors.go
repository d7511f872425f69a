package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to Romanian labels
var FieldLabels = map[string]string{
	// Job posting fields
	"title":            "Titlu",
	"company":          "Companie",
	"location":         "Locație",
	"description":      "Descriere",
	"salary":           "Salariu",
	"job_type":         "Tipul jobului",
	"experience_level": "Nivel de experiență",
	"requirements":     "Cerințe",

	// Application fields
	"cover_letter": "Scrisoare de intenție",
	"status":       "Status",

	// Profile fields
	"name":    "Nume",
	"bio":     "Descriere personală",
	"phone":   "Telefon",
	"website": "Website",
	"role":    "Rol",

	// CV records
	"level":          "Nivel",
	"institution":    "Instituție",
	"degree":         "Diplomă",
	"field_of_study": "Domeniu de studiu",
	"job_title":      "Funcție",
	"url":            "URL",
	"start_date":     "Data de început",
	"end_date":       "Data de sfârșit",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Câmp obligatoriu", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Minim %s caractere", label, param)
		}
		return fmt.Sprintf("%s: Minim %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Maxim %s caractere", label, param)
		}
		return fmt.Sprintf("%s: Maxim %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: Trebuie să fie una dintre: %s", label, strings.Join(strings.Fields(param), ", "))

	case "url":
		return fmt.Sprintf("%s: Introduceți o adresă URL validă", label)

	case "valid_phone":
		return fmt.Sprintf("%s: Număr de telefon invalid (7-15 cifre, opțional cu +)", label)

	case "iso_date":
		return fmt.Sprintf("%s: Dată invalidă (format AAAA-LL-ZZ)", label)

	case "date_after":
		return fmt.Sprintf("%s: Nu poate fi înainte de %s", label, getFieldLabel("start_date"))

	case "non_negative_number":
		return fmt.Sprintf("%s: Trebuie să fie un număr pozitiv", label)

	case "settable_status":
		return fmt.Sprintf("%s: Trebuie să fie ACCEPTED sau REJECTED", label)

	case "job_type", "experience_level", "skill_level", "user_role":
		return fmt.Sprintf("%s: Valoare necunoscută", label)

	default:
		return fmt.Sprintf("%s: Validare eșuată (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}
