// Package consultations carries the request and response payloads of
// the consultation endpoints.
package consultations

import (
	"strings"
	"time"
)

// IntakeRequest is the body of a consultation submission. Different
// site surfaces historically named the service field differently, so
// all three spellings are accepted.
type IntakeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	ServiceType       string `json:"serviceType,omitempty"`
	LegalService      string `json:"legalService,omitempty"`
	LegalServiceSnake string `json:"legal_service,omitempty"`

	Message             string `json:"message,omitempty"`
	Goals               string `json:"goals,omitempty"`
	Questions           string `json:"questions,omitempty"`
	Situation           string `json:"situation,omitempty"`
	Needs               string `json:"needs,omitempty"`
	Urgency             string `json:"urgency,omitempty"`
	MaritalStatus       string `json:"maritalStatus,omitempty"`
	HasChildren         string `json:"hasChildren,omitempty"`
	PrimaryAssets       string `json:"primaryAssets,omitempty"`
	Relationship        string `json:"relationship,omitempty"`
	DeceasedName        string `json:"deceasedName,omitempty"`
	DateOfDeath         string `json:"dateOfDeath,omitempty"`
	KnownHeirs          string `json:"knownHeirs,omitempty"`
	Assets              string `json:"assets,omitempty"`
	Documents           string `json:"documents,omitempty"`
	AgeRange            string `json:"ageRange,omitempty"`
	Agents              string `json:"agents,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
	PersonName          string `json:"personName,omitempty"`
	EstateValue         string `json:"estateValue,omitempty"`
	HasWill             string `json:"hasWill,omitempty"`
	DaysSinceDeath      string `json:"daysSinceDeath,omitempty"`
	HeirAgreement       string `json:"heirAgreement,omitempty"`
	GuardianshipType    string `json:"guardianshipType,omitempty"`
	Timeline            string `json:"timeline,omitempty"`
}

// NoDetails is stored when a submission carries no free-text fields.
const NoDetails = "No additional details provided"

// DefaultService is assumed when no surface named a service.
const DefaultService = "General Consultation"

// Service resolves the requested service from the aliased fields.
func (req IntakeRequest) Service() string {
	for _, candidate := range []string{req.ServiceType, req.LegalService, req.LegalServiceSnake} {
		if candidate != "" {
			return candidate
		}
	}
	return DefaultService
}

// ComposeMessage folds every free-text field the submission carried
// into one labeled message. The section order is fixed so that stored
// requests from any surface read the same way.
func (req IntakeRequest) ComposeMessage() string {
	sections := []struct {
		label, value string
	}{
		{"Message", req.Message},
		{"Goals", req.Goals},
		{"Questions", req.Questions},
		{"Situation", req.Situation},
		{"Needs", req.Needs},
		{"Urgency", req.Urgency},
		{"Marital Status", req.MaritalStatus},
		{"Has Children", req.HasChildren},
		{"Primary Assets", req.PrimaryAssets},
		{"Relationship", req.Relationship},
		{"Deceased Name", req.DeceasedName},
		{"Date of Death", req.DateOfDeath},
		{"Known Heirs", req.KnownHeirs},
		{"Assets", req.Assets},
		{"Documents Needed", req.Documents},
		{"Age Range", req.AgeRange},
		{"Proposed Agents", req.Agents},
		{"Special Instructions", req.SpecialInstructions},
		{"Person Name", req.PersonName},
		{"Estate Value", req.EstateValue},
		{"Has Will", req.HasWill},
		{"Days Since Death", req.DaysSinceDeath},
		{"Heir Agreement", req.HeirAgreement},
		{"Guardianship Type", req.GuardianshipType},
		{"Timeline", req.Timeline},
	}

	parts := []string{}
	for _, s := range sections {
		if s.value != "" {
			parts = append(parts, s.label+":\n"+s.value)
		}
	}
	if len(parts) == 0 {
		return NoDetails
	}
	return strings.Join(parts, "\n\n")
}

// IntakeResponse acknowledges a stored submission.
type IntakeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestId int    `json:"request_id"`
}

// Detail is one stored consultation request as the admin API shows it.
type Detail struct {
	Id           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	LegalService string    `json:"legal_service"`
	Message      string    `json:"message"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateRequest is the body of an admin update. Absent fields are left
// as they are.
type UpdateRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}
