package validator_test

import (
	"strings"
	"testing"

	"lunabay/shared/validator"
)

type bookingRequestStub struct {
	FullName string `validate:"required" json:"fullName"`
	Email    string `validate:"required,email" json:"email"`
	CheckIn  string `validate:"required,dateonly" json:"checkIn"`
	Guests   int    `validate:"gte=1,lte=10" json:"guests"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingRequestStub
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingRequestStub{
				FullName: "John Doe",
				Email:    "john@example.com",
				CheckIn:  "2026-09-14",
				Guests:   2,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &bookingRequestStub{
				Email:   "john@example.com",
				CheckIn: "2026-09-14",
				Guests:  2,
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingRequestStub{
				FullName: "John Doe",
				Email:    "invalid-email",
				CheckIn:  "2026-09-14",
				Guests:   2,
			},
			expectError: true,
		},
		{
			name: "malformed date",
			data: &bookingRequestStub{
				FullName: "John Doe",
				Email:    "john@example.com",
				CheckIn:  "14-09-2026",
				Guests:   2,
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &bookingRequestStub{
				FullName: "John Doe",
				Email:    "john@example.com",
				CheckIn:  "2026-09-14",
				Guests:   11,
			},
			expectError: true,
		},
		{
			name: "zero guests",
			data: &bookingRequestStub{
				FullName: "John Doe",
				Email:    "john@example.com",
				CheckIn:  "2026-09-14",
				Guests:   0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid date",
			field:       "2026-01-31",
			tag:         "dateonly",
			expectError: false,
		},
		{
			name:        "impossible date",
			field:       "2026-02-30",
			tag:         "dateonly",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"fullName":"John Doe","email":"john@example.com","checkIn":"2026-09-14","guests":2}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"fullName":"John Doe","email":"invalid-email","checkIn":"2026-09-14","guests":2}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"fullName":"John Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingRequestStub
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &bookingRequestStub{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
