package validatedocumentdata

import "admission-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"extractedData", "childProfile"},
		Properties: map[string]validation.Property{
			"documentId": {
				Type:        "string",
				Description: "Upload identifier the verdict applies to",
				MaxLength:   intPtr(100),
			},
			"documentType": {
				Type:        "string",
				Description: "Document type being validated",
				Enum: []string{
					"photo", "parent_id", "birth_certificate",
					"transfer_certificate", "marksheet", "address_proof",
				},
			},
			"extractedData": {
				Type:        "object",
				Description: "Fields extracted from the document",
				Properties: map[string]validation.Property{
					"childName":      {Type: "string"},
					"dateOfBirth":    {Type: "string"},
					"address":        {Type: "string"},
					"previousSchool": {Type: "string"},
					"grades":         {Type: "object"},
				},
			},
			"childProfile": {
				Type:        "object",
				Description: "Profile the document is checked against",
				Required:    []string{"name"},
				Properties: map[string]validation.Property{
					"name":        {Type: "string"},
					"dateOfBirth": {Type: "string"},
					"address":     {Type: "string"},
				},
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"documentId": {
				Type:        "string",
				Description: "Upload identifier the verdict applies to",
			},
			"isValid": {
				Type:        "boolean",
				Description: "Whether the document matches the child profile",
			},
			"mismatchDetails": {
				Type:        "string",
				Description: "Semicolon-joined mismatch descriptions, empty when valid",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
