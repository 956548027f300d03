package lib

import (
	"techmart_server/structs"
	"testing"
)

func TestValidateProductForm(t *testing.T) {
	valid := structs.ProductForm{
		Name:        "UltraBook Pro",
		Description: "Fast and light",
		Price:       1999.99,
		ImageURL:    "https://example.com/img.png",
	}
	if err := ValidateStruct(&valid); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name string
		form structs.ProductForm
	}{
		{"missing name", structs.ProductForm{Description: "d", Price: 1, ImageURL: "https://x.com/a.png"}},
		{"negative price", structs.ProductForm{Name: "n", Description: "d", Price: -5, ImageURL: "https://x.com/a.png"}},
		{"zero price", structs.ProductForm{Name: "n", Description: "d", Price: 0, ImageURL: "https://x.com/a.png"}},
		{"bad url", structs.ProductForm{Name: "n", Description: "d", Price: 1, ImageURL: "not-a-url"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(&tc.form)
			if !IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateSignInRequest(t *testing.T) {
	if err := ValidateStruct(&structs.SignInRequest{Email: "a@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	if err := ValidateStruct(&structs.SignInRequest{Email: "not-an-email", Password: "secret123"}); !IsValidationError(err) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}

	if err := ValidateStruct(&structs.SignInRequest{Email: "a@example.com", Password: "short"}); !IsValidationError(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}
