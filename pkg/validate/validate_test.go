package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/repwear/pkg/validate"
)

type productInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=100"`
	Slug     string  `json:"slug"     validate:"nullable,alpha_dash"`
	Price    float64 `json:"price"    validate:"required,gte=0"`
	Stock    int     `json:"stock"    validate:"gte=0"`
	Status   string  `json:"status"   validate:"required,in=published,draft,out_of_stock"`
	Category string  `json:"category" validate:"required,objectid"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:     "Flex Tee",
		Slug:     "flex-tee",
		Price:    29.99,
		Stock:    10,
		Status:   "published",
		Category: "64f1b2c3d4e5f60718293a4b",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["status"]; !ok {
		t.Error("expected status to be required")
	}
}

func TestInRuleKeepsValueList(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=published,draft,out_of_stock"`
	}
	if errs := validate.Struct(in{Status: "archived"}); !validate.HasErrors(errs) {
		t.Error("expected invalid status to fail")
	}
	if errs := validate.Struct(in{Status: "out_of_stock"}); validate.HasErrors(errs) {
		t.Errorf("expected out_of_stock to pass, got: %v", errs)
	}
}

func TestObjectIDRule(t *testing.T) {
	type in struct {
		ID string `json:"id" validate:"required,objectid"`
	}
	if errs := validate.Struct(in{ID: "not-hex"}); !validate.HasErrors(errs) {
		t.Error("expected invalid id to fail")
	}
	if errs := validate.Struct(in{ID: "64f1b2c3d4e5f60718293a4b"}); validate.HasErrors(errs) {
		t.Errorf("expected hex id to pass, got: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Site: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Site: "nope"}); !validate.HasErrors(errs) {
		t.Error("expected invalid url to fail")
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Qty: 100}); !validate.HasErrors(errs) {
		t.Error("expected qty > 99 to fail")
	}
	if errs := validate.Struct(in{Qty: 3}); validate.HasErrors(errs) {
		t.Errorf("expected qty 3 to pass, got: %v", errs)
	}
}
