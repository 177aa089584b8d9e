package service

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/store"
)

func newCustomerService() *CustomerService {
	return NewCustomerService(store.NewStore(nil, zap.NewNop()))
}

func TestImportCSV(t *testing.T) {
	svc := newCustomerService()

	csv := "name,email,phone,company,address,city,state,zipcode\n" +
		`"John Doe",john@example.com,(555) 123-4567,Example Corp,123 Main St,Anytown,CA,12345` + "\n" +
		"Jane Smith,jane@company.com,(555) 987-6543,Company Inc,456 Oak Ave,Somewhere,NY,67890\n"

	result, err := svc.ImportCSV(csv)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported = %d, want 2", result.Imported)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors: %v", result.Errors)
	}

	customers := svc.List()
	if len(customers) != 2 {
		t.Fatalf("directory has %d customers, want 2", len(customers))
	}
	// quotes are stripped, not parsed
	if customers[0].Name != "Jane Smith" || customers[1].Name != "John Doe" {
		t.Fatalf("directory not alphabetical: %q, %q", customers[0].Name, customers[1].Name)
	}
	if customers[1].Company != "Example Corp" {
		t.Fatalf("company = %q", customers[1].Company)
	}
}

func TestImportCSVHeaderCaseInsensitive(t *testing.T) {
	svc := newCustomerService()

	csv := "Name,EMAIL,Phone,Company,Address,City,State,ZipCode\n" +
		"John Doe,john@example.com,,Example Corp,,,,\n"

	result, err := svc.ImportCSV(csv)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("imported = %d, want 1", result.Imported)
	}
}

func TestImportCSVMissingHeaders(t *testing.T) {
	svc := newCustomerService()

	_, err := svc.ImportCSV("name,email\nJohn,john@example.com\n")
	if err == nil {
		t.Fatal("expected missing-header error")
	}
	if !strings.Contains(err.Error(), "Missing required columns") {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(err.Error(), "phone") || !strings.Contains(err.Error(), "zipcode") {
		t.Fatalf("error should name the missing columns, got %v", err)
	}
}

func TestImportCSVBadRowsArePartialSuccess(t *testing.T) {
	svc := newCustomerService()

	csv := "name,email,phone,company,address,city,state,zipcode\n" +
		"John Doe,john@example.com,,Example Corp,,,,\n" +
		"too,few,columns\n" +
		",missing-name@example.com,,Example Corp,,,,\n" +
		"Jane Smith,jane@company.com,,Company Inc,,,,\n"

	result, err := svc.ImportCSV(csv)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported = %d, want 2", result.Imported)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want 2", result.Errors)
	}
	if result.Errors[0].Row != 3 || result.Errors[0].Message != "Invalid number of columns" {
		t.Fatalf("first error = %+v", result.Errors[0])
	}
	if result.Errors[1].Row != 4 || !strings.Contains(result.Errors[1].Message, "Missing required fields") {
		t.Fatalf("second error = %+v", result.Errors[1])
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc := newCustomerService()

	if _, err := svc.ImportCSV("\n\n"); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestImportCSVSkipsBlankLines(t *testing.T) {
	svc := newCustomerService()

	csv := "name,email,phone,company,address,city,state,zipcode\n\n" +
		"John Doe,john@example.com,,Example Corp,,,,\n\n"

	result, err := svc.ImportCSV(csv)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if result.Imported != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestTemplateHasFixedHeader(t *testing.T) {
	svc := newCustomerService()
	if !strings.HasPrefix(svc.Template(), "name,email,phone,company,address,city,state,zipcode\n") {
		t.Fatalf("template header wrong: %q", svc.Template())
	}
}
