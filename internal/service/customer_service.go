package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// customerImportHeaders are the columns a customer CSV must carry, in
// template order. Header matching is case-insensitive.
var customerImportHeaders = []string{
	"name", "email", "phone", "company", "address", "city", "state", "zipcode",
}

// customerTemplateCSV is the downloadable starting point for bulk uploads.
const customerTemplateCSV = "name,email,phone,company,address,city,state,zipcode\n" +
	"John Doe,john@example.com,(555) 123-4567,Example Corp,123 Main St,Anytown,CA,12345\n" +
	"Jane Smith,jane@company.com,(555) 987-6543,Company Inc,456 Oak Ave,Somewhere,NY,67890"

// ImportRowError marks one rejected CSV row. Rejected rows never fail the
// batch; they are collected and reported next to the rows that imported.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e ImportRowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ImportResult reports a bulk upload: how many rows became customers and
// which rows were skipped.
type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

// CustomerService serves the customer directory and bulk CSV imports.
type CustomerService struct {
	store *store.Store
}

// NewCustomerService creates a customer service.
func NewCustomerService(st *store.Store) *CustomerService {
	return &CustomerService{store: st}
}

// List returns the customer directory, alphabetical by name.
func (s *CustomerService) List() []analytics.Customer {
	return s.store.Snapshot().Customers
}

// Template returns the CSV upload template.
func (s *CustomerService) Template() string {
	return customerTemplateCSV
}

// ImportCSV parses a customer CSV and merges the valid rows into the
// directory. Parsing is deliberately simple: no quoted-comma support, every
// double quote is stripped. Bad rows are reported and skipped; good rows
// still import.
func (s *CustomerService) ImportCSV(data string) (*ImportResult, error) {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, &store.ValidationError{Field: "file", Message: "file is empty"}
	}

	headers := strings.Split(lines[0], ",")
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, h := range customerImportHeaders {
		if _, ok := index[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &store.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	result := &ImportResult{}
	var customers []analytics.Customer

	for i, line := range lines[1:] {
		row := i + 2 // 1-based, header is row 1
		values := strings.Split(line, ",")
		for j := range values {
			values[j] = strings.ReplaceAll(strings.TrimSpace(values[j]), `"`, "")
		}

		if len(values) != len(headers) {
			result.Errors = append(result.Errors, ImportRowError{Row: row, Message: "Invalid number of columns"})
			continue
		}

		customer := analytics.Customer{
			ID:      uuid.New().String()[:32],
			Name:    values[index["name"]],
			Email:   values[index["email"]],
			Phone:   values[index["phone"]],
			Company: values[index["company"]],
			Address: values[index["address"]],
			City:    values[index["city"]],
			State:   values[index["state"]],
			ZipCode: values[index["zipcode"]],
			Status:  "active",
		}

		if customer.Name == "" || customer.Email == "" || customer.Company == "" {
			result.Errors = append(result.Errors,
				ImportRowError{Row: row, Message: "Missing required fields (name, email, or company)"})
			continue
		}

		customers = append(customers, customer)
	}

	result.Imported = len(customers)
	if len(customers) > 0 {
		s.store.MergeCustomers(customers)
	}
	return result, nil
}
