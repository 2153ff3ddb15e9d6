package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Supplier represents a supplier as returned by the inventory API
type Supplier struct {
	ID               string `json:"_id"`
	SupplierName     string `json:"supplierName"`
	ContactName      string `json:"contactName,omitempty"`
	ContactPhone     string `json:"contactPhone,omitempty"`
	ContactPhoneCode string `json:"contactPhoneCode,omitempty"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
}

// CreateSupplierRequest represents the request body for creating a supplier
// Example: {"supplierName": "Acme", "contactName": "Ana", "contactPhone": "3001234567", "contactPhoneCode": "+57", "email": "ana@acme.co", "address": "Calle 10"}
type CreateSupplierRequest struct {
	SupplierName     string `json:"supplierName"`
	ContactName      string `json:"contactName"`
	ContactPhone     string `json:"contactPhone"`
	ContactPhoneCode string `json:"contactPhoneCode"`
	Email            string `json:"email"`
	Address          string `json:"address"`
}

// SupplierRef is a reference to a supplier. The API sends it either as a
// bare id string or as a populated {_id, supplierName} object.
type SupplierRef struct {
	ID   string `json:"_id"`
	Name string `json:"supplierName,omitempty"`
}

// UnmarshalJSON accepts both the string and the populated object form
func (s *SupplierRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = SupplierRef{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("failed to decode supplier id: %w", err)
		}
		*s = SupplierRef{ID: id}
		return nil
	}

	var obj struct {
		ID           string `json:"_id"`
		AltID        string `json:"id"`
		SupplierName string `json:"supplierName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to decode supplier reference: %w", err)
	}
	if obj.ID == "" {
		obj.ID = obj.AltID
	}
	*s = SupplierRef{ID: obj.ID, Name: obj.SupplierName}
	return nil
}
