package models

import (
	"encoding/json"
	"testing"
)

func TestDecodePage_canonicalShape(t *testing.T) {
	body := []byte(`{"items":[{"id":"c1","phone":"+100"}],"total":42,"page":1,"size":5}`)

	page, err := DecodePage[Contact](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "c1" {
		t.Errorf("items not decoded: %+v", page.Items)
	}
	if page.Total != 42 || page.Page != 1 || page.Size != 5 {
		t.Errorf("unexpected page meta: %+v", page)
	}
}

func TestDecodePage_legacyShape(t *testing.T) {
	body := []byte(`{"content":[{"id":"a"},{"id":"b"},{"id":"c"}],"totalElements":42,"pageNumber":1,"pageSize":5}`)

	page, err := DecodePage[Contact](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	if page.Total != 42 || page.Page != 1 || page.Size != 5 {
		t.Errorf("legacy fields not mapped: %+v", page)
	}
}

func TestDecodePage_bareArray(t *testing.T) {
	body := []byte(`[{"id":"a"},{"id":"b"}]`)

	page, err := DecodePage[Contact](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(page.Items))
	}
	if page.Total != 2 {
		t.Errorf("total should default to item count, got %d", page.Total)
	}
}

func TestDecodePage_idempotent(t *testing.T) {
	body := []byte(`{"content":[{"id":"a"}],"totalElements":10,"pageNumber":2,"pageSize":1}`)

	first, err := DecodePage[Contact](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reencoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := DecodePage[Contact](reencoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Total != first.Total || second.Page != first.Page || second.Size != first.Size || len(second.Items) != len(first.Items) {
		t.Errorf("re-normalizing the canonical shape changed it: %+v vs %+v", first, second)
	}
}

func TestDecodePage_missingFieldsFallBack(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"unknown fields only", `{"data":[1,2,3]}`},
		{"empty body", ``},
		{"null items", `{"items":null,"total":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := DecodePage[Contact]([]byte(tc.body))
			if err != nil {
				t.Fatalf("defensive decode must not fail: %v", err)
			}
			if page.Items == nil {
				t.Error("items must be an empty slice, not nil")
			}
			if len(page.Items) != 0 || page.Total != 0 {
				t.Errorf("expected empty page, got %+v", page)
			}
		})
	}
}

func TestDecodePage_malformedJSON(t *testing.T) {
	if _, err := DecodePage[Contact]([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON should return an error")
	}
	if _, err := DecodePage[Contact]([]byte(`[{"id":1}]`)); err == nil {
		t.Error("type mismatch inside array should return an error")
	}
}
