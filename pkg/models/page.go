package models

import (
	"bytes"
	"encoding/json"
)

// Page is the canonical list envelope every list endpoint normalizes to,
// whatever dialect the server happens to speak.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// pageEnvelope accepts both the canonical field names and the legacy
// Spring-style ones in a single decode pass.
type pageEnvelope[T any] struct {
	Items   []T `json:"items"`
	Content []T `json:"content"`

	Total         *int64 `json:"total"`
	TotalElements *int64 `json:"totalElements"`

	PageNo     *int `json:"page"`
	PageNumber *int `json:"pageNumber"`

	Size     *int `json:"size"`
	PageSize *int `json:"pageSize"`
}

// DecodePage normalizes a list response body to Page[T]. Tolerated dialects,
// tried in order:
//
//	{items, total, page, size}                       (canonical)
//	{content, totalElements, pageNumber, pageSize}   (legacy)
//	[ ... ]                                          (bare array)
//
// Missing fields fall back to safe defaults rather than failing the query;
// only malformed JSON returns an error. Decoding the canonical shape yields
// itself unchanged.
func DecodePage[T any](data []byte) (Page[T], error) {
	page := Page[T]{Items: []T{}}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return page, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page, err
		}
		if items != nil {
			page.Items = items
		}
		page.Total = int64(len(page.Items))
		return page, nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return page, err
	}

	switch {
	case env.Items != nil:
		page.Items = env.Items
	case env.Content != nil:
		page.Items = env.Content
	}

	switch {
	case env.Total != nil:
		page.Total = *env.Total
	case env.TotalElements != nil:
		page.Total = *env.TotalElements
	default:
		page.Total = int64(len(page.Items))
	}

	switch {
	case env.PageNo != nil:
		page.Page = *env.PageNo
	case env.PageNumber != nil:
		page.Page = *env.PageNumber
	}

	switch {
	case env.Size != nil:
		page.Size = *env.Size
	case env.PageSize != nil:
		page.Size = *env.PageSize
	}

	return page, nil
}
